package cartridge

import (
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/bus"
)

// newImage returns a 32kB ROM only image with a valid header.
func newImage(title string) []byte {
	image := make([]byte, 0x8000)
	copy(image[0x134:0x144], title)
	image[0x147] = byte(ROM)
	image[0x148] = 0x00 // 32kB

	var checksum uint8
	for _, b := range image[0x134:0x14D] {
		checksum = checksum - b - 1
	}
	image[0x14D] = checksum
	return image
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader(newImage("TETRIS"))
	require.NoError(t, err)

	assert.Equal(t, "TETRIS", h.Title)
	assert.Equal(t, ROM, h.CartridgeType)
	assert.Equal(t, uint(32*1024), h.ROMSize)
	assert.Equal(t, "DMG", h.Hardware())
	assert.False(t, h.GameboyColor())
	assert.True(t, h.ChecksumValid())
	assert.Equal(t, "TETRIS | Mode: DMG | Type: ROM ONLY | ROM Size: 32kB | RAM Size: 0kB", h.String())
}

func TestParseHeader_Title(t *testing.T) {
	t.Run("full length", func(t *testing.T) {
		h, err := ParseHeader(newImage("ABCDEFGHIJKLMNOP"))
		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGHIJKLMNOP", h.Title)
	})
	t.Run("embedded padding", func(t *testing.T) {
		image := newImage("")
		copy(image[0x134:], "AB\x00\x00CD")
		h, err := ParseHeader(image)
		require.NoError(t, err)
		assert.Equal(t, "ABCD", h.Title)
	})
	t.Run("colour flag", func(t *testing.T) {
		image := newImage("POKEMON")
		image[0x143] = 0x80
		h, err := ParseHeader(image)
		require.NoError(t, err)
		assert.Equal(t, "POKEMON", h.Title)
		assert.True(t, h.GameboyColor())
	})
}

func TestParseHeader_TooSmall(t *testing.T) {
	_, err := ParseHeader(make([]byte, 0x100))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Validate(newImage("VALID")))
	})
	t.Run("checksum and size", func(t *testing.T) {
		image := newImage("BROKEN")
		image[0x14D]++
		image[0x148] = 0x01 // 64kB

		err := Validate(image)
		assert.ErrorIs(t, err, ErrHeaderChecksum)
		assert.ErrorIs(t, err, ErrROMSize)
	})
	t.Run("no header", func(t *testing.T) {
		err := Validate(make([]byte, 0x30))
		assert.ErrorIs(t, err, ErrNoHeader)
		assert.ErrorIs(t, err, bus.ErrInvalidImage)
	})
}

func TestNew(t *testing.T) {
	image := newImage("GAME")
	c, err := New(image)
	require.NoError(t, err)

	assert.Equal(t, "GAME", c.Title())
	assert.Equal(t, 0x8000, c.ROM().Len())
	assert.Equal(t, xxhash.Sum64(image), c.Fingerprint())
	assert.NoError(t, c.Validate())

	v, err := c.ROM().Read(0x0134)
	require.NoError(t, err)
	assert.Equal(t, uint8('G'), v)
}

func TestNew_InvalidImage(t *testing.T) {
	_, err := New(make([]byte, 0x8001))
	assert.ErrorIs(t, err, bus.ErrInvalidImage)

	_, err = New(make([]byte, 0x80))
	assert.ErrorIs(t, err, ErrNoHeader)
}
