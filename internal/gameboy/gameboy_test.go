package gameboy

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/bus"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/log"
)

// newImage returns a 32kB cartridge image with a valid header and
// program at the entry point.
func newImage(title string, program ...byte) []byte {
	image := make([]byte, 0x8000)
	copy(image[0x100:0x104], program)
	if len(program) > 4 {
		// continue past the header
		image[0x100], image[0x101], image[0x102], image[0x103] = 0xC3, 0x50, 0x01, 0x00 // JP 0x0150
		copy(image[0x150:], program)
	}
	copy(image[0x134:0x144], title)

	var checksum uint8
	for _, b := range image[0x134:0x14D] {
		checksum = checksum - b - 1
	}
	image[0x14D] = checksum
	return image
}

func TestGameBoy_Fibonacci(t *testing.T) {
	// a passing program writes the fibonacci sequence 3/5/8/13/21/34
	// to the registers B/C/D/E/H/L
	g, err := New(newImage("FIB",
		0x06, 3, // LD B, 3
		0x0E, 5, // LD C, 5
		0x16, 8, // LD D, 8
		0x1E, 13, // LD E, 13
		0x26, 21, // LD H, 21
		0x2E, 34, // LD L, 34
		0x76, // HALT
	))
	require.NoError(t, err)

	stats, err := g.Run(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, Halted, stats.Reason)
	assert.Equal(t, uint64(8), stats.Steps)
	assert.Equal(t, uint64(16+6*8+4), stats.Cycles)
	assert.Equal(t, []uint8{3, 5, 8, 13, 21, 34}, []uint8{g.CPU.B, g.CPU.C, g.CPU.D, g.CPU.E, g.CPU.H, g.CPU.L})
}

func TestGameBoy_StepLimit(t *testing.T) {
	g, err := New(newImage("LOOP", 0x18, 0xFE)) // JR -2
	require.NoError(t, err)

	stats, err := g.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, StepLimit, stats.Reason)
	assert.Equal(t, uint64(10), stats.Steps)
	assert.Equal(t, uint64(120), stats.Cycles)
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
}

func TestGameBoy_Canceled(t *testing.T) {
	g, err := New(newImage("LOOP", 0x18, 0xFE))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := g.Run(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Canceled, stats.Reason)
	assert.Equal(t, uint64(0), stats.Steps)
}

func TestGameBoy_Illegal(t *testing.T) {
	image := newImage("ILLEGAL", 0x00, 0xDD)

	t.Run("error", func(t *testing.T) {
		g, err := New(image)
		require.NoError(t, err)

		stats, err := g.Run(context.Background(), 10)
		assert.ErrorIs(t, err, cpu.ErrIllegalOpcode)
		assert.Equal(t, Failed, stats.Reason)
		assert.Equal(t, uint64(1), stats.Steps)
	})
	t.Run("breakpoint", func(t *testing.T) {
		g, err := New(image, WithBreakOnIllegal())
		require.NoError(t, err)

		stats, err := g.Run(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, Breakpoint, stats.Reason)
		require.NotNil(t, stats.Illegal)
		assert.Equal(t, uint8(0xDD), stats.Illegal.Opcode)
		assert.Equal(t, uint16(0x0101), stats.Illegal.PC)
	})
}

func TestGameBoy_ROMOnlyBus(t *testing.T) {
	image := newImage("PUSH", 0xC5) // PUSH BC

	g, err := New(image, WithROMOnlyBus())
	require.NoError(t, err)
	_, err = g.Step()
	assert.ErrorIs(t, err, bus.ErrOutOfRange, "SP points past the 32kB image")

	g, err = New(image)
	require.NoError(t, err)
	cycles, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(16), cycles)
	assert.Equal(t, uint16(0xFFFC), g.CPU.SP)
}

// newMBC1Image returns a 64kB MBC1 image holding program, with the
// first byte of every bank set to the bank number plus 0x40.
func newMBC1Image(program ...byte) []byte {
	image := append(newImage("BANKS", program...), make([]byte, 0x8000)...)
	image[0x147] = 0x01 // MBC1
	image[0x148] = 0x01 // 64kB
	for bank := 1; bank < 4; bank++ {
		image[bank*0x4000] = 0x40 + byte(bank)
	}

	var checksum uint8
	for _, b := range image[0x134:0x14D] {
		checksum = checksum - b - 1
	}
	image[0x14D] = checksum
	return image
}

func TestGameBoy_MBC1(t *testing.T) {
	image := newMBC1Image(
		0xFA, 0x00, 0x40, // LD A, (0x4000)
		0x47,             // LD B, A
		0x3E, 0x02,       // LD A, 2
		0xEA, 0x00, 0x20, // LD (0x2000), A
		0xFA, 0x00, 0x40, // LD A, (0x4000)
		0x76,             // HALT
	)

	g, err := New(image)
	require.NoError(t, err)
	assert.NoError(t, g.Cartridge.Validate())

	stats, err := g.Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, Halted, stats.Reason)
	assert.Equal(t, uint8(0x41), g.CPU.B, "bank 1 is mapped at power on")
	assert.Equal(t, uint8(0x42), g.CPU.A, "bank 2 is mapped after the write")

	g, err = New(image, WithROMOnlyBus())
	require.NoError(t, err)
	stats, err = g.Run(context.Background(), 100)
	assert.ErrorIs(t, err, bus.ErrReadOnly)
	assert.Equal(t, Failed, stats.Reason)
}

func TestGameBoy_Interrupts(t *testing.T) {
	image := newImage("IRQ",
		0x3E, 0x04, // LD A, 0x04
		0xE0, 0xFF, // LDH (IE), A
		0xFB,       // EI
		0xE0, 0x0F, // LDH (IF), A
		0x00, // NOP
	)
	copy(image[0x50:], []byte{
		0x06, 0x42, // LD B, 0x42
		0x76, // HALT
	})

	g, err := New(image, WithInterrupts())
	require.NoError(t, err)

	stats, err := g.Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, Halted, stats.Reason)
	assert.Equal(t, uint8(0x42), g.CPU.B)
	assert.False(t, g.CPU.IME)
	assert.Equal(t, uint8(0), g.Interrupts.Flag)
	assert.Equal(t, uint8(0x04), g.Interrupts.Enable)
}

func TestGameBoy_Digest(t *testing.T) {
	image := newImage("DIGEST", 0x3C, 0x18, 0xFD) // INC A, JR -3

	a, err := New(image)
	require.NoError(t, err)
	b, err := New(image)
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest())

	_, err = a.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), b.Digest())

	_, err = b.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestGameBoy_Title(t *testing.T) {
	g, err := New(newImage("TETRIS"))
	require.NoError(t, err)
	assert.Equal(t, "TETRIS", g.Title())
}

func TestGameBoy_InvalidImage(t *testing.T) {
	_, err := New(make([]byte, 0x8001))
	assert.ErrorIs(t, err, bus.ErrInvalidImage)
}

func TestGameBoy_Logger(t *testing.T) {
	image := newImage("LOG")
	image[0x14D]++ // corrupt the header checksum

	var out bytes.Buffer
	_, err := New(image, WithLogger(log.NewWriter(&out, false)))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "[INFO]\tCartridge: LOG")
	assert.Contains(t, out.String(), "[ERROR]\t")
	assert.Contains(t, out.String(), "header checksum mismatch")
}
