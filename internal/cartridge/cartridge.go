// Package cartridge parses and validates cartridge images, and
// exposes them as a bus for the CPU: a read-only ROM, or the memory
// bank controller the header declares.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/sm83/internal/bus"
	"github.com/thelolagemann/sm83/pkg/bits"
)

var (
	// ErrNoHeader is returned when an image is too small to hold a
	// cartridge header.
	ErrNoHeader = errors.New("cartridge: image too small for a header")
	// ErrHeaderChecksum is returned when the stored header checksum
	// does not match the header contents.
	ErrHeaderChecksum = errors.New("cartridge: header checksum mismatch")
	// ErrROMSize is returned when the image length differs from the
	// ROM size declared in the header.
	ErrROMSize = errors.New("cartridge: ROM size mismatch")
)

// Cartridge represents a game cartridge.
type Cartridge struct {
	header Header
	rom    *bus.ROM
	mbc    *MemoryBankedCartridge1

	fingerprint uint64
}

// New parses the header of image and builds the ROM bus over it.
// Only structural problems are fatal; a wrong checksum or declared
// size is reported by Validate.
func New(image []byte) (*Cartridge, error) {
	header, err := ParseHeader(image)
	if err != nil {
		return nil, err
	}
	rom, err := bus.NewROM(image)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	c := &Cartridge{
		header:      header,
		rom:         rom,
		fingerprint: xxhash.Sum64(image),
	}
	switch header.CartridgeType {
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c.mbc = NewMemoryBankedCartridge1(rom.Bytes(), header.RAMSize)
	}
	return c, nil
}

// Validate reports every problem found in image.
func Validate(image []byte) error {
	var result *multierror.Error

	if !bits.IsPowerOfTwo(len(image)) {
		result = multierror.Append(result, fmt.Errorf("%w: length %d is not a power of two", bus.ErrInvalidImage, len(image)))
	}

	header, err := ParseHeader(image)
	if err != nil {
		return multierror.Append(result, err).ErrorOrNil()
	}
	if !header.ChecksumValid() {
		result = multierror.Append(result, fmt.Errorf("%w: stored 0x%02X, computed 0x%02X",
			ErrHeaderChecksum, header.HeaderChecksum, header.computedChecksum))
	}
	if header.ROMSize != uint(len(image)) {
		result = multierror.Append(result, fmt.Errorf("%w: header declares %d bytes, image is %d",
			ErrROMSize, header.ROMSize, len(image)))
	}

	return result.ErrorOrNil()
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// ROM returns the read-only bus over the cartridge image.
func (c *Cartridge) ROM() *bus.ROM {
	return c.rom
}

// Controller returns the memory bank controller declared by the
// header, or nil when the cartridge has none or it is not supported.
func (c *Cartridge) Controller() bus.Bus {
	if c.mbc == nil {
		return nil
	}
	return c.mbc
}

// Validate reports every problem found in the cartridge image.
func (c *Cartridge) Validate() error {
	return Validate(c.rom.Bytes())
}

// Fingerprint returns the xxhash64 digest of the cartridge image.
func (c *Cartridge) Fingerprint() uint64 {
	return c.fingerprint
}
