// Package bus provides the memory buses the CPU reads its instruction
// stream and data through. Every bus is a flat, byte addressable store
// with synchronous access and no internal concurrency.
package bus

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/pkg/bits"
)

var (
	// ErrInvalidImage is returned when a bus is constructed from a
	// backing image whose length is not a power of two.
	ErrInvalidImage = errors.New("bus: invalid image")
	// ErrOutOfRange is returned when an address lies beyond the
	// backing store. Addresses never wrap around.
	ErrOutOfRange = errors.New("bus: address out of range")
	// ErrReadOnly is returned when a write targets a read-only region.
	ErrReadOnly = errors.New("bus: write to read-only memory")
)

// Bus is the read/write contract shared by every bus in this package.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

func validateSize(size int) error {
	if !bits.IsPowerOfTwo(size) {
		return fmt.Errorf("%w: length %d is not a power of two", ErrInvalidImage, size)
	}
	return nil
}

func outOfRange(address uint16, size int) error {
	return fmt.Errorf("%w: 0x%04X (size 0x%X)", ErrOutOfRange, address, size)
}
