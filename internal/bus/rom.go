package bus

import "fmt"

// ROM is a read-only bus backed by a cartridge image. The image
// length is fixed at construction and is always a power of two.
type ROM struct {
	rom []byte
}

// NewROM returns a new ROM bus over a copy of image.
func NewROM(image []byte) (*ROM, error) {
	if err := validateSize(len(image)); err != nil {
		return nil, err
	}

	rom := make([]byte, len(image))
	copy(rom, image)
	return &ROM{rom: rom}, nil
}

// Read returns the value at the given address.
func (r *ROM) Read(address uint16) (uint8, error) {
	if int(address) >= len(r.rom) {
		return 0xFF, outOfRange(address, len(r.rom))
	}
	return r.rom[address], nil
}

// Write always fails, as ROM is read-only.
func (r *ROM) Write(address uint16, value uint8) error {
	if int(address) >= len(r.rom) {
		return outOfRange(address, len(r.rom))
	}
	return fmt.Errorf("%w: 0x%02X to 0x%04X", ErrReadOnly, value, address)
}

// Len returns the length of the backing image.
func (r *ROM) Len() int {
	return len(r.rom)
}

// Bytes returns the backing image. The caller must not modify it.
func (r *ROM) Bytes() []byte {
	return r.rom
}
