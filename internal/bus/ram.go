package bus

// RAM is a flat, writable bus.
type RAM struct {
	data []byte
}

// NewRAM returns a new zeroed RAM of the given size, which must be
// a power of two no larger than the 16-bit address space.
func NewRAM(size int) (*RAM, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if size > 0x10000 {
		return nil, outOfRange(0xFFFF, size)
	}
	return &RAM{data: make([]byte, size)}, nil
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) (uint8, error) {
	if int(address) >= len(r.data) {
		return 0xFF, outOfRange(address, len(r.data))
	}
	return r.data[address], nil
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) error {
	if int(address) >= len(r.data) {
		return outOfRange(address, len(r.data))
	}
	r.data[address] = value
	return nil
}

// Load copies data into the RAM starting at address.
func (r *RAM) Load(address uint16, data []byte) error {
	if int(address)+len(data) > len(r.data) {
		return outOfRange(address, len(r.data))
	}
	copy(r.data[address:], data)
	return nil
}
