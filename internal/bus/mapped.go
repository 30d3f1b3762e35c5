package bus

import "fmt"

// Mapped is a bus that maps a cartridge into the lower half of the
// address space, and backs the upper half with writable memory.
//
//	0x0000 - 0x7FFF - cartridge
//	0x8000 - 0xDFFF - writable memory
//	0xE000 - 0xFDFF - echo of 0xC000 - 0xDDFF
//	0xFE00 - 0xFFFF - writable memory
//
// The writable half stands in for the video, external, work and high
// RAM until dedicated peripherals claim their regions. Registers in
// the 0xFF00 - 0xFFFF page can be claimed with Attach. A bus built
// with NewBanked also hands 0xA000 - 0xBFFF to the cartridge.
type Mapped struct {
	cart   Bus
	banked bool
	ram    [0x8000]byte

	hardware [0x100]*Hardware
}

// Hardware is a memory mapped register. A nil Write makes the
// register read-only, writes to it are ignored.
type Hardware struct {
	Read  func() uint8
	Write func(value uint8)
}

// Attach routes accesses to address through hw. Only the
// 0xFF00 - 0xFFFF page holds hardware registers.
func (m *Mapped) Attach(address uint16, hw *Hardware) {
	if address < 0xFF00 {
		panic(fmt.Sprintf("bus: 0x%04X is not a hardware register address", address))
	}
	if hw == nil || hw.Read == nil {
		panic(fmt.Sprintf("bus: hardware register 0x%04X has no read function", address))
	}
	m.hardware[address-0xFF00] = hw
}

// NewMapped returns a new Mapped bus over rom. Writes to the ROM
// fail with ErrReadOnly.
func NewMapped(rom *ROM) *Mapped {
	return &Mapped{cart: rom}
}

// NewBanked returns a new Mapped bus over a memory bank controller.
// The controller receives every access to 0x0000 - 0x7FFF, writes
// included, and to the external RAM at 0xA000 - 0xBFFF.
func NewBanked(controller Bus) *Mapped {
	return &Mapped{cart: controller, banked: true}
}

// Read returns the value at the given address.
func (m *Mapped) Read(address uint16) (uint8, error) {
	if m.cartridge(address) {
		return m.cart.Read(address)
	}
	if hw := m.register(address); hw != nil {
		return hw.Read(), nil
	}
	return m.ram[echo(address)-0x8000], nil
}

// Write writes the value to the given address.
func (m *Mapped) Write(address uint16, value uint8) error {
	if m.cartridge(address) {
		return m.cart.Write(address, value)
	}
	if hw := m.register(address); hw != nil {
		if hw.Write != nil {
			hw.Write(value)
		}
		return nil
	}
	m.ram[echo(address)-0x8000] = value
	return nil
}

// cartridge reports whether address is served by the cartridge.
func (m *Mapped) cartridge(address uint16) bool {
	return address < 0x8000 || m.banked && address >= 0xA000 && address < 0xC000
}

// echo maps the echo RAM region onto work RAM.
func echo(address uint16) uint16 {
	if address >= 0xE000 && address < 0xFE00 {
		return address - 0x2000
	}
	return address
}

func (m *Mapped) register(address uint16) *Hardware {
	if address < 0xFF00 {
		return nil
	}
	return m.hardware[address-0xFF00]
}
