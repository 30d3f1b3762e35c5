package cartridge

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/bus"
)

// MemoryBankedCartridge1 is the MBC1 memory bank controller. It maps
// up to 2MB of ROM and 32kB of RAM into the address space:
//
//	0x0000 - 0x3FFF - ROM bank 0, or bank 0x20/0x40/0x60 in RAM banking mode
//	0x4000 - 0x7FFF - switchable ROM bank
//	0xA000 - 0xBFFF - switchable RAM bank, when enabled
//
// Writes to the ROM area program the controller registers.
type MemoryBankedCartridge1 struct {
	rom      []byte
	romBanks uint32

	ram      []byte
	ramBanks uint32

	// romBank holds the lower 5 bits of the ROM bank number, and
	// upperBank the 2 bits written to 0x4000 - 0x5FFF.
	romBank   uint32
	upperBank uint32

	ramEnabled bool
	ramBanking bool
}

// NewMemoryBankedCartridge1 returns a new MBC1 controller over rom,
// with ramSize bytes of external RAM.
func NewMemoryBankedCartridge1(rom []byte, ramSize uint) *MemoryBankedCartridge1 {
	if ramSize > 0x8000 {
		ramSize = 0x8000
	}
	m := &MemoryBankedCartridge1{
		rom:      rom,
		romBanks: uint32(len(rom) / 0x4000),
		ram:      make([]byte, ramSize),
		ramBanks: uint32(ramSize / 0x2000),
		romBank:  1,
	}
	if m.romBanks == 0 {
		m.romBanks = 1
	}
	return m
}

// Read returns the value at the given address.
func (m *MemoryBankedCartridge1) Read(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		bank := uint32(0)
		if m.ramBanking {
			bank = m.upperBank << 5
		}
		return m.readROM(bank, address)
	case address < 0x8000:
		return m.readROM(m.upperBank<<5|m.romBank, address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF, nil
		}
		return m.ram[m.ramOffset(address)], nil
	}
	return 0xFF, fmt.Errorf("%w: 0x%04X is not mapped by MBC1", bus.ErrOutOfRange, address)
}

// Write updates the controller registers below 0x8000, and writes
// external RAM between 0xA000 and 0xBFFF.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) error {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = uint32(value & 0x1F)
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.upperBank = uint32(value & 0x03)
	case address < 0x8000:
		m.ramBanking = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	default:
		return fmt.Errorf("%w: 0x%04X is not mapped by MBC1", bus.ErrOutOfRange, address)
	}
	return nil
}

// ROMBank returns the bank currently mapped at 0x4000 - 0x7FFF.
func (m *MemoryBankedCartridge1) ROMBank() uint32 {
	return (m.upperBank<<5 | m.romBank) % m.romBanks
}

func (m *MemoryBankedCartridge1) readROM(bank uint32, offset uint16) (uint8, error) {
	i := int(bank%m.romBanks)*0x4000 + int(offset)
	if i >= len(m.rom) {
		return 0xFF, fmt.Errorf("%w: bank %d offset 0x%04X (size 0x%X)", bus.ErrOutOfRange, bank, offset, len(m.rom))
	}
	return m.rom[i], nil
}

// ramOffset returns the index into the external RAM for address.
func (m *MemoryBankedCartridge1) ramOffset(address uint16) int {
	bank := uint32(0)
	if m.ramBanking && m.ramBanks > 1 {
		bank = m.upperBank % m.ramBanks
	}
	return (int(bank)*0x2000 + int(address-0xA000)) % len(m.ram)
}
