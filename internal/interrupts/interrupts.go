// Package interrupts provides the interrupt flag and enable registers,
// and the source the CPU polls for pending interrupts.
package interrupts

import (
	"github.com/thelolagemann/sm83/internal/bus"
	"github.com/thelolagemann/sm83/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag uint8 = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1).
	LCDFlag uint8 = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag uint8 = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag uint8 = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag uint8 = types.Bit4
)

const (
	// IF is the address of the interrupt flag register.
	IF uint16 = 0xFF0F
	// IE is the address of the interrupt enable register.
	IE uint16 = 0xFFFF
)

// Service holds the interrupt registers.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. An interrupt that is both requested and enabled
// is pending, and is serviced by the CPU once IME is set.
type Service struct {
	Flag   uint8 // interrupt Flag (IF)
	Enable uint8 // interrupt Enable (IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Attach maps the IF and IE registers onto m.
func (s *Service) Attach(m *bus.Mapped) {
	m.Attach(IF, &bus.Hardware{
		Read: func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
		Write: func(v uint8) {
			s.Flag = v & 0x1F // only the first 5 bits are used
		},
	})
	m.Attach(IE, &bus.Hardware{
		Read: func() uint8 {
			return s.Enable
		},
		Write: func(v uint8) {
			s.Enable = v
		},
	})
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Pending returns the interrupts that are both requested and enabled.
func (s *Service) Pending() uint8 {
	return s.Flag & s.Enable & 0x1F
}

// Acknowledge clears the request of the interrupt with the given
// bit index.
func (s *Service) Acknowledge(bit uint8) {
	s.Flag &^= 1 << bit
}
