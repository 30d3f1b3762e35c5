package gameboy

import "github.com/thelolagemann/sm83/pkg/log"

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger of the GameBoy and its CPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithROMOnlyBus makes the CPU execute directly from the cartridge
// ROM. Every write, including stack pushes, fails.
func WithROMOnlyBus() Opt {
	return func(gb *GameBoy) {
		gb.romOnly = true
	}
}

// WithInterrupts attaches the interrupt flag and enable registers.
func WithInterrupts() Opt {
	return func(gb *GameBoy) {
		gb.withInterrupts = true
	}
}

// WithBreakOnIllegal makes Run stop at an illegal opcode as a
// breakpoint instead of failing.
func WithBreakOnIllegal() Opt {
	return func(gb *GameBoy) {
		gb.breakOnIllegal = true
	}
}
