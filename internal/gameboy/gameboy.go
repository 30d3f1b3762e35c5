// Package gameboy ties a cartridge, a memory bus and the CPU together
// into a session that can be stepped or run.
package gameboy

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/sm83/internal/bus"
	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/pkg/log"
)

// StopReason describes why Run returned.
type StopReason uint8

const (
	// StepLimit is reported when the requested number of steps ran.
	StepLimit StopReason = iota
	// Canceled is reported when the context was done.
	Canceled
	// Halted is reported when the CPU waits in HALT or STOP with no
	// interrupt that could wake it.
	Halted
	// Breakpoint is reported when an illegal opcode was reached with
	// WithBreakOnIllegal set.
	Breakpoint
	// Failed is reported when a step returned an error.
	Failed
)

var stopReasons = [...]string{
	StepLimit:  "step limit",
	Canceled:   "canceled",
	Halted:     "halted",
	Breakpoint: "breakpoint",
	Failed:     "failed",
}

func (r StopReason) String() string {
	if int(r) < len(stopReasons) {
		return stopReasons[r]
	}
	return fmt.Sprintf("StopReason(%d)", r)
}

// Stats summarises a call to Run.
type Stats struct {
	Steps  uint64
	Cycles uint64
	Reason StopReason

	// Illegal holds the opcode that stopped the run at a breakpoint.
	Illegal *cpu.IllegalOpcodeError
}

// GameBoy represents a running cartridge. It contains the CPU, the
// bus it executes from and, optionally, the interrupt registers.
type GameBoy struct {
	CPU        *cpu.CPU
	Cartridge  *cartridge.Cartridge
	Interrupts *interrupts.Service

	log.Logger

	bus cpu.Bus

	romOnly        bool
	withInterrupts bool
	breakOnIllegal bool
}

// New returns a new GameBoy running image, with the CPU holding its
// power on values.
func New(image []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(image)
	if err != nil {
		return nil, err
	}

	g := &GameBoy{
		Cartridge: cart,
		Logger:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	header := cart.Header()
	g.Infof("Cartridge: %s", header.String())
	if err := cart.Validate(); err != nil {
		g.Errorf("%v", err)
	}

	if g.withInterrupts {
		g.Interrupts = interrupts.NewService()
	}

	if g.romOnly {
		g.bus = cart.ROM()
	} else {
		var mapped *bus.Mapped
		if controller := cart.Controller(); controller != nil {
			mapped = bus.NewBanked(controller)
		} else {
			if header.CartridgeType != cartridge.ROM {
				g.Errorf("no memory bank controller for %s, mapping the first 32kB only", header.CartridgeType)
			}
			mapped = bus.NewMapped(cart.ROM())
		}
		if g.Interrupts != nil {
			g.Interrupts.Attach(mapped)
		}
		g.bus = mapped
	}

	cpuOpts := []cpu.Opt{cpu.WithLogger(g.Logger)}
	if g.Interrupts != nil {
		cpuOpts = append(cpuOpts, cpu.WithInterrupts(g.Interrupts))
	}
	g.CPU = cpu.New(g.bus, cpuOpts...)

	return g, nil
}

// Bus returns the bus the CPU executes from.
func (g *GameBoy) Bus() cpu.Bus {
	return g.bus
}

// Title returns the title of the cartridge.
func (g *GameBoy) Title() string {
	return g.Cartridge.Title()
}

// Step executes a single instruction, returning the cycles it took.
func (g *GameBoy) Step() (uint32, error) {
	return g.CPU.Step()
}

// Run steps the CPU until maxSteps instructions have run, ctx is
// done, a step fails, or the CPU halts with nothing to wake it. A
// maxSteps of 0 or less runs until one of the other conditions.
func (g *GameBoy) Run(ctx context.Context, maxSteps int) (Stats, error) {
	stats := Stats{}
	for maxSteps <= 0 || stats.Steps < uint64(maxSteps) {
		if err := ctx.Err(); err != nil {
			stats.Reason = Canceled
			return stats, err
		}

		cycles, err := g.CPU.Step()
		if err != nil {
			var illegal *cpu.IllegalOpcodeError
			if g.breakOnIllegal && errors.As(err, &illegal) {
				g.Infof("breakpoint: %v", illegal)
				stats.Reason = Breakpoint
				stats.Illegal = illegal
				return stats, nil
			}
			stats.Reason = Failed
			return stats, err
		}
		stats.Steps++
		stats.Cycles += uint64(cycles)

		if (g.CPU.Halted() || g.CPU.Stopped()) && !g.wakeable() {
			stats.Reason = Halted
			return stats, nil
		}
	}

	stats.Reason = StepLimit
	return stats, nil
}

// wakeable reports whether an interrupt is pending that would wake the
// CPU. Nothing requests interrupts while the CPU waits, so a CPU
// without one waits forever.
func (g *GameBoy) wakeable() bool {
	return g.Interrupts != nil && g.Interrupts.Pending() != 0
}

// Digest returns the xxhash64 digest of the register file, used to
// compare the state of two runs.
func (g *GameBoy) Digest() uint64 {
	c := g.CPU
	state := []byte{c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, 0, 0, 0, 0, 0}
	binary.LittleEndian.PutUint16(state[8:], c.SP)
	binary.LittleEndian.PutUint16(state[10:], c.PC)
	if c.IME {
		state[12] = 1
	}
	return xxhash.Sum64(state)
}
