// Package cpu implements the instruction processing unit of the SM83,
// the CPU found in the Game Boy. The CPU is table driven: every step
// fetches an opcode through the Bus, looks it up in a Table and
// executes it against the register file.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and left when an interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP, and left when an interrupt is pending.
	ModeStop
)

// Bus is the memory the CPU fetches instructions and data from.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	types.Registers

	// IME is the interrupt master enable flag.
	IME bool
	// eiDelay counts down the steps until EI takes effect.
	eiDelay uint8

	bus   Bus
	table *Table
	irq   Interrupter
	log   log.Logger

	// fault holds the first bus error of the current step.
	fault error

	// mode is the running state, left by a pending interrupt.
	mode mode
	// cycles is the number of T-cycles executed since the last reset.
	cycles uint64
	// instructions is the number of instructions completed since the
	// last reset.
	instructions uint64
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithTable makes the CPU decode with t instead of DefaultTable.
func WithTable(t *Table) Opt {
	return func(c *CPU) {
		c.table = t
	}
}

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithInterrupts attaches an interrupt source to the CPU.
func WithInterrupts(irq Interrupter) Opt {
	return func(c *CPU) {
		c.irq = irq
	}
}

// New creates a new CPU reading and writing through bus, with the
// registers holding the values the boot ROM leaves behind.
func New(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus:   bus,
		table: DefaultTable(),
		log:   log.NewNullLogger(),
	}
	c.BindPairs()
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.Reset()

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset sets the program counter and stack pointer to their values
// at the start of a cartridge, and wakes the CPU if it was halted or
// stopped. No other register is changed.
func (c *CPU) Reset() {
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.mode = ModeNormal
	c.eiDelay = 0
}

// Step fetches, decodes and executes a single instruction, returning
// the number of clock cycles it took.
//
// An opcode without a table entry fails with an *IllegalOpcodeError,
// after the program counter has moved past the opcode and before any
// other state has changed. A failing bus access aborts the rest of
// the instruction and is returned wrapped.
func (c *CPU) Step() (uint32, error) {
	c.fault = nil

	if cycles, ok := c.handleInterrupts(); ok {
		if c.fault != nil {
			return 0, fmt.Errorf("cpu: interrupt dispatch: %w", c.fault)
		}
		return c.account(cycles)
	}
	if c.mode != ModeNormal {
		// nothing to wake the CPU, idle for a machine cycle
		return c.account(4)
	}

	pc := c.PC
	opcode := c.readOperand()
	if c.fault != nil {
		return 0, fmt.Errorf("cpu: fetch at 0x%04X: %w", pc, c.fault)
	}

	op := c.table.Main[opcode]
	if op.Instruction == PREFIX {
		opcode = c.readOperand()
		if c.fault != nil {
			return 0, fmt.Errorf("cpu: fetch at 0x%04X: %w", pc+1, c.fault)
		}
		op = c.table.Extended[opcode]
		if !op.Valid() {
			return 0, &IllegalOpcodeError{Opcode: opcode, Extended: true, PC: pc}
		}
	} else if !op.Valid() {
		c.log.Debugf("illegal opcode 0x%02X at 0x%04X", opcode, pc)
		return 0, &IllegalOpcodeError{Opcode: opcode, PC: pc}
	}

	taken := c.execute(op)
	if c.fault != nil {
		return 0, fmt.Errorf("cpu: %s at 0x%04X: %w", op, pc, c.fault)
	}

	c.instructions++
	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.IME = true
		}
	}

	if taken {
		return c.account(op.CyclesTaken)
	}
	return c.account(op.Cycles)
}

func (c *CPU) account(cycles uint8) (uint32, error) {
	c.cycles += uint64(cycles)
	return uint32(cycles), nil
}

// Cycles returns the number of clock cycles executed since the CPU
// was created.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Instructions returns the number of instructions executed since
// the CPU was created.
func (c *CPU) Instructions() uint64 {
	return c.instructions
}

// Halted reports whether the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Stopped reports whether the CPU is waiting in STOP.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Table returns the opcode table the CPU decodes with.
func (c *CPU) Table() *Table {
	return c.table
}

// readOperand reads the next byte of the instruction stream.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two bytes of the instruction stream
// as a little endian value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from the bus. Once an access of the current
// step has failed every read returns 0xFF.
func (c *CPU) readByte(address uint16) uint8 {
	if c.fault != nil {
		return 0xFF
	}
	value, err := c.bus.Read(address)
	if err != nil {
		c.fault = err
		return 0xFF
	}
	return value
}

// writeByte writes the given value to the given address. Once an
// access of the current step has failed writes are dropped.
func (c *CPU) writeByte(address uint16, value uint8) {
	if c.fault != nil {
		return
	}
	if err := c.bus.Write(address, value); err != nil {
		c.fault = err
	}
}

// String returns the register file in a single line.
func (c *CPU) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC)
}
