package cpu

import "fmt"

// Operand identifies where an instruction reads a value from, or
// stores one to. Operands are resolved when the instruction executes,
// so indirect addresses always reflect the current register contents.
type Operand uint8

const (
	None Operand = iota

	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL

	RegAF
	RegBC
	RegDE
	RegHL
	RegSP

	IndirectBC
	IndirectDE
	IndirectHL
	IndirectHLInc // (HL), then HL is incremented
	IndirectHLDec // (HL), then HL is decremented
	IndirectC     // (0xFF00 + C)

	Imm8
	Imm16
	SignedImm8

	IndirectImm8  // (0xFF00 + n)
	IndirectImm16 // (nn)

	CondNZ
	CondZ
	CondNC
	CondC
)

var operandNames = [...]string{
	None:          "",
	RegA:          "A",
	RegB:          "B",
	RegC:          "C",
	RegD:          "D",
	RegE:          "E",
	RegH:          "H",
	RegL:          "L",
	RegAF:         "AF",
	RegBC:         "BC",
	RegDE:         "DE",
	RegHL:         "HL",
	RegSP:         "SP",
	IndirectBC:    "(BC)",
	IndirectDE:    "(DE)",
	IndirectHL:    "(HL)",
	IndirectHLInc: "(HL+)",
	IndirectHLDec: "(HL-)",
	IndirectC:     "(C)",
	Imm8:          "d8",
	Imm16:         "d16",
	SignedImm8:    "r8",
	IndirectImm8:  "(a8)",
	IndirectImm16: "(a16)",
	CondNZ:        "NZ",
	CondZ:         "Z",
	CondNC:        "NC",
	CondC:         "C",
}

func (o Operand) String() string {
	if int(o) < len(operandNames) {
		return operandNames[o]
	}
	return fmt.Sprintf("Operand(%d)", o)
}

// Wide reports whether the operand holds a 16-bit value.
func (o Operand) Wide() bool {
	switch o {
	case RegAF, RegBC, RegDE, RegHL, RegSP, Imm16:
		return true
	}
	return false
}

// registers8 lists the 8-bit operands in instruction encoding order.
var registers8 = [8]Operand{RegB, RegC, RegD, RegE, RegH, RegL, IndirectHL, RegA}

// read8 resolves an 8-bit source operand.
func (c *CPU) read8(o Operand) uint8 {
	switch o {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	case IndirectBC:
		return c.readByte(c.BC.Uint16())
	case IndirectDE:
		return c.readByte(c.DE.Uint16())
	case IndirectHL:
		return c.readByte(c.HL.Uint16())
	case IndirectHLInc:
		address := c.HL.Uint16()
		c.HL.SetUint16(address + 1)
		return c.readByte(address)
	case IndirectHLDec:
		address := c.HL.Uint16()
		c.HL.SetUint16(address - 1)
		return c.readByte(address)
	case IndirectC:
		return c.readByte(0xFF00 | uint16(c.C))
	case Imm8, SignedImm8:
		return c.readOperand()
	case IndirectImm8:
		return c.readByte(0xFF00 | uint16(c.readOperand()))
	case IndirectImm16:
		return c.readByte(c.readOperand16())
	}
	panic(fmt.Sprintf("cpu: %s is not an 8-bit source", o))
}

// write8 stores value to an 8-bit destination operand.
func (c *CPU) write8(o Operand, value uint8) {
	switch o {
	case RegA:
		c.A = value
	case RegB:
		c.B = value
	case RegC:
		c.C = value
	case RegD:
		c.D = value
	case RegE:
		c.E = value
	case RegH:
		c.H = value
	case RegL:
		c.L = value
	case IndirectBC:
		c.writeByte(c.BC.Uint16(), value)
	case IndirectDE:
		c.writeByte(c.DE.Uint16(), value)
	case IndirectHL:
		c.writeByte(c.HL.Uint16(), value)
	case IndirectHLInc:
		address := c.HL.Uint16()
		c.HL.SetUint16(address + 1)
		c.writeByte(address, value)
	case IndirectHLDec:
		address := c.HL.Uint16()
		c.HL.SetUint16(address - 1)
		c.writeByte(address, value)
	case IndirectC:
		c.writeByte(0xFF00|uint16(c.C), value)
	case IndirectImm8:
		c.writeByte(0xFF00|uint16(c.readOperand()), value)
	case IndirectImm16:
		c.writeByte(c.readOperand16(), value)
	default:
		panic(fmt.Sprintf("cpu: %s is not an 8-bit destination", o))
	}
}

// read16 resolves a 16-bit source operand.
func (c *CPU) read16(o Operand) uint16 {
	switch o {
	case RegAF:
		return c.AF.Uint16()
	case RegBC:
		return c.BC.Uint16()
	case RegDE:
		return c.DE.Uint16()
	case RegHL:
		return c.HL.Uint16()
	case RegSP:
		return c.SP
	case Imm16:
		return c.readOperand16()
	}
	panic(fmt.Sprintf("cpu: %s is not a 16-bit source", o))
}

// write16 stores value to a 16-bit destination operand. Memory is
// written low byte first.
func (c *CPU) write16(o Operand, value uint16) {
	switch o {
	case RegAF:
		c.AF.SetUint16(value)
	case RegBC:
		c.BC.SetUint16(value)
	case RegDE:
		c.DE.SetUint16(value)
	case RegHL:
		c.HL.SetUint16(value)
	case RegSP:
		c.SP = value
	case IndirectImm16:
		address := c.readOperand16()
		c.writeByte(address, uint8(value))
		c.writeByte(address+1, uint8(value>>8))
	default:
		panic(fmt.Sprintf("cpu: %s is not a 16-bit destination", o))
	}
}

// condition evaluates a condition operand. None is always true.
func (c *CPU) condition(o Operand) bool {
	switch o {
	case None:
		return true
	case CondNZ:
		return !c.isFlagSet(FlagZero)
	case CondZ:
		return c.isFlagSet(FlagZero)
	case CondNC:
		return !c.isFlagSet(FlagCarry)
	case CondC:
		return c.isFlagSet(FlagCarry)
	}
	panic(fmt.Sprintf("cpu: %s is not a condition", o))
}
