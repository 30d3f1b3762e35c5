package cpu

import (
	"fmt"
	"sync"
)

// Table holds the two opcode tables. Main is indexed by the opcode
// byte, Extended by the byte following a 0xCB prefix. A Table is
// never modified once built.
type Table struct {
	Main     [256]Opcode
	Extended [256]Opcode
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the shared SM83 opcode table, building it on
// first use.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// Decode returns the main table entry for opcode.
func (t *Table) Decode(opcode uint8) (Opcode, error) {
	op := t.Main[opcode]
	if !op.Valid() {
		return op, &IllegalOpcodeError{Opcode: opcode}
	}
	return op, nil
}

// DecodeExtended returns the extended table entry for opcode.
func (t *Table) DecodeExtended(opcode uint8) (Opcode, error) {
	op := t.Extended[opcode]
	if !op.Valid() {
		return op, &IllegalOpcodeError{Opcode: opcode, Extended: true}
	}
	return op, nil
}

var (
	pairs      = [4]Operand{RegBC, RegDE, RegHL, RegSP}
	stackPairs = [4]Operand{RegBC, RegDE, RegHL, RegAF}
	conditions = [4]Operand{CondNZ, CondZ, CondNC, CondC}
	indirects  = [4]Operand{IndirectBC, IndirectDE, IndirectHLInc, IndirectHLDec}
	aluOps     = [8]Instruction{ADD, ADC, SUB, SBC, AND, XOR, OR, CP}
	shiftOps   = [8]Instruction{RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL}
)

// NewTable builds the SM83 opcode tables. Opcodes 0xD3, 0xDB, 0xDD,
// 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC and 0xFD are left
// undefined.
func NewTable() *Table {
	t := &Table{}
	t.generateControlInstructions()
	t.generateLoadInstructions()
	t.generateArithmeticInstructions()
	t.generateJumpInstructions()
	t.generateExtendedInstructions()
	return t
}

// define adds an unconditional opcode to the main table.
func (t *Table) define(opcode int, ins Instruction, o1, o2 Operand, cycles uint8) {
	t.defineBranch(opcode, ins, o1, o2, cycles, cycles)
}

// defineBranch adds a conditional opcode to the main table.
func (t *Table) defineBranch(opcode int, ins Instruction, o1, o2 Operand, cycles, taken uint8) {
	if t.Main[opcode].Valid() {
		panic(fmt.Sprintf("cpu: opcode 0x%02X defined twice (%s, %s)", opcode, t.Main[opcode], ins))
	}
	t.Main[opcode] = Opcode{Instruction: ins, Operand1: o1, Operand2: o2, Cycles: cycles, CyclesTaken: taken}
}

// defineCB adds an opcode to the extended table.
func (t *Table) defineCB(opcode int, ins Instruction, o1 Operand, arg, cycles uint8) {
	if t.Extended[opcode].Valid() {
		panic(fmt.Sprintf("cpu: opcode 0xCB 0x%02X defined twice", opcode))
	}
	t.Extended[opcode] = Opcode{Instruction: ins, Operand1: o1, Arg: arg, Cycles: cycles, CyclesTaken: cycles}
}

// memoryCost returns cycles, or indirect if the operand is (HL).
func memoryCost(o Operand, cycles, indirect uint8) uint8 {
	if o == IndirectHL {
		return indirect
	}
	return cycles
}

func (t *Table) generateControlInstructions() {
	t.define(0x00, NOP, None, None, 4)
	t.define(0x10, STOP, None, None, 4)
	t.define(0x76, HALT, None, None, 4)
	t.define(0xCB, PREFIX, None, None, 4)
	t.define(0xF3, DI, None, None, 4)
	t.define(0xFB, EI, None, None, 4)

	t.define(0x07, RLCA, None, None, 4)
	t.define(0x0F, RRCA, None, None, 4)
	t.define(0x17, RLA, None, None, 4)
	t.define(0x1F, RRA, None, None, 4)
	t.define(0x27, DAA, None, None, 4)
	t.define(0x2F, CPL, None, None, 4)
	t.define(0x37, SCF, None, None, 4)
	t.define(0x3F, CCF, None, None, 4)
}

// generateLoadInstructions generates the 8 and 16-bit loads, and the
// stack instructions.
//
//	0x40 LD B, B
//	0x41 LD B, C
//	....
//	0x7F LD A, A
func (t *Table) generateLoadInstructions() {
	for i, dst := range registers8 {
		// 0x06, 0x0E, ..., 0x3E - LD r, d8
		t.define(0x06+i*8, LD, dst, Imm8, memoryCost(dst, 8, 12))

		for j, src := range registers8 {
			opcode := 0x40 + i*8 + j
			if opcode == 0x76 {
				continue // HALT
			}
			t.define(opcode, LD, dst, src, memoryCost(dst, memoryCost(src, 4, 8), 8))
		}
	}

	for i, pair := range pairs {
		t.define(0x01+i*16, LD, pair, Imm16, 12)
	}
	for i, indirect := range indirects {
		t.define(0x02+i*16, LD, indirect, RegA, 8)
		t.define(0x0A+i*16, LD, RegA, indirect, 8)
	}
	for i, pair := range stackPairs {
		t.define(0xC1+i*16, POP, pair, None, 12)
		t.define(0xC5+i*16, PUSH, pair, None, 16)
	}

	t.define(0x08, LD, IndirectImm16, RegSP, 20)
	t.define(0xE0, LD, IndirectImm8, RegA, 12)
	t.define(0xF0, LD, RegA, IndirectImm8, 12)
	t.define(0xE2, LD, IndirectC, RegA, 8)
	t.define(0xF2, LD, RegA, IndirectC, 8)
	t.define(0xEA, LD, IndirectImm16, RegA, 16)
	t.define(0xFA, LD, RegA, IndirectImm16, 16)
	t.define(0xF8, LDHL, RegHL, SignedImm8, 12)
	t.define(0xF9, LD, RegSP, RegHL, 8)
}

func (t *Table) generateArithmeticInstructions() {
	for i, reg := range registers8 {
		t.define(0x04+i*8, INC, reg, None, memoryCost(reg, 4, 12))
		t.define(0x05+i*8, DEC, reg, None, memoryCost(reg, 4, 12))
	}
	for i, pair := range pairs {
		t.define(0x03+i*16, INC, pair, None, 8)
		t.define(0x09+i*16, ADD, RegHL, pair, 8)
		t.define(0x0B+i*16, DEC, pair, None, 8)
	}

	// 0x80 - 0xBF - ALU A, r
	// 0xC6, 0xCE, ..., 0xFE - ALU A, d8
	for i, ins := range aluOps {
		for j, src := range registers8 {
			t.define(0x80+i*8+j, ins, RegA, src, memoryCost(src, 4, 8))
		}
		t.define(0xC6+i*8, ins, RegA, Imm8, 8)
	}

	t.define(0xE8, ADD, RegSP, SignedImm8, 16)
}

func (t *Table) generateJumpInstructions() {
	t.define(0x18, JR, None, SignedImm8, 12)
	t.define(0xC3, JP, None, Imm16, 16)
	t.define(0xE9, JP, RegHL, None, 4)
	t.define(0xCD, CALL, None, Imm16, 24)
	t.define(0xC9, RET, None, None, 16)
	t.define(0xD9, RETI, None, None, 16)

	for i, cond := range conditions {
		t.defineBranch(0x20+i*8, JR, cond, SignedImm8, 8, 12)
		t.defineBranch(0xC0+i*8, RET, cond, None, 8, 20)
		t.defineBranch(0xC2+i*8, JP, cond, Imm16, 12, 16)
		t.defineBranch(0xC4+i*8, CALL, cond, Imm16, 12, 24)
	}

	// 0xC7, 0xCF, ..., 0xFF - RST n
	for i := 0; i < 8; i++ {
		t.define(0xC7+i*8, RST, None, None, 16)
		t.Main[0xC7+i*8].Arg = uint8(i * 8)
	}
}

// generateExtendedInstructions generates the 0xCB prefixed opcodes.
//
//	00 000 000
//	^^ ^^^ ^^^
//	op bit reg
func (t *Table) generateExtendedInstructions() {
	for i, ins := range shiftOps {
		for j, reg := range registers8 {
			t.defineCB(i*8+j, ins, reg, 0, memoryCost(reg, 8, 16))
		}
	}
	for b := 0; b < 8; b++ {
		for j, reg := range registers8 {
			t.defineCB(0x40+b*8+j, BIT, reg, uint8(b), memoryCost(reg, 8, 12))
			t.defineCB(0x80+b*8+j, RES, reg, uint8(b), memoryCost(reg, 8, 16))
			t.defineCB(0xC0+b*8+j, SET, reg, uint8(b), memoryCost(reg, 8, 16))
		}
	}
}
