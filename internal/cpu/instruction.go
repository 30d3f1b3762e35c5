package cpu

import (
	"fmt"
	"strings"
)

// Instruction is the kind of operation an opcode performs.
type Instruction uint8

const (
	// Illegal marks an opcode without a table entry.
	Illegal Instruction = iota

	NOP
	LD
	LDHL // LD HL, SP+r8; unlike LD it affects the flags
	PUSH
	POP

	ADD
	ADC
	SUB
	SBC
	AND
	XOR
	OR
	CP
	INC
	DEC
	DAA
	CPL
	SCF
	CCF

	RLCA
	RRCA
	RLA
	RRA

	JP
	JR
	CALL
	RET
	RETI
	RST

	HALT
	STOP
	DI
	EI
	PREFIX // 0xCB, escapes into the extended table

	RLC
	RRC
	RL
	RR
	SLA
	SRA
	SWAP
	SRL
	BIT
	RES
	SET
)

var instructionNames = [...]string{
	Illegal: "ILLEGAL",
	NOP:     "NOP",
	LD:      "LD",
	LDHL:    "LD",
	PUSH:    "PUSH",
	POP:     "POP",
	ADD:     "ADD",
	ADC:     "ADC",
	SUB:     "SUB",
	SBC:     "SBC",
	AND:     "AND",
	XOR:     "XOR",
	OR:      "OR",
	CP:      "CP",
	INC:     "INC",
	DEC:     "DEC",
	DAA:     "DAA",
	CPL:     "CPL",
	SCF:     "SCF",
	CCF:     "CCF",
	RLCA:    "RLCA",
	RRCA:    "RRCA",
	RLA:     "RLA",
	RRA:     "RRA",
	JP:      "JP",
	JR:      "JR",
	CALL:    "CALL",
	RET:     "RET",
	RETI:    "RETI",
	RST:     "RST",
	HALT:    "HALT",
	STOP:    "STOP",
	DI:      "DI",
	EI:      "EI",
	PREFIX:  "PREFIX CB",
	RLC:     "RLC",
	RRC:     "RRC",
	RL:      "RL",
	RR:      "RR",
	SLA:     "SLA",
	SRA:     "SRA",
	SWAP:    "SWAP",
	SRL:     "SRL",
	BIT:     "BIT",
	RES:     "RES",
	SET:     "SET",
}

func (i Instruction) String() string {
	if int(i) < len(instructionNames) {
		return instructionNames[i]
	}
	return fmt.Sprintf("Instruction(%d)", i)
}

// Opcode is an entry of an opcode table.
type Opcode struct {
	Instruction Instruction
	Operand1    Operand
	Operand2    Operand

	// Arg is the bit index of BIT, RES and SET, or the restart
	// address of RST.
	Arg uint8

	// Cycles is the cost in clock cycles. For conditional
	// instructions it is the cost when the condition fails, and
	// CyclesTaken the cost when it holds. Extended opcodes include
	// the cost of the prefix.
	Cycles      uint8
	CyclesTaken uint8
}

// Valid reports whether the opcode has a table entry.
func (o Opcode) Valid() bool {
	return o.Instruction != Illegal
}

// String returns the mnemonic of the opcode, e.g. "LD B, d8".
func (o Opcode) String() string {
	switch o.Instruction {
	case RST:
		return fmt.Sprintf("RST %02XH", o.Arg)
	case BIT, RES, SET:
		return fmt.Sprintf("%s %d, %s", o.Instruction, o.Arg, o.Operand1)
	case LDHL:
		return "LD HL, SP+r8"
	case SUB, AND, XOR, OR, CP:
		// the accumulator is implied
		return fmt.Sprintf("%s %s", o.Instruction, o.Operand2)
	}

	var operands []string
	for _, operand := range []Operand{o.Operand1, o.Operand2} {
		if operand != None {
			operands = append(operands, operand.String())
		}
	}
	if len(operands) == 0 {
		return o.Instruction.String()
	}
	return o.Instruction.String() + " " + strings.Join(operands, ", ")
}
