package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is returned by Step when the fetched opcode has no
// entry in the opcode table. On hardware these opcodes lock up the CPU.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

// IllegalOpcodeError describes an illegal opcode, and where it was
// fetched from.
type IllegalOpcodeError struct {
	Opcode   uint8
	Extended bool   // opcode followed a 0xCB prefix
	PC       uint16 // address of the opcode
}

func (e *IllegalOpcodeError) Error() string {
	if e.Extended {
		return fmt.Sprintf("cpu: illegal opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}
