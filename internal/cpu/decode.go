package cpu

// execute performs the operation of op, resolving its operands
// against the current state. It reports whether a conditional
// instruction took its branch.
func (c *CPU) execute(op Opcode) bool {
	switch op.Instruction {
	case NOP:
	case LD:
		if op.Operand1.Wide() || op.Operand2.Wide() {
			c.write16(op.Operand1, c.read16(op.Operand2))
		} else {
			c.write8(op.Operand1, c.read8(op.Operand2))
		}
	case LDHL:
		c.HL.SetUint16(c.addSPSigned(c.read8(op.Operand2)))
	case PUSH:
		c.pushStack(c.read16(op.Operand1))
	case POP:
		c.write16(op.Operand1, c.popStack())

	case ADD:
		switch op.Operand1 {
		case RegHL:
			c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.read16(op.Operand2)))
		case RegSP:
			c.SP = c.addSPSigned(c.read8(op.Operand2))
		default:
			c.add(c.read8(op.Operand2), false)
		}
	case ADC:
		c.add(c.read8(op.Operand2), true)
	case SUB:
		c.sub(c.read8(op.Operand2), false)
	case SBC:
		c.sub(c.read8(op.Operand2), true)
	case AND:
		c.and(c.read8(op.Operand2))
	case XOR:
		c.xor(c.read8(op.Operand2))
	case OR:
		c.or(c.read8(op.Operand2))
	case CP:
		c.compare(c.read8(op.Operand2))
	case INC:
		if op.Operand1.Wide() {
			c.write16(op.Operand1, c.read16(op.Operand1)+1)
		} else {
			c.write8(op.Operand1, c.increment(c.read8(op.Operand1)))
		}
	case DEC:
		if op.Operand1.Wide() {
			c.write16(op.Operand1, c.read16(op.Operand1)-1)
		} else {
			c.write8(op.Operand1, c.decrement(c.read8(op.Operand1)))
		}
	case DAA:
		c.decimalAdjust()
	case CPL:
		c.complement()
	case SCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	case CCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))

	case RLCA:
		c.rotateLeftCarryAccumulator()
	case RRCA:
		c.rotateRightAccumulator()
	case RLA:
		c.rotateLeftAccumulatorThroughCarry()
	case RRA:
		c.rotateRightAccumulatorThroughCarry()

	case JP:
		if op.Operand1 == RegHL {
			c.PC = c.HL.Uint16()
			return true
		}
		return c.jumpAbsolute(c.condition(op.Operand1), c.read16(op.Operand2))
	case JR:
		return c.jumpRelative(c.condition(op.Operand1), int8(c.read8(op.Operand2)))
	case CALL:
		return c.call(c.condition(op.Operand1), c.read16(op.Operand2))
	case RET:
		return c.ret(c.condition(op.Operand1))
	case RETI:
		c.IME = true
		c.eiDelay = 0
		return c.ret(true)
	case RST:
		c.pushStack(c.PC)
		c.PC = uint16(op.Arg)

	case HALT:
		c.mode = ModeHalt
	case STOP:
		// STOP is followed by a padding byte
		c.readOperand()
		c.mode = ModeStop
	case DI:
		c.IME = false
		c.eiDelay = 0
	case EI:
		if !c.IME && c.eiDelay == 0 {
			// takes effect after the next instruction
			c.eiDelay = 2
		}

	case RLC:
		c.write8(op.Operand1, c.rotateLeftCarry(c.read8(op.Operand1)))
	case RRC:
		c.write8(op.Operand1, c.rotateRightCarry(c.read8(op.Operand1)))
	case RL:
		c.write8(op.Operand1, c.rotateLeftThroughCarry(c.read8(op.Operand1)))
	case RR:
		c.write8(op.Operand1, c.rotateRightThroughCarry(c.read8(op.Operand1)))
	case SLA:
		c.write8(op.Operand1, c.shiftLeftArithmetic(c.read8(op.Operand1)))
	case SRA:
		c.write8(op.Operand1, c.shiftRightArithmetic(c.read8(op.Operand1)))
	case SWAP:
		c.write8(op.Operand1, c.swap(c.read8(op.Operand1)))
	case SRL:
		c.write8(op.Operand1, c.shiftRightLogical(c.read8(op.Operand1)))
	case BIT:
		c.testBit(c.read8(op.Operand1), op.Arg)
	case RES:
		c.write8(op.Operand1, resetBit(c.read8(op.Operand1), op.Arg))
	case SET:
		c.write8(op.Operand1, setBit(c.read8(op.Operand1), op.Arg))
	}

	return false
}
