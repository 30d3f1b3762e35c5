package cpu

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// jumpAbsolute jumps to the given address if condition is true.
//
//	JP nn
//	JP cc, nn
//	cc = NZ, Z, NC, C
func (c *CPU) jumpAbsolute(condition bool, address uint16) bool {
	if condition {
		c.PC = address
	}
	return condition
}

// jumpRelative jumps by the signed offset from the address of the
// next instruction if condition is true.
//
//	JR r8
//	JR cc, r8
//	cc = NZ, Z, NC, C
func (c *CPU) jumpRelative(condition bool, offset int8) bool {
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
	}
	return condition
}

// call pushes the address of the next instruction onto the stack and
// jumps to the given address if condition is true.
//
//	CALL nn
//	CALL cc, nn
//	cc = NZ, Z, NC, C
func (c *CPU) call(condition bool, address uint16) bool {
	if condition {
		c.pushStack(c.PC)
		c.PC = address
	}
	return condition
}

// ret pops the return address off the stack and jumps to it if
// condition is true.
//
//	RET
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) ret(condition bool) bool {
	if condition {
		c.PC = c.popStack()
	}
	return condition
}
