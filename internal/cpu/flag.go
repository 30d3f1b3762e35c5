package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// flagBit returns the value of flag in the flags byte f.
func flagBit(f uint8, flag Flag) bool {
	return bits.Test(f, flag)
}

// setFlagBit returns f with flag set to v. No other bit is changed.
func setFlagBit(f uint8, flag Flag, v bool) uint8 {
	return bits.Put(f, flag, v)
}

// packFlags returns a flags byte holding the four flags. The unused
// lower nibble is always zero.
func packFlags(zero, subtract, halfCarry, carry bool) uint8 {
	f := setFlagBit(0, FlagZero, zero)
	f = setFlagBit(f, FlagSubtract, subtract)
	f = setFlagBit(f, FlagHalfCarry, halfCarry)
	return setFlagBit(f, FlagCarry, carry)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = setFlagBit(c.F, flag, false)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = setFlagBit(c.F, flag, true)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return flagBit(c.F, flag)
}

// setFlags replaces the whole F register, clearing the lower nibble.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = packFlags(zero, subtract, halfCarry, carry)
}

// ZeroFlag reports whether the zero flag (Z) is set.
func (c *CPU) ZeroFlag() bool { return c.isFlagSet(FlagZero) }

// SetZeroFlag sets the zero flag (Z) to v.
func (c *CPU) SetZeroFlag(v bool) { c.F = setFlagBit(c.F, FlagZero, v) }

// SubtractFlag reports whether the subtract flag (N) is set.
func (c *CPU) SubtractFlag() bool { return c.isFlagSet(FlagSubtract) }

// SetSubtractFlag sets the subtract flag (N) to v.
func (c *CPU) SetSubtractFlag(v bool) { c.F = setFlagBit(c.F, FlagSubtract, v) }

// HalfCarryFlag reports whether the half carry flag (H) is set.
func (c *CPU) HalfCarryFlag() bool { return c.isFlagSet(FlagHalfCarry) }

// SetHalfCarryFlag sets the half carry flag (H) to v.
func (c *CPU) SetHalfCarryFlag(v bool) { c.F = setFlagBit(c.F, FlagHalfCarry, v) }

// CarryFlag reports whether the carry flag (C) is set.
func (c *CPU) CarryFlag() bool { return c.isFlagSet(FlagCarry) }

// SetCarryFlag sets the carry flag (C) to v.
func (c *CPU) SetCarryFlag(v bool) { c.F = setFlagBit(c.F, FlagCarry, v) }
