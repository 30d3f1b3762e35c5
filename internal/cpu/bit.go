package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// testBit tests the bit at the given position in n.
//
//	BIT b, n
//	b = 0 - 7
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, b uint8) {
	c.setFlags(!bits.Test(n, b), false, true, c.isFlagSet(FlagCarry))
}

// setBit implements SET b, n. No flags are affected.
func setBit(n uint8, b uint8) uint8 {
	return bits.Set(n, b)
}

// resetBit implements RES b, n. No flags are affected.
func resetBit(n uint8, b uint8) uint8 {
	return bits.Reset(n, b)
}
