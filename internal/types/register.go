package types

// Register represents an SM83 Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, F, B, C, D, E, H and L. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of Registers viewed as a single 16-bit
// value. The pair holds no value of its own, it points at the two byte
// registers, so reading a pair always reflects the current register
// contents.
type RegisterPair struct {
	High *Register
	Low  *Register

	// lowMask is applied to the low byte on writes, so that AF
	// can never hold a value in the unused lower nibble of F.
	lowMask uint8
}

// NewRegisterPair returns a RegisterPair over the given registers.
func NewRegisterPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low, lowMask: 0xFF}
}

// NewMaskedRegisterPair returns a RegisterPair whose low byte is
// masked with mask whenever the pair is written to.
func NewMaskedRegisterPair(high, low *Register, mask uint8) *RegisterPair {
	return &RegisterPair{High: high, Low: low, lowMask: mask}
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.lowMask
}

// Registers represents the SM83 CPU registers.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// BindPairs points the register pairs at their byte registers. It must
// be called once the Registers have a stable address.
func (r *Registers) BindPairs() {
	r.AF = NewMaskedRegisterPair(&r.A, &r.F, 0xF0)
	r.BC = NewRegisterPair(&r.B, &r.C)
	r.DE = NewRegisterPair(&r.D, &r.E)
	r.HL = NewRegisterPair(&r.H, &r.L)
}
