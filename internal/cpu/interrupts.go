package cpu

// Interrupter is the interrupt source checked by the CPU before each
// fetch.
type Interrupter interface {
	// Pending returns the requested and enabled interrupts, bit 0
	// being the highest priority.
	Pending() uint8
	// Acknowledge clears the request of the interrupt with the
	// given bit index, as the CPU begins servicing it.
	Acknowledge(bit uint8)
}

// handleInterrupts wakes a halted or stopped CPU when an interrupt is
// pending, and services the highest priority interrupt if IME is set.
// It returns the cycles spent and whether the step was consumed.
func (c *CPU) handleInterrupts() (uint8, bool) {
	if c.irq == nil {
		return 0, false
	}
	pending := c.irq.Pending() & 0x1F
	if pending == 0 {
		return 0, false
	}

	if !c.IME {
		if c.mode != ModeNormal {
			c.mode = ModeNormal
			return 4, true
		}
		return 0, false
	}

	c.mode = ModeNormal
	for i := uint8(0); i < 5; i++ {
		if pending&(1<<i) != 0 {
			c.IME = false
			c.eiDelay = 0
			c.irq.Acknowledge(i)
			c.pushStack(c.PC)
			c.PC = vector(i)
			c.log.Debugf("servicing interrupt %d, vector 0x%04X", i, c.PC)
			break
		}
	}
	return 20, true
}

// vector returns the address serviced for the interrupt with the given
// bit index.
func vector(bit uint8) uint16 {
	return 0x0040 + uint16(bit)*8
}
