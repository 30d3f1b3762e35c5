package cpu

import "testing"

func TestInstruction_Jumps(t *testing.T) {
	t.Run("JR r8", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x18, 0x03)
		if cycles := step(t, c); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if c.PC != 0x0105 {
			t.Errorf("expected PC to be 0x0105, got 0x%04X", c.PC)
		}
	})
	t.Run("JR r8 backwards", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x18, 0xFE)
		step(t, c)
		if c.PC != 0x0100 {
			t.Errorf("expected PC to be 0x0100, got 0x%04X", c.PC)
		}
	})
	t.Run("JP a16", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xC3, 0x34, 0x12)
		if cycles := step(t, c); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if c.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", c.PC)
		}
	})
	t.Run("JP HL", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xE9)
		c.HL.SetUint16(0x4242)
		if cycles := step(t, c); cycles != 4 {
			t.Errorf("expected 4 cycles, got %d", cycles)
		}
		if c.PC != 0x4242 {
			t.Errorf("expected PC to be 0x4242, got 0x%04X", c.PC)
		}
	})
}

func TestInstruction_ConditionalJumps(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		flags   uint8 // flags for which the branch is taken
		target  uint16
		cycles  [2]uint8 // not taken, taken
	}{
		{"JR NZ", []uint8{0x20, 0x10}, 0x00, 0x0112, [2]uint8{8, 12}},
		{"JR Z", []uint8{0x28, 0x10}, 0x80, 0x0112, [2]uint8{8, 12}},
		{"JR NC", []uint8{0x30, 0x10}, 0x00, 0x0112, [2]uint8{8, 12}},
		{"JR C", []uint8{0x38, 0x10}, 0x10, 0x0112, [2]uint8{8, 12}},
		{"JP NZ", []uint8{0xC2, 0x00, 0x20}, 0x00, 0x2000, [2]uint8{12, 16}},
		{"JP Z", []uint8{0xCA, 0x00, 0x20}, 0x80, 0x2000, [2]uint8{12, 16}},
		{"JP NC", []uint8{0xD2, 0x00, 0x20}, 0x00, 0x2000, [2]uint8{12, 16}},
		{"JP C", []uint8{0xDA, 0x00, 0x20}, 0x10, 0x2000, [2]uint8{12, 16}},
		{"CALL NZ", []uint8{0xC4, 0x00, 0x20}, 0x00, 0x2000, [2]uint8{12, 24}},
		{"CALL Z", []uint8{0xCC, 0x00, 0x20}, 0x80, 0x2000, [2]uint8{12, 24}},
		{"CALL NC", []uint8{0xD4, 0x00, 0x20}, 0x00, 0x2000, [2]uint8{12, 24}},
		{"CALL C", []uint8{0xDC, 0x00, 0x20}, 0x10, 0x2000, [2]uint8{12, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the opposite of the taken flags never takes the branch
			c, _ := newTestCPU(t, tt.program...)
			c.F = tt.flags ^ 0x90
			if cycles := step(t, c); cycles != uint32(tt.cycles[0]) {
				t.Errorf("not taken: expected %d cycles, got %d", tt.cycles[0], cycles)
			}
			if c.PC != 0x0100+uint16(len(tt.program)) || c.SP != 0xFFFE {
				t.Errorf("not taken: PC 0x%04X SP 0x%04X", c.PC, c.SP)
			}

			c, _ = newTestCPU(t, tt.program...)
			c.F = tt.flags
			if cycles := step(t, c); cycles != uint32(tt.cycles[1]) {
				t.Errorf("taken: expected %d cycles, got %d", tt.cycles[1], cycles)
			}
			if c.PC != tt.target {
				t.Errorf("taken: expected PC to be 0x%04X, got 0x%04X", tt.target, c.PC)
			}
		})
	}
}

func TestInstruction_Calls(t *testing.T) {
	// CALL 0x2000; at 0x2000: RET
	c, ram := newTestCPU(t, 0xCD, 0x00, 0x20)
	if err := ram.Write(0x2000, 0xC9); err != nil {
		t.Fatal(err)
	}

	if cycles := step(t, c); cycles != 24 {
		t.Errorf("CALL: expected 24 cycles, got %d", cycles)
	}
	if c.PC != 0x2000 || c.SP != 0xFFFC {
		t.Errorf("CALL: expected PC 0x2000 SP 0xFFFC, got PC 0x%04X SP 0x%04X", c.PC, c.SP)
	}
	if hi, lo := read(t, ram, 0xFFFD), read(t, ram, 0xFFFC); hi != 0x01 || lo != 0x03 {
		t.Errorf("CALL: expected return address 0x0103 on the stack, got 0x%02X%02X", hi, lo)
	}

	if cycles := step(t, c); cycles != 16 {
		t.Errorf("RET: expected 16 cycles, got %d", cycles)
	}
	if c.PC != 0x0103 || c.SP != 0xFFFE {
		t.Errorf("RET: expected PC 0x0103 SP 0xFFFE, got PC 0x%04X SP 0x%04X", c.PC, c.SP)
	}
}

func TestInstruction_ConditionalReturn(t *testing.T) {
	// RET Z
	c, ram := newTestCPU(t, 0xC8)
	c.SP = 0xFFFC
	_ = ram.Write(0xFFFC, 0x34)
	_ = ram.Write(0xFFFD, 0x12)

	c.F = 0x00
	if cycles := step(t, c); cycles != 8 || c.PC != 0x0101 {
		t.Errorf("not taken: expected 8 cycles PC 0x0101, got %d PC 0x%04X", cycles, c.PC)
	}

	c.PC, c.F = 0x0100, 0x80
	if cycles := step(t, c); cycles != 20 || c.PC != 0x1234 || c.SP != 0xFFFE {
		t.Errorf("taken: expected 20 cycles PC 0x1234, got %d PC 0x%04X", cycles, c.PC)
	}
}

func TestInstruction_Restarts(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		c, ram := newTestCPU(t, 0xC7+i*8)
		if cycles := step(t, c); cycles != 16 {
			t.Errorf("RST %02XH: expected 16 cycles, got %d", i*8, cycles)
		}
		if c.PC != uint16(i)*8 {
			t.Errorf("RST %02XH: expected PC to be 0x%04X, got 0x%04X", i*8, i*8, c.PC)
		}
		if lo := read(t, ram, 0xFFFC); lo != 0x01 {
			t.Errorf("RST %02XH: expected return address 0x0101, got low byte 0x%02X", i*8, lo)
		}
	}
}

func TestInstruction_Stack(t *testing.T) {
	t.Run("PUSH BC POP DE", func(t *testing.T) {
		c, ram := newTestCPU(t, 0xC5, 0xD1)
		c.BC.SetUint16(0xBEEF)
		if cycles := step(t, c); cycles != 16 {
			t.Errorf("PUSH: expected 16 cycles, got %d", cycles)
		}
		if hi, lo := read(t, ram, 0xFFFD), read(t, ram, 0xFFFC); hi != 0xBE || lo != 0xEF {
			t.Errorf("expected 0xBEEF on the stack, got 0x%02X%02X", hi, lo)
		}
		if cycles := step(t, c); cycles != 12 {
			t.Errorf("POP: expected 12 cycles, got %d", cycles)
		}
		if c.DE.Uint16() != 0xBEEF || c.SP != 0xFFFE {
			t.Errorf("expected DE 0xBEEF SP 0xFFFE, got DE 0x%04X SP 0x%04X", c.DE.Uint16(), c.SP)
		}
	})
	t.Run("POP AF", func(t *testing.T) {
		c, ram := newTestCPU(t, 0xF1)
		c.SP = 0xC000
		_ = ram.Write(0xC000, 0xFF)
		_ = ram.Write(0xC001, 0x12)
		step(t, c)
		if c.A != 0x12 || c.F != 0xF0 {
			t.Errorf("expected A 0x12 F 0xF0, got A 0x%02X F 0x%02X", c.A, c.F)
		}
	})
	t.Run("LD (a16), SP", func(t *testing.T) {
		c, ram := newTestCPU(t, 0x08, 0x00, 0xC0)
		c.SP = 0xABCD
		if cycles := step(t, c); cycles != 20 {
			t.Errorf("expected 20 cycles, got %d", cycles)
		}
		if lo, hi := read(t, ram, 0xC000), read(t, ram, 0xC001); lo != 0xCD || hi != 0xAB {
			t.Errorf("expected 0xCD 0xAB at 0xC000, got 0x%02X 0x%02X", lo, hi)
		}
	})
}
