package cpu_test

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/test"
)

var _ cpu.Core = (*cpu.CPU)(nil)

func TestReset(t *testing.T) {
	c, _ := newCPUWithROM()
	test.ExpectEquality(t, c.PC, 0x0100)
	test.ExpectEquality(t, c.SP, 0xfffe)
	test.ExpectEquality(t, c.AF(), 0x0000)
	test.ExpectEquality(t, c.BC(), 0x0000)
	test.ExpectEquality(t, c.IME, false)
	test.ExpectEquality(t, c.State(), cpu.Running)
	test.ExpectEquality(t, c.Cycles(), 0)

	c.B = 0x12
	c.RequestInterrupt(cpu.Timer)
	c.SetInterruptEnable(0xff)
	c.Reset(0x0000, 0xdfff)
	test.ExpectEquality(t, c.B, 0x00)
	test.ExpectEquality(t, c.PC, 0x0000)
	test.ExpectEquality(t, c.SP, 0xdfff)
	test.ExpectEquality(t, c.InterruptFlags(), 0x00)
	test.ExpectEquality(t, c.InterruptEnable(), 0x00)
}

func TestResetPostBoot(t *testing.T) {
	c, _ := newCPUWithConfig(cpu.Config{PostBoot: true})
	test.ExpectEquality(t, c.AF(), 0x01b0)
	test.ExpectEquality(t, c.BC(), 0x0013)
	test.ExpectEquality(t, c.DE(), 0x00d8)
	test.ExpectEquality(t, c.HL(), 0x014d)
	test.ExpectEquality(t, c.SP, 0xfffe)
	test.ExpectEquality(t, c.PC, 0x0100)
}

func TestString(t *testing.T) {
	c, _ := newCPUWithConfig(cpu.Config{PostBoot: true})
	test.ExpectEquality(t, c.String(), "A=01 F=ZnHC B=00 C=13 D=00 E=D8 H=01 L=4D SP=FFFE PC=0100 di running IF=00 IE=00")
}

func TestLDImmediate(t *testing.T) {
	c, _ := newCPUWithROM(0x06, 0x42) // LD B,$42
	cycles := step(t, c)
	if c.B != 0x42 || c.PC != 0x0102 || cycles != 8 {
		t.Fatalf("B=%02x PC=%04x cycles=%d, want B=42 PC=0102 cycles=8", c.B, c.PC, cycles)
	}
	test.ExpectEquality(t, c.F(), 0x00)
}

func TestLDIndirectHL(t *testing.T) {
	c, mem := newCPUWithROM(
		0x21, 0x00, 0xc0, // LD HL,$C000
		0x36, 0x5a, // LD (HL),$5A
		0x7e, // LD A,(HL)
		0x44, // LD B,H
	)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, mem.data[0xc000], 0x5a)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.A, 0x5a)
	test.ExpectEquality(t, step(t, c), 4)
	test.ExpectEquality(t, c.B, 0xc0)
}

func TestLDIncrementDecrement(t *testing.T) {
	c, mem := newCPUWithROM(
		0x21, 0x00, 0xc0, // LD HL,$C000
		0x3e, 0x11, // LD A,$11
		0x22, // LD (HL+),A
		0x32, // LD (HL-),A
		0x2a, // LD A,(HL+)
		0x3a, // LD A,(HL-)
	)
	run(t, c, 3)
	test.ExpectEquality(t, mem.data[0xc000], 0x11)
	test.ExpectEquality(t, c.HL(), 0xc001)
	step(t, c)
	test.ExpectEquality(t, mem.data[0xc001], 0x11)
	test.ExpectEquality(t, c.HL(), 0xc000)

	mem.data[0xc000] = 0x21
	mem.data[0xc001] = 0x22
	step(t, c)
	test.ExpectEquality(t, c.A, 0x21)
	test.ExpectEquality(t, c.HL(), 0xc001)
	step(t, c)
	test.ExpectEquality(t, c.A, 0x22)
	test.ExpectEquality(t, c.HL(), 0xc000)
}

func TestLDHigh(t *testing.T) {
	c, mem := newCPUWithROM(
		0x3e, 0x77, // LD A,$77
		0xe0, 0x80, // LDH ($80),A
		0x0e, 0x81, // LD C,$81
		0xe2,       // LD (C),A
		0xaf,       // XOR A
		0xf0, 0x80, // LDH A,($80)
		0xfa, 0x81, 0xff, // LD A,($FF81)
	)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, mem.data[0xff80], 0x77)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, mem.data[0xff81], 0x77)
	step(t, c)
	test.ExpectEquality(t, c.A, 0x00)
	step(t, c)
	test.ExpectEquality(t, c.A, 0x77)
	c.A = 0
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, c.A, 0x77)
}

func TestStoreSP(t *testing.T) {
	c, mem := newCPUWithROM(0x08, 0x00, 0xc0) // LD ($C000),SP
	test.ExpectEquality(t, step(t, c), 20)
	test.ExpectEquality(t, mem.data[0xc000], 0xfe)
	test.ExpectEquality(t, mem.data[0xc001], 0xff)
}

func TestADDOverflow(t *testing.T) {
	c, _ := newCPUWithROM(0x3e, 0xff, 0xc6, 0x01) // LD A,$FF; ADD A,$01
	run(t, c, 2)
	if c.A != 0x00 || c.F() != 0xb0 {
		t.Fatalf("A=%02x F=%02x, want A=00 F=b0", c.A, c.F())
	}
}

func TestADCAndSBC(t *testing.T) {
	c, _ := newCPUWithROM(
		0x37,       // SCF
		0x3e, 0x0e, // LD A,$0E
		0xce, 0x01, // ADC A,$01
		0x37,       // SCF
		0xde, 0x0f, // SBC A,$0F
	)
	run(t, c, 3)
	test.ExpectEquality(t, c.A, 0x10)
	test.ExpectEquality(t, c.F(), 0x20)
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x00)
	test.ExpectEquality(t, c.F(), 0xe0)
}

func TestSUBHalfCarry(t *testing.T) {
	c, _ := newCPUWithROM(0x3e, 0x10, 0xd6, 0x01) // LD A,$10; SUB $01
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x0f)
	test.ExpectEquality(t, c.F(), 0x60)
}

func TestCPLeavesA(t *testing.T) {
	c, _ := newCPUWithROM(0x3e, 0x42, 0xfe, 0x42, 0xfe, 0x43) // LD A,$42; CP $42; CP $43
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x42)
	test.ExpectEquality(t, c.F(), 0xc0)
	step(t, c)
	test.ExpectEquality(t, c.A, 0x42)
	test.ExpectEquality(t, c.F(), 0x70)
}

func TestLogicalOps(t *testing.T) {
	c, _ := newCPUWithROM(
		0x3e, 0xf0, // LD A,$F0
		0xe6, 0x0f, // AND $0F
		0xaf,       // XOR A
		0x06, 0x81, // LD B,$81
		0xb0, // OR B
	)
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x00)
	test.ExpectEquality(t, c.F(), 0xa0)
	step(t, c)
	test.ExpectEquality(t, c.F(), 0x80)
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x81)
	test.ExpectEquality(t, c.F(), 0x00)
}

func TestALUWithHLOperand(t *testing.T) {
	c, mem := newCPUWithROM(0x21, 0x00, 0xc0, 0x3e, 0x01, 0x86) // LD HL,$C000; LD A,1; ADD A,(HL)
	mem.data[0xc000] = 0x0f
	run(t, c, 2)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.A, 0x10)
	test.ExpectEquality(t, c.F(), 0x20)
}

func TestINCDECPreserveCarry(t *testing.T) {
	c, _ := newCPUWithROM(0x37, 0x3e, 0xff, 0x3c) // SCF; LD A,$FF; INC A
	run(t, c, 3)
	test.ExpectEquality(t, c.A, 0x00)
	test.ExpectEquality(t, c.F(), 0xb0)

	c, _ = newCPUWithROM(0x37, 0x3e, 0x01, 0x3d) // SCF; LD A,$01; DEC A
	run(t, c, 3)
	test.ExpectEquality(t, c.A, 0x00)
	test.ExpectEquality(t, c.F(), 0xd0)

	c, _ = newCPUWithROM(0x3e, 0x10, 0x3d) // LD A,$10; DEC A
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x0f)
	test.ExpectEquality(t, c.F(), 0x60)
}

func TestINCDECIndirect(t *testing.T) {
	c, mem := newCPUWithROM(0x21, 0x00, 0xc0, 0x34, 0x35, 0x35) // LD HL,$C000; INC (HL); DEC (HL); DEC (HL)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, mem.data[0xc000], 0x01)
	run(t, c, 2)
	test.ExpectEquality(t, mem.data[0xc000], 0xff)
	test.ExpectEquality(t, c.F(), 0x60)
}

func TestINC16ChangesNoFlags(t *testing.T) {
	c, _ := newCPUWithROM(0x01, 0xff, 0xff, 0x03, 0x1b) // LD BC,$FFFF; INC BC; DEC DE
	run(t, c, 1)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.BC(), 0x0000)
	test.ExpectEquality(t, c.F(), 0x00)
	step(t, c)
	test.ExpectEquality(t, c.DE(), 0xffff)
	test.ExpectEquality(t, c.F(), 0x00)
}

func TestADDHL(t *testing.T) {
	c, _ := newCPUWithROM(
		0xaf,             // XOR A
		0x21, 0xff, 0x0f, // LD HL,$0FFF
		0x01, 0x01, 0x00, // LD BC,$0001
		0x09,             // ADD HL,BC
		0x21, 0x00, 0x80, // LD HL,$8000
		0x29, // ADD HL,HL
	)
	run(t, c, 3)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.HL(), 0x1000)
	test.ExpectEquality(t, c.F(), 0xa0)
	run(t, c, 2)
	test.ExpectEquality(t, c.HL(), 0x0000)
	test.ExpectEquality(t, c.F(), 0x90)
}

func TestADDSPAndLDHLSP(t *testing.T) {
	c, _ := newCPUWithROM(
		0x31, 0xf8, 0xff, // LD SP,$FFF8
		0xe8, 0x08, // ADD SP,8
		0xf8, 0xff, // LD HL,SP-1
		0xf9, // LD SP,HL
	)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, c.SP, 0x0000)
	test.ExpectEquality(t, c.F(), 0x30)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.HL(), 0xffff)
	test.ExpectEquality(t, c.F(), 0x00)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.SP, 0xffff)
}

func TestRotateAccumulatorClearsZero(t *testing.T) {
	c, _ := newCPUWithROM(0x3e, 0x80, 0x07, 0xaf, 0x17) // LD A,$80; RLCA; XOR A; RLA
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x01)
	test.ExpectEquality(t, c.F(), 0x10)
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0x00)
	test.ExpectEquality(t, c.F(), 0x00)
}

func TestRotateThroughCarry(t *testing.T) {
	c, _ := newCPUWithROM(0x37, 0x3e, 0x00, 0x1f, 0x0f) // SCF; LD A,0; RRA; RRCA
	run(t, c, 3)
	test.ExpectEquality(t, c.A, 0x80)
	test.ExpectEquality(t, c.F(), 0x00)
	step(t, c)
	test.ExpectEquality(t, c.A, 0x40)
}

func TestExtendedShifts(t *testing.T) {
	cases := []struct {
		name  string
		op    uint8
		a     uint8
		carry bool
		res   uint8
		f     uint8
	}{
		{"RLC", 0x07, 0x80, false, 0x01, 0x10},
		{"RLC zero", 0x07, 0x00, false, 0x00, 0x80},
		{"RRC", 0x0f, 0x01, false, 0x80, 0x10},
		{"RL", 0x17, 0x80, false, 0x00, 0x90},
		{"RL carry in", 0x17, 0x00, true, 0x01, 0x00},
		{"RR", 0x1f, 0x01, true, 0x80, 0x10},
		{"SLA", 0x27, 0xc0, false, 0x80, 0x10},
		{"SRA", 0x2f, 0x81, false, 0xc0, 0x10},
		{"SWAP", 0x37, 0xf1, true, 0x1f, 0x00},
		{"SWAP zero", 0x37, 0x00, false, 0x00, 0x80},
		{"SRL", 0x3f, 0x01, false, 0x00, 0x90},
	}
	for _, tc := range cases {
		c, _ := newCPUWithROM(0xcb, tc.op)
		c.A = tc.a
		if tc.carry {
			c.SetF(0x10)
		}
		cycles := step(t, c)
		test.ExpectEquality(t, cycles, 8, tc.name)
		test.ExpectEquality(t, c.A, tc.res, tc.name)
		test.ExpectEquality(t, c.F(), tc.f, tc.name)
		test.ExpectEquality(t, c.PC, 0x0102, tc.name)
	}
}

func TestBIT(t *testing.T) {
	c, mem := newCPUWithROM(
		0x37,       // SCF
		0x3e, 0x80, // LD A,$80
		0xcb, 0x7f, // BIT 7,A
		0xcb, 0x47, // BIT 0,A
		0x21, 0x00, 0xc0, // LD HL,$C000
		0xcb, 0x46, // BIT 0,(HL)
	)
	mem.data[0xc000] = 0x01
	run(t, c, 2)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.F(), 0x30)
	step(t, c)
	test.ExpectEquality(t, c.F(), 0xb0)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.F(), 0x30)
	test.ExpectEquality(t, c.A, 0x80)
}

func TestRESAndSET(t *testing.T) {
	c, mem := newCPUWithROM(
		0x3e, 0xff, // LD A,$FF
		0xcb, 0x87, // RES 0,A
		0xcb, 0xc7, // SET 0,A
		0x21, 0x00, 0xc0, // LD HL,$C000
		0xcb, 0xfe, // SET 7,(HL)
		0xcb, 0xbe, // RES 7,(HL)
	)
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0xfe)
	step(t, c)
	test.ExpectEquality(t, c.A, 0xff)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, mem.data[0xc000], 0x80)
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, mem.data[0xc000], 0x00)
	test.ExpectEquality(t, c.F(), 0x00)
}

func TestJR(t *testing.T) {
	c, _ := newCPUWithROM(
		0xaf,       // XOR A
		0x20, 0x05, // JR NZ,+5
		0x28, 0xfe, // JR Z,-2
	)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.PC, 0x0103)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.PC, 0x0103)

	c, _ = newCPUWithROM(0x18, 0x10) // JR +16
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.PC, 0x0112)
}

func TestJP(t *testing.T) {
	c, mem := newCPUWithROM(
		0xc2, 0x00, 0x20, // JP NZ,$2000
	)
	mem.data[0x2000] = 0xca // JP Z,$3000
	mem.data[0x2001] = 0x00
	mem.data[0x2002] = 0x30
	mem.data[0x2003] = 0x21 // LD HL,$4000
	mem.data[0x2004] = 0x00
	mem.data[0x2005] = 0x40
	mem.data[0x2006] = 0xe9 // JP HL

	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, c.PC, 0x2000)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.PC, 0x2003)
	step(t, c)
	test.ExpectEquality(t, step(t, c), 4)
	test.ExpectEquality(t, c.PC, 0x4000)
}

func TestCALLAndRET(t *testing.T) {
	c, mem := newCPUWithROM(
		0xcd, 0x00, 0x02, // CALL $0200
		0xcc, 0x00, 0x02, // CALL Z,$0200
		0xc4, 0x00, 0x02, // CALL NZ,$0200
	)
	mem.data[0x0200] = 0xc8 // RET Z
	mem.data[0x0201] = 0xc0 // RET NZ
	mem.data[0x0202] = 0xc9 // RET

	test.ExpectEquality(t, step(t, c), 24)
	test.ExpectEquality(t, c.PC, 0x0200)
	test.ExpectEquality(t, c.SP, 0xfffc)
	test.ExpectEquality(t, mem.data[0xfffd], 0x01)
	test.ExpectEquality(t, mem.data[0xfffc], 0x03)

	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, c.PC, 0x0201)
	test.ExpectEquality(t, step(t, c), 20)
	test.ExpectEquality(t, c.PC, 0x0103)
	test.ExpectEquality(t, c.SP, 0xfffe)

	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.PC, 0x0106)
	test.ExpectEquality(t, step(t, c), 24)
	test.ExpectEquality(t, step(t, c), 8)
	test.ExpectEquality(t, step(t, c), 20)
	test.ExpectEquality(t, c.PC, 0x0109)

	c.PC = 0x0202
	c.SP = 0xfffc
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, c.PC, 0x0109)
	test.ExpectEquality(t, c.SP, 0xfffe)
}

func TestRST(t *testing.T) {
	c, mem := newCPUWithROM(0xff) // RST 38H
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, c.PC, 0x0038)
	test.ExpectEquality(t, c.SP, 0xfffc)
	test.ExpectEquality(t, mem.data[0xfffc], 0x01)
	test.ExpectEquality(t, mem.data[0xfffd], 0x01)
}

func TestPushPopAFMasksF(t *testing.T) {
	c, _ := newCPUWithROM(0x01, 0xff, 0x12, 0xc5, 0xf1) // LD BC,$12FF; PUSH BC; POP AF
	step(t, c)
	test.ExpectEquality(t, step(t, c), 16)
	test.ExpectEquality(t, step(t, c), 12)
	test.ExpectEquality(t, c.A, 0x12)
	test.ExpectEquality(t, c.F(), 0xf0)
	test.ExpectEquality(t, c.SP, 0xfffe)
}

func TestStackWraps(t *testing.T) {
	c, mem := newCPUWithROM(0x01, 0x34, 0x12, 0xc5, 0xd1) // LD BC,$1234; PUSH BC; POP DE
	c.SP = 0x0000
	run(t, c, 2)
	test.ExpectEquality(t, c.SP, 0xfffe)
	test.ExpectEquality(t, mem.data[0xffff], 0x12)
	test.ExpectEquality(t, mem.data[0xfffe], 0x34)

	c.SP = 0xffff
	mem.data[0x0000] = 0x56
	step(t, c)
	test.ExpectEquality(t, c.DE(), 0x5612)
	test.ExpectEquality(t, c.SP, 0x0001)
}

func TestCPLSCFCCF(t *testing.T) {
	c, _ := newCPUWithROM(0x3e, 0x35, 0x2f, 0x37, 0x3f) // LD A,$35; CPL; SCF; CCF
	run(t, c, 2)
	test.ExpectEquality(t, c.A, 0xca)
	test.ExpectEquality(t, c.F(), 0x60)
	step(t, c)
	test.ExpectEquality(t, c.F(), 0x10)
	step(t, c)
	test.ExpectEquality(t, c.F(), 0x00)
}

func bcd(v int) uint8 {
	return uint8(v/10<<4 | v%10)
}

func TestDAA(t *testing.T) {
	mem := &flatMemory{}
	c := cpu.New(mem, cpu.Config{Log: logger.Deny})

	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			// LD A,a; ADD A,b; DAA
			copy(mem.data[0x0100:], []uint8{0x3e, bcd(a), 0xc6, bcd(b), 0x27})
			c.Reset(0x0100, 0xfffe)
			run(t, c, 3)
			sum := a + b
			if c.A != bcd(sum%100) || c.Flag(registers.Zero) != (sum%100 == 0) {
				t.Fatalf("%d+%d: A got %02x want %02x (F=%02x)", a, b, c.A, bcd(sum%100), c.F())
			}
			if (c.F()&0x10 != 0) != (sum >= 100) {
				t.Fatalf("%d+%d: carry wrong (F=%02x)", a, b, c.F())
			}

			// LD A,a; SUB b; DAA
			copy(mem.data[0x0100:], []uint8{0x3e, bcd(a), 0xd6, bcd(b), 0x27})
			c.Reset(0x0100, 0xfffe)
			run(t, c, 3)
			diff := (a - b + 100) % 100
			if c.A != bcd(diff) {
				t.Fatalf("%d-%d: A got %02x want %02x (F=%02x)", a, b, c.A, bcd(diff), c.F())
			}
			if (c.F()&0x10 != 0) != (a < b) {
				t.Fatalf("%d-%d: carry wrong (F=%02x)", a, b, c.F())
			}
			if c.F()&0x40 == 0 {
				t.Fatalf("%d-%d: DAA cleared N", a, b)
			}
		}
	}
}

func TestInvalidOpcodes(t *testing.T) {
	for _, opc := range []uint8{0xd3, 0xdb, 0xdd, 0xe3, 0xe4, 0xeb, 0xec, 0xed, 0xf4, 0xfc, 0xfd} {
		c, _ := newCPUWithROM(opc)
		c.A = 0x12
		before := c.Registers

		cycles, err := c.Step()
		test.ExpectEquality(t, cycles, 0, opc)
		test.DemandFailure(t, err, opc)
		test.ExpectSuccess(t, errors.Is(err, cpu.ErrInvalidOpcode), opc)

		var invalid *cpu.InvalidOpcodeError
		test.DemandSuccess(t, errors.As(err, &invalid), opc)
		test.ExpectEquality(t, invalid.Address, 0x0100, opc)
		test.ExpectEquality(t, invalid.Opcode, opc, opc)
		test.ExpectEquality(t, invalid.Prefixed, false, opc)

		before.PC = 0x0101
		test.ExpectEquality(t, c.Registers, before, opc)
		test.ExpectEquality(t, c.Cycles(), 0, opc)
	}
}

func TestInvalidOpcodeLogged(t *testing.T) {
	logger.Clear()
	c, _ := newCPUWithROM(0xd3)
	_, err := c.Step()
	test.DemandFailure(t, err)
	test.ExpectEquality(t, err.Error(), "cpu: invalid opcode (0xd3) at (0x0100)")

	entries := logger.Entries()
	test.DemandEquality(t, len(entries), 1)
	test.ExpectEquality(t, entries[0].Tag, "cpu")
	test.ExpectEquality(t, entries[0].Detail, "invalid opcode 0xd3 at 0x0100")
}

func TestMemoryFaultOnWrite(t *testing.T) {
	c, mem := newCPUWithROM(
		0x3e, 0x55, // LD A,$55
		0xea, 0x00, 0x80, // LD ($8000),A
		0x04, // INC B
	)
	mem.faultFrom, mem.faultTo = 0x8000, 0x8100
	step(t, c)

	cycles, err := c.Step()
	test.ExpectSuccess(t, errors.Is(err, errTestFault))
	test.ExpectEquality(t, err, errTestFault)
	test.ExpectEquality(t, cycles, 16)
	test.ExpectEquality(t, c.PC, 0x0105)

	test.ExpectEquality(t, step(t, c), 4)
	test.ExpectEquality(t, c.B, 0x01)
}

func TestMemoryFaultOnRead(t *testing.T) {
	c, mem := newCPUWithROM(0xfa, 0x10, 0x80) // LD A,($8010)
	mem.faultFrom, mem.faultTo = 0x8000, 0x8100
	cycles, err := c.Step()
	test.ExpectEquality(t, err, errTestFault)
	test.ExpectEquality(t, cycles, 16)
	test.ExpectEquality(t, c.A, 0xff)
	test.ExpectEquality(t, c.Cycles(), 16)
}

func TestCyclesAccumulate(t *testing.T) {
	c, _ := newCPUWithROM(0x00, 0x06, 0x01, 0xc3, 0x00, 0x01) // NOP; LD B,1; JP $0100
	total := run(t, c, 6)
	test.ExpectEquality(t, total, 56)
	test.ExpectEquality(t, c.Cycles(), 56)
}
