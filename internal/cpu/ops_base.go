package cpu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"

// misc

func opNOP(c *CPU, op *opcode) bool {
	return true
}

// opHALT suspends the CPU until an enabled interrupt is pending. If one is
// already pending while IME is clear the CPU does not suspend.
func opHALT(c *CPU, op *opcode) bool {
	if !c.IME && c.pendingEnabled() != 0 {
		if !c.cfg.NoHaltBug {
			c.haltBug = true
			c.logf("halt bug at %#04x", c.PC-1)
		}
		return true
	}
	c.state = Halted
	return true
}

// opSTOP consumes the byte that follows it.
func opSTOP(c *CPU, op *opcode) bool {
	_ = c.fetch8()
	c.state = Stopped
	c.wake.Store(false)
	c.logf("stopped at %#04x", c.PC-2)
	return true
}

func opDI(c *CPU, op *opcode) bool {
	c.IME = false
	c.eiDelay = 0
	return true
}

// opEI enables interrupts after the instruction that follows it.
func opEI(c *CPU, op *opcode) bool {
	if !c.IME {
		c.eiDelay = 2
	}
	return true
}

func opDAA(c *CPU, op *opcode) bool {
	var f registers.Flags
	c.A, f = daa(c.A, c.Flags())
	c.SetFlags(f)
	return true
}

func opCPL(c *CPU, op *opcode) bool {
	c.A = ^c.A
	c.SetFlag(registers.Subtract, true)
	c.SetFlag(registers.HalfCarry, true)
	return true
}

func opSCF(c *CPU, op *opcode) bool {
	f := c.Flags()
	f.Subtract = false
	f.HalfCarry = false
	f.Carry = true
	c.SetFlags(f)
	return true
}

func opCCF(c *CPU, op *opcode) bool {
	f := c.Flags()
	f.Subtract = false
	f.HalfCarry = false
	f.Carry = !f.Carry
	c.SetFlags(f)
	return true
}

// 8-bit loads

func opLD8(c *CPU, op *opcode) bool {
	c.set8(op.r, c.get8(op.src))
	return true
}

func opLD8Imm(c *CPU, op *opcode) bool {
	v := c.fetch8()
	c.set8(op.r, v)
	return true
}

// LD (BC),A and LD (DE),A
func opStoreA(c *CPU, op *opcode) bool {
	c.write(c.Pair(op.rr), c.A)
	return true
}

// LD A,(BC) and LD A,(DE)
func opLoadA(c *CPU, op *opcode) bool {
	c.A = c.read(c.Pair(op.rr))
	return true
}

// LD (HL+),A and LD (HL-),A
func opStoreAHL(c *CPU, op *opcode) bool {
	hl := c.HL()
	c.write(hl, c.A)
	c.SetHL(hl + uint16(int16(int8(op.n))))
	return true
}

// LD A,(HL+) and LD A,(HL-)
func opLoadAHL(c *CPU, op *opcode) bool {
	hl := c.HL()
	c.A = c.read(hl)
	c.SetHL(hl + uint16(int16(int8(op.n))))
	return true
}

// LDH (a8),A
func opStoreHighA(c *CPU, op *opcode) bool {
	a8 := c.fetch8()
	c.write(0xff00|uint16(a8), c.A)
	return true
}

// LDH A,(a8)
func opLoadHighA(c *CPU, op *opcode) bool {
	a8 := c.fetch8()
	c.A = c.read(0xff00 | uint16(a8))
	return true
}

// LD (C),A
func opStoreCA(c *CPU, op *opcode) bool {
	c.write(0xff00|uint16(c.C), c.A)
	return true
}

// LD A,(C)
func opLoadCA(c *CPU, op *opcode) bool {
	c.A = c.read(0xff00 | uint16(c.C))
	return true
}

func opStoreA16(c *CPU, op *opcode) bool {
	c.write(c.fetch16(), c.A)
	return true
}

func opLoadA16(c *CPU, op *opcode) bool {
	c.A = c.read(c.fetch16())
	return true
}

// 16-bit loads

func opLD16(c *CPU, op *opcode) bool {
	c.SetPair(op.rr, c.fetch16())
	return true
}

// LD (a16),SP
func opStoreSP(c *CPU, op *opcode) bool {
	c.write16(c.fetch16(), c.SP)
	return true
}

func opLDSPHL(c *CPU, op *opcode) bool {
	c.SP = c.HL()
	return true
}

// LD HL,SP+r8
func opLDHLSP(c *CPU, op *opcode) bool {
	v, f := addSP(c.SP, c.fetch8())
	c.SetHL(v)
	c.SetFlags(f)
	return true
}

func opPUSH(c *CPU, op *opcode) bool {
	c.push16(c.Pair(op.rr))
	return true
}

// opPOP into AF drops the low nibble of F.
func opPOP(c *CPU, op *opcode) bool {
	c.SetPair(op.rr, c.pop16())
	return true
}

// 8-bit arithmetic

func opALU(c *CPU, op *opcode) bool {
	c.alu(op.alu, c.get8(op.src))
	return true
}

func opALUImm(c *CPU, op *opcode) bool {
	c.alu(op.alu, c.fetch8())
	return true
}

func opINC8(c *CPU, op *opcode) bool {
	v, f := inc8(c.get8(op.r), c.Flags())
	c.set8(op.r, v)
	c.SetFlags(f)
	return true
}

func opDEC8(c *CPU, op *opcode) bool {
	v, f := dec8(c.get8(op.r), c.Flags())
	c.set8(op.r, v)
	c.SetFlags(f)
	return true
}

// 16-bit arithmetic. INC and DEC of a pair change no flags.

func opINC16(c *CPU, op *opcode) bool {
	c.SetPair(op.rr, c.Pair(op.rr)+1)
	return true
}

func opDEC16(c *CPU, op *opcode) bool {
	c.SetPair(op.rr, c.Pair(op.rr)-1)
	return true
}

func opADDHL(c *CPU, op *opcode) bool {
	v, f := add16(c.HL(), c.Pair(op.rr), c.Flags())
	c.SetHL(v)
	c.SetFlags(f)
	return true
}

func opADDSP(c *CPU, op *opcode) bool {
	v, f := addSP(c.SP, c.fetch8())
	c.SP = v
	c.SetFlags(f)
	return true
}

// opRotateA is RLCA, RRCA, RLA and RRA. Unlike the extended forms Z is
// always cleared.
func opRotateA(c *CPU, op *opcode) bool {
	v, carry := shift(op.shift, c.A, c.Flag(registers.Carry))
	c.A = v
	c.SetFlags(registers.Flags{Carry: carry})
	return true
}

// control flow

// opJR reads the displacement whether or not the branch is taken.
func opJR(c *CPU, op *opcode) bool {
	e := int8(c.fetch8())
	if !c.test(op.cc) {
		return false
	}
	c.PC = uint16(int32(c.PC) + int32(e))
	return true
}

func opJP(c *CPU, op *opcode) bool {
	a16 := c.fetch16()
	if !c.test(op.cc) {
		return false
	}
	c.PC = a16
	return true
}

func opJPHL(c *CPU, op *opcode) bool {
	c.PC = c.HL()
	return true
}

// opCALL pushes the address of the instruction after the CALL.
func opCALL(c *CPU, op *opcode) bool {
	a16 := c.fetch16()
	if !c.test(op.cc) {
		return false
	}
	c.push16(c.PC)
	c.PC = a16
	return true
}

func opRET(c *CPU, op *opcode) bool {
	if !c.test(op.cc) {
		return false
	}
	c.PC = c.pop16()
	return true
}

// opRETI sets IME immediately, without the delay of EI.
func opRETI(c *CPU, op *opcode) bool {
	c.PC = c.pop16()
	c.IME = true
	c.eiDelay = 0
	return true
}

func opRST(c *CPU, op *opcode) bool {
	c.push16(c.PC)
	c.PC = uint16(op.n)
	return true
}
