package cpu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"

// aluOp selects one of the eight accumulator operations, in the order they
// appear in the opcode matrix.
type aluOp uint8

const (
	aluADD aluOp = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

func add8(a, b uint8, carry bool) (uint8, registers.Flags) {
	var ci uint16
	if carry {
		ci = 1
	}
	sum := uint16(a) + uint16(b) + ci
	res := uint8(sum)
	return res, registers.Flags{
		Zero:      res == 0,
		HalfCarry: uint16(a&0x0f)+uint16(b&0x0f)+ci > 0x0f,
		Carry:     sum > 0xff,
	}
}

func sub8(a, b uint8, carry bool) (uint8, registers.Flags) {
	var ci int
	if carry {
		ci = 1
	}
	diff := int(a) - int(b) - ci
	res := uint8(diff)
	return res, registers.Flags{
		Zero:      res == 0,
		Subtract:  true,
		HalfCarry: int(a&0x0f)-int(b&0x0f)-ci < 0,
		Carry:     diff < 0,
	}
}

func and8(a, b uint8) (uint8, registers.Flags) {
	res := a & b
	return res, registers.Flags{Zero: res == 0, HalfCarry: true}
}

func xor8(a, b uint8) (uint8, registers.Flags) {
	res := a ^ b
	return res, registers.Flags{Zero: res == 0}
}

func or8(a, b uint8) (uint8, registers.Flags) {
	res := a | b
	return res, registers.Flags{Zero: res == 0}
}

// alu performs op on A and v. CP computes the flags of SUB but leaves A alone.
func (c *CPU) alu(op aluOp, v uint8) {
	var res uint8
	var f registers.Flags
	carry := c.Flag(registers.Carry)

	switch op {
	case aluADD:
		res, f = add8(c.A, v, false)
	case aluADC:
		res, f = add8(c.A, v, carry)
	case aluSUB:
		res, f = sub8(c.A, v, false)
	case aluSBC:
		res, f = sub8(c.A, v, carry)
	case aluAND:
		res, f = and8(c.A, v)
	case aluXOR:
		res, f = xor8(c.A, v)
	case aluOR:
		res, f = or8(c.A, v)
	case aluCP:
		_, f = sub8(c.A, v, false)
		c.SetFlags(f)
		return
	}

	c.A = res
	c.SetFlags(f)
}

// inc8 and dec8 never change the carry flag.
func inc8(v uint8, f registers.Flags) (uint8, registers.Flags) {
	res := v + 1
	f.Zero = res == 0
	f.Subtract = false
	f.HalfCarry = v&0x0f == 0x0f
	return res, f
}

func dec8(v uint8, f registers.Flags) (uint8, registers.Flags) {
	res := v - 1
	f.Zero = res == 0
	f.Subtract = true
	f.HalfCarry = v&0x0f == 0x00
	return res, f
}

// add16 is ADD HL,rr. Half carry is out of bit 11, carry out of bit 15. The
// zero flag is not changed.
func add16(a, b uint16, f registers.Flags) (uint16, registers.Flags) {
	sum := uint32(a) + uint32(b)
	f.Subtract = false
	f.HalfCarry = (a&0x0fff)+(b&0x0fff) > 0x0fff
	f.Carry = sum > 0xffff
	return uint16(sum), f
}

// addSP is shared by ADD SP,e8 and LD HL,SP+e8. The flags come from the
// unsigned addition of the low byte of SP and the offset byte.
func addSP(sp uint16, e uint8) (uint16, registers.Flags) {
	res := sp + uint16(int16(int8(e)))
	return res, registers.Flags{
		HalfCarry: (sp&0x000f)+uint16(e&0x0f) > 0x000f,
		Carry:     (sp&0x00ff)+uint16(e) > 0x00ff,
	}
}

// shiftOp selects one of the rotate and shift operations of the extended
// table, in matrix order.
type shiftOp uint8

const (
	shiftRLC shiftOp = iota
	shiftRRC
	shiftRL
	shiftRR
	shiftSLA
	shiftSRA
	shiftSWAP
	shiftSRL
)

// shift returns the result and the new carry. SWAP always clears carry.
func shift(op shiftOp, v uint8, carry bool) (uint8, bool) {
	var ci uint8
	if carry {
		ci = 1
	}

	switch op {
	case shiftRLC:
		return v<<1 | v>>7, v&0x80 != 0
	case shiftRRC:
		return v>>1 | v<<7, v&0x01 != 0
	case shiftRL:
		return v<<1 | ci, v&0x80 != 0
	case shiftRR:
		return v>>1 | ci<<7, v&0x01 != 0
	case shiftSLA:
		return v << 1, v&0x80 != 0
	case shiftSRA:
		return v>>1 | v&0x80, v&0x01 != 0
	case shiftSWAP:
		return v<<4 | v>>4, false
	case shiftSRL:
		return v >> 1, v&0x01 != 0
	}
	panic("cpu: unknown shift operation")
}

// daa adjusts A after a BCD addition or subtraction. N is kept, H cleared.
func daa(a uint8, f registers.Flags) (uint8, registers.Flags) {
	carry := f.Carry
	if !f.Subtract {
		if f.Carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if f.HalfCarry || a&0x0f > 0x09 {
			a += 0x06
		}
	} else {
		if f.Carry {
			a -= 0x60
		}
		if f.HalfCarry {
			a -= 0x06
		}
	}
	f.Zero = a == 0
	f.HalfCarry = false
	f.Carry = carry
	return a, f
}
