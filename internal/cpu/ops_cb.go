package cpu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"

// opShift covers the first quarter of the extended table: the rotates, the
// shifts and SWAP. Z is taken from the result.
func opShift(c *CPU, op *opcode) bool {
	v, carry := shift(op.shift, c.get8(op.r), c.Flag(registers.Carry))
	c.set8(op.r, v)
	c.SetFlags(registers.Flags{Zero: v == 0, Carry: carry})
	return true
}

// opBIT sets Z if the bit is clear. Carry is preserved.
func opBIT(c *CPU, op *opcode) bool {
	v := c.get8(op.r)
	f := c.Flags()
	f.Zero = v&(1<<op.n) == 0
	f.Subtract = false
	f.HalfCarry = true
	c.SetFlags(f)
	return true
}

func opRES(c *CPU, op *opcode) bool {
	c.set8(op.r, c.get8(op.r)&^(1<<op.n))
	return true
}

func opSET(c *CPU, op *opcode) bool {
	c.set8(op.r, c.get8(op.r)|1<<op.n)
	return true
}
