package cpu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"

// Memory is the view of the 16-bit address space required by the CPU. The
// CPU never checks addresses itself. An error returned by an implementation
// is a memory fault; the CPU finishes the instruction with whatever value was
// returned and reports the first fault from Step().
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

func (c *CPU) read(address uint16) uint8 {
	v, err := c.mem.Read(address)
	if err != nil && c.fault == nil {
		c.fault = err
	}
	return v
}

func (c *CPU) write(address uint16, v uint8) {
	err := c.mem.Write(address, v)
	if err != nil && c.fault == nil {
		c.fault = err
	}
}

func (c *CPU) read16(address uint16) uint16 {
	lo := uint16(c.read(address))
	hi := uint16(c.read(address + 1))
	return lo | hi<<8
}

func (c *CPU) write16(address uint16, v uint16) {
	c.write(address, uint8(v))
	c.write(address+1, uint8(v>>8))
}

// fetch8 reads the byte at PC and advances PC. After a HALT bug the first
// fetch does not advance PC.
func (c *CPU) fetch8() uint8 {
	v := c.read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

// push16 writes the high byte first, at SP-1, then the low byte at SP-2. SP
// wraps around the address space like the hardware.
func (c *CPU) push16(v uint16) {
	c.SP--
	c.write(c.SP, uint8(v>>8))
	c.SP--
	c.write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.read(c.SP))
	c.SP++
	hi := uint16(c.read(c.SP))
	c.SP++
	return lo | hi<<8
}

// get8 resolves an operand selector, reading memory for (HL).
func (c *CPU) get8(r registers.Reg8) uint8 {
	if r == registers.HLInd {
		return c.read(c.HL())
	}
	return c.Registers.Get(r)
}

// set8 resolves an operand selector, writing memory for (HL).
func (c *CPU) set8(r registers.Reg8, v uint8) {
	if r == registers.HLInd {
		c.write(c.HL(), v)
		return
	}
	c.Registers.Set(r, v)
}
