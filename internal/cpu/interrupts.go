package cpu

import "math/bits"

// Interrupt identifies one of the five interrupt lines. The value is the bit
// position of the line in IF and IE.
type Interrupt uint8

const (
	VBlank Interrupt = iota
	LCDStat
	Timer
	Serial
	Joypad
)

// number of T-cycles taken to deliver an interrupt
const interruptCycles = 20

// only the bottom five bits of IF have any meaning
const interruptLines = 0x1f

func (i Interrupt) String() string {
	switch i {
	case VBlank:
		return "VBlank"
	case LCDStat:
		return "LCDStat"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return "unknown interrupt"
}

// Vector returns the address the CPU jumps to when delivering the interrupt.
func (i Interrupt) Vector() uint16 {
	return 0x40 + 8*uint16(i)
}

// Mask returns the bit for the line in IF and IE.
func (i Interrupt) Mask() uint8 {
	return 1 << i
}

// RequestInterrupt raises an interrupt line by setting its bit in IF. It may
// be called from any goroutine.
func (c *CPU) RequestInterrupt(line Interrupt) {
	if line > Joypad {
		return
	}
	c.pending.Or(uint32(line.Mask()))
}

// WakeFromStop is how the host signals the external event (usually a button
// press) that ends a STOP. It may be called from any goroutine.
func (c *CPU) WakeFromStop() {
	c.wake.Store(true)
}

// InterruptFlags returns the value of IF. Only the bottom five bits are
// stored; what a bus returns for the upper three bits is its own business.
func (c *CPU) InterruptFlags() uint8 {
	return uint8(c.pending.Load()) & interruptLines
}

// SetInterruptFlags replaces IF, as when a program writes to it.
func (c *CPU) SetInterruptFlags(v uint8) {
	c.pending.Store(uint32(v & interruptLines))
}

// InterruptEnable returns the value of IE.
func (c *CPU) InterruptEnable() uint8 {
	return uint8(c.enable.Load())
}

// SetInterruptEnable replaces IE.
func (c *CPU) SetInterruptEnable(v uint8) {
	c.enable.Store(uint32(v))
}

// pendingEnabled returns the lines that are both requested and enabled.
func (c *CPU) pendingEnabled() uint8 {
	return c.InterruptFlags() & c.InterruptEnable() & interruptLines
}

// deliverInterrupt services the highest priority pending line if IME allows
// it. The lowest numbered line wins.
func (c *CPU) deliverInterrupt() (int, bool) {
	if !c.IME {
		return 0, false
	}

	pending := c.pendingEnabled()
	if pending == 0 {
		return 0, false
	}

	line := Interrupt(bits.TrailingZeros8(pending))
	c.pending.And(^uint32(line.Mask()))
	c.IME = false
	c.eiDelay = 0
	c.state = Running

	c.push16(c.PC)
	c.PC = line.Vector()

	return interruptCycles, true
}

// stopWoken checks and clears the wake signal. A pending line in the StopWake
// mask also ends STOP, whatever IE and IME say.
func (c *CPU) stopWoken() bool {
	if c.wake.Swap(false) {
		return true
	}
	return c.InterruptFlags()&c.cfg.StopWake != 0
}
