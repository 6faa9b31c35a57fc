package cpu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"

// Config contains settings that affect how the core behaves at the edges the
// hardware documentation leaves to the implementer.
type Config struct {
	// PostBoot loads the register values left by the DMG boot ROM on Reset()
	// instead of clearing the registers
	PostBoot bool

	// NoHaltBug turns off the HALT bug. With the bug (the default) a HALT
	// executed while IME is clear and an enabled interrupt is pending does
	// not halt, and the following opcode byte is fetched twice. Without it
	// the HALT completes as if it were a NOP.
	NoHaltBug bool

	// StopWake holds the interrupt lines (as an IF style bit mask) that take
	// the CPU out of STOP. A pending line wakes the CPU whatever the state of
	// IE and IME. Defaults to the joypad line.
	StopWake uint8

	// Log decides whether core events are written to the central log
	Log logger.Permission
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.StopWake == 0 {
		c.StopWake = Joypad.Mask()
	}
	if c.Log == nil {
		c.Log = logger.Allow
	}
}
