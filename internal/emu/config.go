package emu

import "github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"

// Config contains settings that affect how a program image is run.
type Config struct {
	CPU cpu.Config

	// EntryVector and StackTop are given to the CPU on Reset(). Zero values
	// are replaced by 0x0100 and 0xfffe.
	EntryVector uint16
	StackTop    uint16

	// ReadOnly protects the addresses below it from writes, like cartridge
	// ROM. Zero leaves all of memory writable.
	ReadOnly int

	// StopOnFault ends Run() on the first memory fault. Otherwise faults are
	// logged and execution continues.
	StopOnFault bool

	// SerialWindow is the number of serial bytes kept for diagnostics and
	// pass/fail detection.
	SerialWindow int
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	c.CPU.Defaults()
	if c.EntryVector == 0 {
		c.EntryVector = 0x0100
	}
	if c.StackTop == 0 {
		c.StackTop = 0xfffe
	}
	if c.SerialWindow < 256 {
		c.SerialWindow = 8192
	}
}
