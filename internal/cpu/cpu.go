// Package cpu implements the Sharp LR35902 (SM83) processor found in the
// Game Boy. The CPU executes one instruction per call to Step() and reports
// the number of T-cycles it took.
//
// The CPU knows nothing about the devices around it. All memory access goes
// through the Memory interface and interrupts arrive through
// RequestInterrupt(). The IF and IE registers are held by the CPU and can be
// mapped into the address space by the bus with the InterruptFlags() and
// InterruptEnable() accessors.
package cpu

import (
	"fmt"
	"sync/atomic"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"
)

// Core is the part of the CPU a driver needs.
type Core interface {
	Reset(entryVector, stackTop uint16)
	Step() (int, error)
	RequestInterrupt(line Interrupt)
}

// number of T-cycles spent by a Step() that does nothing because the CPU is
// halted or stopped
const idleCycles = 4

// CPU implements the LR35902 processor.
type CPU struct {
	registers.Registers

	// interrupt master enable
	IME bool

	cfg Config
	mem Memory

	state State

	// counts down to IME being set after EI. zero when no EI is pending
	eiDelay int

	// the next opcode fetch does not advance PC
	haltBug bool

	// IF is written by peripherals that may run in other goroutines
	pending atomic.Uint32

	// IE. atomic because a bus may read it from another goroutine
	enable atomic.Uint32

	// set by WakeFromStop()
	wake atomic.Bool

	// total T-cycles since Reset()
	cycles uint64

	// first memory fault of the current step
	fault error
}

// New is the preferred method of initialisation for the CPU type. The CPU is
// left in the state described by Reset(0x0100, 0xfffe).
func New(mem Memory, cfg Config) *CPU {
	cfg.Defaults()
	c := &CPU{
		cfg: cfg,
		mem: mem,
	}
	c.Reset(0x0100, 0xfffe)
	return c
}

// Reset puts the CPU into a known state. The general purpose registers and
// the flags are cleared (or loaded with the post-boot values if
// Config.PostBoot is set), interrupts are disabled and cleared, and
// execution will start at entryVector with the stack at stackTop.
func (c *CPU) Reset(entryVector, stackTop uint16) {
	c.Registers.Reset()
	if c.cfg.PostBoot {
		c.A = 0x01
		c.SetF(0xb0)
		c.B, c.C = 0x00, 0x13
		c.D, c.E = 0x00, 0xd8
		c.H, c.L = 0x01, 0x4d
	}
	c.SP = stackTop
	c.PC = entryVector

	c.IME = false
	c.state = Running
	c.eiDelay = 0
	c.haltBug = false
	c.pending.Store(0)
	c.enable.Store(0)
	c.wake.Store(false)
	c.cycles = 0
	c.fault = nil
}

func (c *CPU) String() string {
	ime := "di"
	if c.IME {
		ime = "ei"
	}
	return fmt.Sprintf("%s %s %s IF=%02X IE=%02X", c.Registers, ime, c.state, c.InterruptFlags(), c.InterruptEnable())
}

// State returns the current execution state.
func (c *CPU) State() State {
	return c.state
}

// Cycles returns the number of T-cycles since the last Reset().
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Step advances the CPU by one instruction, one interrupt delivery or one
// idle machine cycle, and returns the number of T-cycles that took.
//
// An undefined opcode returns zero cycles and an error matching
// ErrInvalidOpcode. PC is left after the opcode and nothing else changes.
//
// A memory fault does not stop the instruction. The error from the first
// faulting access is returned, unchanged, together with the cycles of the
// completed instruction.
func (c *CPU) Step() (int, error) {
	c.fault = nil

	if c.state == Stopped {
		if !c.stopWoken() {
			return c.idle(), nil
		}
		c.state = Running
		c.logf("leaving stop at %#04x", c.PC)
	}

	if cycles, ok := c.deliverInterrupt(); ok {
		c.cycles += uint64(cycles)
		return cycles, c.fault
	}

	if c.state == Halted {
		if c.pendingEnabled() == 0 {
			return c.idle(), nil
		}
		c.state = Running
	}

	address := c.PC
	prefixed := false
	opc := c.fetch8()
	op := &baseOps[opc]
	if op.defn.Prefix {
		prefixed = true
		opc = c.fetch8()
		op = &extendedOps[opc]
	}

	if op.defn.Undefined {
		c.logf("invalid opcode %#02x at %#04x", opc, address)
		return 0, &InvalidOpcodeError{Address: address, Opcode: opc, Prefixed: prefixed}
	}

	cycles := op.execute(c)

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.IME = true
		}
	}

	c.cycles += uint64(cycles)
	return cycles, c.fault
}

func (c *CPU) idle() int {
	c.cycles += idleCycles
	return idleCycles
}

func (c *CPU) logf(detail string, args ...any) {
	logger.Logf(c.cfg.Log, "cpu", detail, args...)
}
