// Package emu ties the CPU to a bus and runs program images: test programs
// that report over the serial port, or anything else that only needs the
// processor and flat memory.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/bus"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"
)

type Machine struct {
	cfg Config

	bus *bus.Bus
	cpu *cpu.CPU

	serial *RingWriter
	extra  io.Writer

	imagePath string

	header    Header
	hasHeader bool
}

// New returns a machine with empty memory.
func New(cfg Config) *Machine {
	cfg.Defaults()
	m := &Machine{cfg: cfg}
	m.serial, _ = NewRingWriter(cfg.SerialWindow)
	m.attach(bus.New(nil))
	return m
}

func (m *Machine) attach(b *bus.Bus) {
	m.bus = b
	m.cpu = cpu.New(b, m.cfg.CPU)
	b.ConnectInterrupts(m.cpu)
	b.SetReadOnly(m.cfg.ReadOnly)
	m.connectSerial()
	m.Reset()
}

func (m *Machine) connectSerial() {
	if m.extra != nil {
		m.bus.SetSerialWriter(io.MultiWriter(m.serial, m.extra))
	} else {
		m.bus.SetSerialWriter(m.serial)
	}
}

// LoadImage replaces memory with a new image placed at address zero and
// resets the CPU.
func (m *Machine) LoadImage(image []byte) error {
	if len(image) > 0x10000 {
		return fmt.Errorf("emu: image of %d bytes does not fit in the address space", len(image))
	}
	m.attach(bus.New(image))

	var err error
	m.header, err = ParseHeader(image)
	m.hasHeader = err == nil
	if m.hasHeader {
		logger.Logf(m.cfg.CPU.Log, "emu", "image %s", m.header)
		if m.header.Banked() {
			logger.Logf(m.cfg.CPU.Log, "emu", "image expects a bank controller; bank switching is not emulated")
		}
	}

	return nil
}

// Header returns the header of the loaded image. The second return value is
// false if the image is too small to have one.
func (m *Machine) Header() (Header, bool) {
	return m.header, m.hasHeader
}

// LoadImageFromFile is like LoadImage() but reads the image from disk.
func (m *Machine) LoadImageFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("emu: %w", err)
	}
	if err := m.LoadImage(data); err != nil {
		return err
	}
	m.imagePath = path
	return nil
}

// ImagePath returns the path of the image loaded by LoadImageFromFile().
func (m *Machine) ImagePath() string {
	return m.imagePath
}

// Reset puts the CPU at the configured entry vector and clears the serial
// log. Memory is not changed.
func (m *Machine) Reset() {
	m.cpu.Reset(m.cfg.EntryVector, m.cfg.StackTop)
	m.serial.Reset()
}

// SetSerialWriter sends serial output to w as well as to the machine's own
// log of it. A nil writer removes the extra destination.
func (m *Machine) SetSerialWriter(w io.Writer) {
	m.extra = w
	m.connectSerial()
}

// Serial returns the most recent serial output.
func (m *Machine) Serial() string {
	return m.serial.String()
}

func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

func (m *Machine) Bus() *bus.Bus {
	return m.bus
}

// Snapshot summarises the CPU without any reference to memory. It is small
// enough to be dumped or printed.
type Snapshot struct {
	Registers string
	Flags     string
	IME       bool
	State     string
	IF, IE    uint8
	Cycles    uint64
	Serial    string
}

func (m *Machine) Snapshot() Snapshot {
	c := m.cpu
	return Snapshot{
		Registers: c.Registers.String(),
		Flags:     c.Flags().String(),
		IME:       c.IME,
		State:     c.State().String(),
		IF:        c.InterruptFlags(),
		IE:        c.InterruptEnable(),
		Cycles:    c.Cycles(),
		Serial:    m.serial.String(),
	}
}

// trace fills a TraceEntry for the instruction that started at pc.
func (m *Machine) trace(step int, pc uint16, cycles int) TraceEntry {
	e := TraceEntry{
		Step:      step,
		PC:        pc,
		Cycles:    cycles,
		Registers: m.cpu.Registers,
		IME:       m.cpu.IME,
		State:     m.cpu.State(),
		IF:        m.cpu.InterruptFlags(),
		IE:        m.cpu.InterruptEnable(),
	}
	for i := range e.Code {
		e.Code[i] = m.bus.Peek(pc + uint16(i))
	}
	return e
}
