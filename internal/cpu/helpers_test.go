package cpu_test

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
)

var errTestFault = errors.New("test fault")

// flatMemory is 64KiB of RAM. Accesses in [faultFrom, faultTo) fail.
type flatMemory struct {
	data      [0x10000]uint8
	faultFrom int
	faultTo   int
}

func (m *flatMemory) faults(address uint16) bool {
	return int(address) >= m.faultFrom && int(address) < m.faultTo
}

func (m *flatMemory) Read(address uint16) (uint8, error) {
	if m.faults(address) {
		return 0xff, errTestFault
	}
	return m.data[address], nil
}

func (m *flatMemory) Write(address uint16, data uint8) error {
	if m.faults(address) {
		return errTestFault
	}
	m.data[address] = data
	return nil
}

// newCPUWithROM places code at 0x0100, where execution starts.
func newCPUWithROM(code ...uint8) (*cpu.CPU, *flatMemory) {
	return newCPUWithConfig(cpu.Config{}, code...)
}

func newCPUWithConfig(cfg cpu.Config, code ...uint8) (*cpu.CPU, *flatMemory) {
	mem := &flatMemory{}
	copy(mem.data[0x0100:], code)
	return cpu.New(mem, cfg), mem
}

// step executes one step and fails the test on error.
func step(t *testing.T, c *cpu.CPU) int {
	t.Helper()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("step at %04x: %v", c.PC, err)
	}
	return cycles
}

// run executes n steps and returns the total number of cycles.
func run(t *testing.T, c *cpu.CPU, n int) int {
	t.Helper()
	total := 0
	for range n {
		total += step(t, c)
	}
	return total
}
