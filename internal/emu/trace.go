package emu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/instructions"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"
)

// TraceEntry records one step of the CPU. Registers are as they were after
// the step.
type TraceEntry struct {
	Step   int
	PC     uint16
	Code   [3]uint8
	Cycles int

	Registers registers.Registers
	IME       bool
	State     cpu.State
	IF, IE    uint8
}

// Disassemble returns the instruction at PC.
func (e TraceEntry) Disassemble() string {
	s, _ := instructions.Disassemble(e.Code[:], e.PC)
	return s
}

func (e TraceEntry) String() string {
	return fmt.Sprintf("%04X  %-16s cyc=%-2d %s IME=%t IF=%02X IE=%02X",
		e.PC, e.Disassemble(), e.Cycles, e.Registers, e.IME, e.IF, e.IE)
}

// TraceRing keeps the most recent trace entries.
type TraceRing struct {
	entries []TraceEntry
	cursor  int
	fill    int
}

// NewTraceRing returns a ring holding up to size entries. A size of zero or
// less makes a ring that keeps nothing.
func NewTraceRing(size int) *TraceRing {
	return &TraceRing{entries: make([]TraceEntry, max(size, 0))}
}

func (r *TraceRing) Add(e TraceEntry) {
	if len(r.entries) == 0 {
		return
	}
	r.entries[r.cursor] = e
	r.cursor = (r.cursor + 1) % len(r.entries)
	if r.fill < len(r.entries) {
		r.fill++
	}
}

// Entries returns the kept entries in the order they were added.
func (r *TraceRing) Entries() []TraceEntry {
	out := make([]TraceEntry, 0, r.fill)
	start := (r.cursor - r.fill + len(r.entries)) % max(len(r.entries), 1)
	for i := range r.fill {
		out = append(out, r.entries[(start+i)%len(r.entries)])
	}
	return out
}
