package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/emu"
)

// ANSI colours used when output is a terminal
const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiYellow = "\033[33m"
)

// tracePrinter writes trace entries, colouring them only when the output is
// a real terminal.
type tracePrinter struct {
	output io.Writer
	colour bool
}

func newTracePrinter(output *os.File) *tracePrinter {
	return &tracePrinter{
		output: output,
		colour: term.IsTerminal(int(output.Fd())),
	}
}

func (tp *tracePrinter) print(e emu.TraceEntry) {
	if !tp.colour {
		fmt.Fprintln(tp.output, e)
		return
	}

	ime := ""
	if e.IME {
		ime = ansiYellow + " IME" + ansiReset
	}
	fmt.Fprintf(tp.output, "%s%04X%s  %s%-16s%s %scyc=%-2d %s IF=%02X IE=%02X%s%s\n",
		ansiDim, e.PC, ansiReset,
		ansiBold, e.Disassemble(), ansiReset,
		ansiDim, e.Cycles, e.Registers, e.IF, e.IE, ansiReset,
		ime)
}
