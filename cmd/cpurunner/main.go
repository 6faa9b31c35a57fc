// cpurunner executes LR35902 program images without any video or audio
// hardware. Test programs that report over the serial port can be run to a
// pass/fail result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/emu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"
)

// exit codes
const (
	exitPass    = 0
	exitFail    = 1
	exitTimeout = 2
)

type options struct {
	steps       int
	cycles      uint64
	until       string
	auto        bool
	timeout     time.Duration
	trace       bool
	traceOnFail bool
	traceWindow int
}

func main() {
	romPath := flag.String("rom", "", "path to program image, loaded at address 0")
	batchDir := flag.String("batch", "", "run every .gb image under this directory instead of -rom")
	jobs := flag.Int("jobs", 0, "number of images run at once in -batch mode (0 = number of CPUs)")
	steps := flag.Int("steps", 5_000_000, "max CPU steps to run (0 = no limit)")
	cycles := flag.Uint64("cycles", 0, "max T-cycles to run (0 = no limit)")
	startPC := flag.Int("pc", 0x0100, "initial PC value")
	startSP := flag.Int("sp", 0xfffe, "initial SP value")
	postBoot := flag.Bool("postboot", true, "load the DMG post-boot register values")
	noHaltBug := flag.Bool("nohaltbug", false, "HALT with a pending interrupt and IME clear completes as a NOP")
	readOnly := flag.Int("readonly", 0x8000, "write-protect addresses below this value (0 disables)")
	stopOnFault := flag.Bool("stopOnFault", false, "end the run on the first memory fault")
	trace := flag.Bool("trace", false, "print every instruction")
	until := flag.String("until", "Passed", "stop when serial output contains this substring (case-insensitive); empty to disable")
	auto := flag.Bool("auto", false, "auto-detect 'Passed' or 'Failed N tests' in serial output and exit with code 0/1")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	traceOnFail := flag.Bool("traceOnFail", false, "when a run fails, print a recent trace window (slows down)")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	serialWindow := flag.Int("serialWindow", 8192, "number of recent serial bytes to retain for diagnostics on fail")
	echoLog := flag.Bool("log", false, "echo the central log to stderr")
	statsAddr := flag.String("statsview", "", "serve runtime statistics on this address (e.g. localhost:12600)")
	memvizPath := flag.String("memviz", "", "write a graph of the final CPU state to this file (graphviz dot)")
	flag.Parse()

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}
	if *statsAddr != "" {
		launchStatsview(*statsAddr)
	}

	cfg := emu.Config{
		CPU: cpu.Config{
			PostBoot:  *postBoot,
			NoHaltBug: *noHaltBug,
		},
		EntryVector:  uint16(*startPC),
		StackTop:     uint16(*startSP),
		ReadOnly:     *readOnly,
		StopOnFault:  *stopOnFault,
		SerialWindow: *serialWindow,
	}
	opts := options{
		steps:       *steps,
		cycles:      *cycles,
		until:       *until,
		auto:        *auto,
		timeout:     *timeout,
		trace:       *trace,
		traceOnFail: *traceOnFail,
		traceWindow: *traceWindow,
	}

	if *batchDir != "" {
		if *trace {
			log.Fatal("-trace cannot be used with -batch")
		}
		opts.auto = true
		os.Exit(runBatch(*batchDir, *jobs, cfg, opts))
	}

	if *romPath == "" {
		log.Fatal("-rom or -batch is required")
	}

	m := emu.New(cfg)
	if err := m.LoadImageFromFile(*romPath); err != nil {
		log.Fatalf("load image: %v", err)
	}
	if h, ok := m.Header(); ok {
		log.Printf("image: %s", h)
		if h.Banked() {
			log.Printf("image expects a bank controller; results may be wrong if it switches banks")
		}
	}

	// entry vector zero is not expressible in emu.Config
	m.CPU().Reset(uint16(*startPC), uint16(*startSP))
	m.SetSerialWriter(os.Stdout)

	code := runOne(context.Background(), m, opts, newTracePrinter(os.Stdout))

	if *memvizPath != "" {
		if err := writeMemviz(*memvizPath, m); err != nil {
			log.Printf("memviz: %v", err)
		}
	}

	os.Exit(code)
}

// runOne runs a loaded machine and reports the result to stdout. It returns
// the exit code for the result.
func runOne(ctx context.Context, m *emu.Machine, opts options, tp *tracePrinter) int {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	lim := emu.Limits{
		Steps:  opts.steps,
		Cycles: opts.cycles,
		Until:  opts.until,
		Auto:   opts.auto,
	}

	ring := emu.NewTraceRing(0)
	if opts.traceOnFail {
		ring = emu.NewTraceRing(opts.traceWindow)
	}
	if opts.trace || opts.traceOnFail {
		lim.Trace = func(e emu.TraceEntry) {
			if opts.trace {
				tp.print(e)
			}
			ring.Add(e)
		}
	}

	res, err := m.Run(ctx, lim)

	failed := func() {
		if opts.traceOnFail && len(ring.Entries()) > 0 {
			entries := ring.Entries()
			fmt.Printf("\n--- recent trace (last %d instructions) ---\n", len(entries))
			for _, e := range entries {
				tp.print(e)
			}
			fmt.Printf("--- end trace ---\n")
		}
		if s := m.Serial(); s != "" {
			fmt.Printf("\n--- recent serial (last %d bytes) ---\n", len(s))
			fmt.Print(s)
			fmt.Printf("\n--- end serial ---\n")
		}
	}

	done := func() {
		fmt.Printf("\nDone: steps=%d cycles~=%d elapsed=%s\n", res.Steps, res.Cycles, res.Elapsed.Truncate(time.Millisecond))
	}

	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Printf("CPU: %s\n", m.CPU())
		failed()
		done()
		return exitFail
	}

	switch res.Outcome {
	case emu.Passed:
		fmt.Printf("\nDetected PASS in serial output.\n")
	case emu.Failed:
		fmt.Printf("\nDetected %s in serial output.\n", res.Detail)
		if res.Stage != "" {
			fmt.Printf("Last stage seen: %s\n", res.Stage)
		}
		failed()
		done()
		return exitFail
	case emu.Matched:
		fmt.Printf("\nDetected '%s' in serial output.\n", res.Detail)
	case emu.Cancelled:
		fmt.Printf("\nTimeout after %s.\n", res.Elapsed.Truncate(time.Millisecond))
		done()
		return exitTimeout
	}

	if res.Stage != "" {
		fmt.Printf("Last stage seen: %s\n", res.Stage)
	}
	done()
	return exitPass
}
