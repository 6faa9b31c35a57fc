package emu

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/logger"
)

// Limits bound a call to Run(). Zero values mean no limit.
type Limits struct {
	Steps  int
	Cycles uint64

	// Until ends the run when the serial output contains the string. The
	// comparison ignores case.
	Until string

	// Auto looks for "Passed" or "Failed N tests" in the serial output.
	Auto bool

	// Trace is called after every step
	Trace func(TraceEntry)
}

// Outcome says why Run() returned.
type Outcome int

const (
	Exhausted Outcome = iota
	Matched
	Passed
	Failed
	Cancelled
	Faulted
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "limit reached"
	case Matched:
		return "matched"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	case Faulted:
		return "faulted"
	}
	return "unknown outcome"
}

// Result of a call to Run().
type Result struct {
	Outcome Outcome

	// the part of the serial output that decided the outcome
	Detail string

	// the last test stage marker ("01:02") seen in the serial output
	Stage string

	Steps   int
	Cycles  uint64
	Elapsed time.Duration
}

func (r Result) String() string {
	s := fmt.Sprintf("%s: steps=%d cycles=%d elapsed=%s", r.Outcome, r.Steps, r.Cycles, r.Elapsed.Truncate(time.Millisecond))
	if r.Detail != "" {
		s = fmt.Sprintf("%s (%s)", s, r.Detail)
	}
	return s
}

var (
	failRe  = regexp.MustCompile(`(?i)failed\s+(\d+)\s+tests?`)
	stageRe = regexp.MustCompile(`\b(\d{2}:\d{2})\b`)
)

// how often the context is checked
const cancelCheck = 1024

// Run steps the CPU until a limit is reached, the serial output decides the
// outcome, or the context is done.
//
// An invalid opcode always ends the run and is returned as an error. Memory
// faults end the run only if Config.StopOnFault is set.
func (m *Machine) Run(ctx context.Context, lim Limits) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		res.Cycles = m.cpu.Cycles()
	}()

	lastSerial := m.serial.Written()
	until := strings.ToLower(lim.Until)

	for lim.Steps == 0 || res.Steps < lim.Steps {
		if res.Steps%cancelCheck == 0 {
			if ctx.Err() != nil {
				res.Outcome = Cancelled
				return res, nil
			}
		}
		if lim.Cycles > 0 && m.cpu.Cycles() >= lim.Cycles {
			break
		}

		pc := m.cpu.PC
		var cycles int
		cycles, err = m.cpu.Step()
		res.Steps++

		if lim.Trace != nil {
			lim.Trace(m.trace(res.Steps, pc, cycles))
		}

		if err != nil {
			if errors.Is(err, cpu.ErrInvalidOpcode) || m.cfg.StopOnFault {
				res.Outcome = Faulted
				return res, fmt.Errorf("emu: step %d: %w", res.Steps, err)
			}
			logger.Logf(m.cfg.CPU.Log, "emu", "step %d: %v", res.Steps, err)
		}

		if n := m.serial.Written(); n != lastSerial {
			lastSerial = n
			if m.checkSerial(&res, lim, until) {
				return res, nil
			}
		}
	}

	res.Outcome = Exhausted
	return res, nil
}

// checkSerial returns true if the serial output decides the outcome of the
// run.
func (m *Machine) checkSerial(res *Result, lim Limits, until string) bool {
	s := m.serial.String()

	if mm := stageRe.FindAllString(s, -1); len(mm) > 0 {
		res.Stage = mm[len(mm)-1]
	}

	if lim.Auto {
		if strings.Contains(strings.ToLower(s), "passed") {
			res.Outcome = Passed
			res.Detail = "Passed"
			return true
		}
		if f := failRe.FindString(s); f != "" {
			res.Outcome = Failed
			res.Detail = f
			return true
		}
		return false
	}

	if until != "" && strings.Contains(strings.ToLower(s), until) {
		res.Outcome = Matched
		res.Detail = lim.Until
		return true
	}

	return false
}
