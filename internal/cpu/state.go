package cpu

// State is the execution state of the CPU.
type State int

const (
	// Running fetches and executes instructions
	Running State = iota

	// Halted after a HALT instruction. Leaves when IF&IE becomes non-zero,
	// even if IME is clear.
	Halted

	// Stopped after a STOP instruction. Leaves on WakeFromStop() or when a
	// line in Config.StopWake is requested.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	}
	return "unknown state"
}
