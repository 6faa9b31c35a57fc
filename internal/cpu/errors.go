package cpu

import (
	"errors"
	"fmt"
)

// ErrInvalidOpcode is matched by every InvalidOpcodeError.
var ErrInvalidOpcode = errors.New("cpu: invalid opcode")

// InvalidOpcodeError is returned by Step() when the fetched opcode is one the
// hardware does not decode. The program counter is left pointing past the
// offending byte and nothing else about the CPU has changed.
type InvalidOpcodeError struct {
	// address of the first byte of the instruction
	Address uint16

	Opcode   uint8
	Prefixed bool
}

func (e *InvalidOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: invalid opcode (cb %#02x) at (%#04x)", e.Opcode, e.Address)
	}
	return fmt.Sprintf("cpu: invalid opcode (%#02x) at (%#04x)", e.Opcode, e.Address)
}

// Is allows errors.Is(err, ErrInvalidOpcode).
func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}
