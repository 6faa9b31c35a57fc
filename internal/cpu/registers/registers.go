// Package registers implements the register file of the LR35902: seven
// general purpose 8-bit registers, the flags register, the stack pointer and
// the program counter.
//
// The 16-bit pairs (AF, BC, DE, HL) are not stored separately. They are
// composed from and decomposed into their 8-bit halves on every access, the
// high register always supplying bits 15-8.
//
// The flags register F is not exported as a field. It is reached through F()
// and SetF() or through the Flags type, both of which keep the low nibble of
// F at zero.
package registers

import "fmt"

// Reg8 selects an 8-bit operand by the 3-bit encoding used in the opcode
// matrix. HLInd is not a register: it names the byte at the address in HL and
// must be resolved by the caller.
type Reg8 uint8

const (
	B Reg8 = iota
	C
	D
	E
	H
	L
	HLInd
	A
)

func (r Reg8) String() string {
	switch r {
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case H:
		return "H"
	case L:
		return "L"
	case HLInd:
		return "(HL)"
	case A:
		return "A"
	}
	return "?"
}

// Pair selects a 16-bit register.
type Pair uint8

const (
	BC Pair = iota
	DE
	HL
	SP
	AF
	PC
)

func (p Pair) String() string {
	switch p {
	case BC:
		return "BC"
	case DE:
		return "DE"
	case HL:
		return "HL"
	case SP:
		return "SP"
	case AF:
		return "AF"
	case PC:
		return "PC"
	}
	return "??"
}

// Registers is the complete register file.
type Registers struct {
	A, B, C, D, E, H, L uint8
	f                   uint8

	SP uint16
	PC uint16
}

// Reset clears every register.
func (r *Registers) Reset() {
	*r = Registers{}
}

func (r Registers) String() string {
	return fmt.Sprintf("A=%02X F=%s B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X",
		r.A, r.Flags(), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}

// F returns the flags register.
func (r Registers) F() uint8 {
	return r.f
}

// SetF loads the flags register. The low nibble of v is discarded.
func (r *Registers) SetF(v uint8) {
	r.f = FromValue(v).Value()
}

// Flags returns the decoded flags.
func (r Registers) Flags() Flags {
	return FromValue(r.f)
}

// SetFlags replaces all four flags.
func (r *Registers) SetFlags(f Flags) {
	r.f = f.Value()
}

// Flag returns the state of a single flag.
func (r Registers) Flag(flag Flag) bool {
	return r.Flags().Get(flag)
}

// SetFlag changes a single flag, leaving the others alone.
func (r *Registers) SetFlag(flag Flag, on bool) {
	r.f = r.Flags().With(flag, on).Value()
}

// Get returns the 8-bit register selected by reg. Asking for HLInd is a
// programming error and panics.
func (r Registers) Get(reg Reg8) uint8 {
	switch reg {
	case B:
		return r.B
	case C:
		return r.C
	case D:
		return r.D
	case E:
		return r.E
	case H:
		return r.H
	case L:
		return r.L
	case A:
		return r.A
	}
	panic(fmt.Sprintf("registers: %v is not an 8-bit register", reg))
}

// Set loads the 8-bit register selected by reg. Asking for HLInd is a
// programming error and panics.
func (r *Registers) Set(reg Reg8, v uint8) {
	switch reg {
	case B:
		r.B = v
	case C:
		r.C = v
	case D:
		r.D = v
	case E:
		r.E = v
	case H:
		r.H = v
	case L:
		r.L = v
	case A:
		r.A = v
	default:
		panic(fmt.Sprintf("registers: %v is not an 8-bit register", reg))
	}
}

func (r Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.f) }
func (r Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetAF loads A and F. The low nibble of F is forced to zero whatever v holds.
func (r *Registers) SetAF(v uint16) { r.A = uint8(v >> 8); r.SetF(uint8(v)) }
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// Pair returns the 16-bit register selected by p.
func (r Registers) Pair(p Pair) uint16 {
	switch p {
	case BC:
		return r.BC()
	case DE:
		return r.DE()
	case HL:
		return r.HL()
	case SP:
		return r.SP
	case AF:
		return r.AF()
	case PC:
		return r.PC
	}
	panic(fmt.Sprintf("registers: unknown pair %d", p))
}

// SetPair loads the 16-bit register selected by p.
func (r *Registers) SetPair(p Pair, v uint16) {
	switch p {
	case BC:
		r.SetBC(v)
	case DE:
		r.SetDE(v)
	case HL:
		r.SetHL(v)
	case SP:
		r.SP = v
	case AF:
		r.SetAF(v)
	case PC:
		r.PC = v
	default:
		panic(fmt.Sprintf("registers: unknown pair %d", p))
	}
}
