// Package instructions defines the two opcode tables of the LR35902: the base
// table indexed by the first opcode byte, and the extended table reached
// through the 0xCB prefix and indexed by the second byte.
//
// Each table has exactly 256 entries and every entry is accounted for. An
// entry is either a real instruction, the prefix marker (base table only), or
// an explicit Undefined marker for the bytes the hardware does not decode.
// Validate() checks this and is run when the package is initialised.
//
// The tables only describe instructions: mnemonic, length and cycle cost. The
// behaviour of each instruction is bound to the table by the cpu package.
//
// Cycle costs are in clock cycles (T-cycles); one machine cycle is four
// clock cycles. For conditional instructions Cycles is the cost when the
// condition holds and AltCycles the cost when it does not.
package instructions

import "fmt"

// Category groups instructions by what they do.
type Category int

const (
	Misc Category = iota
	Load8
	Load16
	ALU8
	ALU16
	Rotate
	Bit
	Jump
	Call
	Return
	Restart
	Prefix
	Undefined
)

func (c Category) String() string {
	switch c {
	case Misc:
		return "Misc"
	case Load8:
		return "Load8"
	case Load16:
		return "Load16"
	case ALU8:
		return "ALU8"
	case ALU16:
		return "ALU16"
	case Rotate:
		return "Rotate"
	case Bit:
		return "Bit"
	case Jump:
		return "Jump"
	case Call:
		return "Call"
	case Return:
		return "Return"
	case Restart:
		return "Restart"
	case Prefix:
		return "Prefix"
	case Undefined:
		return "Undefined"
	}
	return "unknown category"
}

// Definition describes a single opcode.
type Definition struct {
	OpCode uint8

	// Prefixed is true for entries of the extended table
	Prefixed bool

	// Mnemonic with operand placeholders: d8 and d16 are immediate data, a8
	// is an offset into page 0xFF, a16 is an absolute address and r8 is a
	// signed displacement
	Mnemonic string

	// Bytes includes the opcode byte and, for extended instructions, the
	// prefix byte
	Bytes int

	Cycles    int
	AltCycles int

	Category Category

	// Prefix marks the base table entry that selects the extended table
	Prefix bool

	// Undefined marks an opcode the hardware does not decode
	Undefined bool
}

func (defn Definition) String() string {
	if defn.Undefined {
		if defn.Prefixed {
			return fmt.Sprintf("cb %02x undefined", defn.OpCode)
		}
		return fmt.Sprintf("%02x undefined", defn.OpCode)
	}
	if defn.Prefixed {
		return fmt.Sprintf("cb %02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
	}
	if defn.IsConditional() {
		return fmt.Sprintf("%02x %s +%dbytes (%d/%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.AltCycles)
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// IsConditional returns true if the instruction has separate costs for the
// taken and not-taken outcomes.
func (defn Definition) IsConditional() bool {
	return defn.AltCycles != 0
}

// Cost returns the cycle cost for the outcome of the instruction.
func (defn Definition) Cost(taken bool) int {
	if !taken && defn.IsConditional() {
		return defn.AltCycles
	}
	return defn.Cycles
}

// PrefixByte selects the extended table.
const PrefixByte = 0xcb

var base [256]Definition
var extended [256]Definition

func init() {
	if len(baseDefinitions) != len(base) {
		panic(fmt.Sprintf("instructions: base table has %d entries", len(baseDefinitions)))
	}
	copy(base[:], baseDefinitions)
	extended = buildExtended()
	if err := Validate(base, extended); err != nil {
		panic(err)
	}
}

// Base returns a copy of the base table.
func Base() [256]Definition {
	return base
}

// Extended returns a copy of the extended table.
func Extended() [256]Definition {
	return extended
}

// Lookup returns the definition for an opcode. The prefixed argument selects
// the extended table.
func Lookup(opcode uint8, prefixed bool) Definition {
	if prefixed {
		return extended[opcode]
	}
	return base[opcode]
}
