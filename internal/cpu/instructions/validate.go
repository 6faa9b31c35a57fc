package instructions

import "fmt"

// Validate checks that both tables are complete and consistent. Every slot
// must describe its own opcode and be either a real instruction, the prefix
// marker or an explicit Undefined marker.
func Validate(base, extended [256]Definition) error {
	prefixes := 0
	for i, defn := range base {
		if err := validateEntry(uint8(i), false, defn); err != nil {
			return err
		}
		if defn.Prefix {
			prefixes++
		}
	}
	if prefixes != 1 || !base[PrefixByte].Prefix {
		return fmt.Errorf("instructions: base table must have exactly one prefix entry at %#02x", PrefixByte)
	}

	for i, defn := range extended {
		if err := validateEntry(uint8(i), true, defn); err != nil {
			return err
		}
		if defn.Prefix {
			return fmt.Errorf("instructions: prefix entry in extended table at %#02x", i)
		}
	}

	return nil
}

func validateEntry(opcode uint8, prefixed bool, defn Definition) error {
	if defn.OpCode != opcode {
		return fmt.Errorf("instructions: slot %#02x holds definition for %#02x", opcode, defn.OpCode)
	}
	if defn.Prefixed != prefixed {
		return fmt.Errorf("instructions: slot %#02x has wrong table marker", opcode)
	}

	if defn.Undefined {
		if defn.Category != Undefined || defn.Prefix {
			return fmt.Errorf("instructions: undefined slot %#02x is also marked as an instruction", opcode)
		}
		return nil
	}

	if defn.Mnemonic == "" {
		return fmt.Errorf("instructions: slot %#02x has no mnemonic", opcode)
	}
	if defn.Category == Undefined {
		return fmt.Errorf("instructions: slot %#02x categorised as undefined but not marked", opcode)
	}

	if prefixed {
		if defn.Bytes != 2 {
			return fmt.Errorf("instructions: extended opcode %#02x is %d bytes long", opcode, defn.Bytes)
		}
	} else if defn.Bytes < 1 || defn.Bytes > 3 {
		return fmt.Errorf("instructions: opcode %#02x is %d bytes long", opcode, defn.Bytes)
	}

	if defn.Cycles <= 0 || defn.Cycles%4 != 0 {
		return fmt.Errorf("instructions: opcode %#02x has bad cycle count (%d)", opcode, defn.Cycles)
	}

	if defn.IsConditional() {
		switch defn.Category {
		case Jump, Call, Return:
		default:
			return fmt.Errorf("instructions: opcode %#02x (%s) cannot be conditional", opcode, defn.Category)
		}
		if defn.AltCycles%4 != 0 || defn.AltCycles >= defn.Cycles {
			return fmt.Errorf("instructions: opcode %#02x has bad not-taken cycle count (%d)", opcode, defn.AltCycles)
		}
	}

	return nil
}
