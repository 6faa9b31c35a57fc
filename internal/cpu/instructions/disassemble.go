package instructions

import (
	"fmt"
	"strings"
)

// Decode returns the definition for the instruction at the start of code.
// The second return value is false if code is too short to hold the opcode.
func Decode(code []uint8) (Definition, bool) {
	if len(code) == 0 {
		return Definition{}, false
	}
	if code[0] == PrefixByte {
		if len(code) < 2 {
			return base[PrefixByte], false
		}
		return extended[code[1]], true
	}
	return base[code[0]], true
}

// Disassemble formats the instruction at the start of code. The address is
// where the instruction sits in memory and is needed to resolve the target of
// relative jumps. Operands missing from code are printed as "??".
func Disassemble(code []uint8, address uint16) (string, Definition) {
	defn, ok := Decode(code)
	if !ok {
		return "??", defn
	}
	if defn.Undefined {
		return fmt.Sprintf("DB $%02X", defn.OpCode), defn
	}
	if defn.Prefixed || defn.Bytes == 1 {
		return defn.Mnemonic, defn
	}

	operand := code[1:]
	if len(operand) < defn.Bytes-1 {
		return strings.NewReplacer("d16", "??", "a16", "??", "d8", "??", "a8", "??", "r8", "??").Replace(defn.Mnemonic), defn
	}

	var s string
	switch {
	case strings.Contains(defn.Mnemonic, "d16"):
		s = strings.Replace(defn.Mnemonic, "d16", fmt.Sprintf("$%04X", word(operand)), 1)
	case strings.Contains(defn.Mnemonic, "a16"):
		s = strings.Replace(defn.Mnemonic, "a16", fmt.Sprintf("$%04X", word(operand)), 1)
	case strings.Contains(defn.Mnemonic, "d8"):
		s = strings.Replace(defn.Mnemonic, "d8", fmt.Sprintf("$%02X", operand[0]), 1)
	case strings.Contains(defn.Mnemonic, "a8"):
		s = strings.Replace(defn.Mnemonic, "a8", fmt.Sprintf("$FF%02X", operand[0]), 1)
	case strings.Contains(defn.Mnemonic, "SP+r8"):
		s = strings.Replace(defn.Mnemonic, "+r8", signed(int8(operand[0])), 1)
	case defn.Category == Jump:
		// relative jumps are resolved to the target address
		target := address + uint16(defn.Bytes) + uint16(int16(int8(operand[0])))
		s = strings.Replace(defn.Mnemonic, "r8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(defn.Mnemonic, "r8"):
		s = strings.Replace(defn.Mnemonic, "r8", signed(int8(operand[0])), 1)
	default:
		// STOP carries a second byte that is not an operand
		s = defn.Mnemonic
	}
	return s, defn
}

func word(b []uint8) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func signed(v int8) string {
	if v < 0 {
		return fmt.Sprintf("-%d", -int(v))
	}
	return fmt.Sprintf("+%d", v)
}
