package instructions

import "fmt"

var operands = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

var shifts = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// buildExtended creates the table reached through the 0xCB prefix. The
// extended set is regular: the top two bits select the operation group, the
// middle three the shift type or bit number and the low three the operand.
//
// All extended instructions are two bytes long. Register forms take 8 cycles,
// (HL) forms take 16 cycles except BIT which only reads the operand.
func buildExtended() [256]Definition {
	var t [256]Definition
	for i := range t {
		op := uint8(i)
		group := op >> 6
		y := (op >> 3) & 7
		z := op & 7

		defn := Definition{
			OpCode:   op,
			Prefixed: true,
			Bytes:    2,
			Cycles:   8,
		}
		if z == 6 {
			defn.Cycles = 16
		}

		switch group {
		case 0:
			defn.Mnemonic = fmt.Sprintf("%s %s", shifts[y], operands[z])
			defn.Category = Rotate
		case 1:
			defn.Mnemonic = fmt.Sprintf("BIT %d,%s", y, operands[z])
			defn.Category = Bit
			if z == 6 {
				defn.Cycles = 12
			}
		case 2:
			defn.Mnemonic = fmt.Sprintf("RES %d,%s", y, operands[z])
			defn.Category = Bit
		case 3:
			defn.Mnemonic = fmt.Sprintf("SET %d,%s", y, operands[z])
			defn.Category = Bit
		}

		t[i] = defn
	}
	return t
}
