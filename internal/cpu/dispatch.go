package cpu

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/instructions"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu/registers"
)

// operation executes an instruction whose opcode bytes have already been
// fetched. It returns false if a conditional instruction was not taken.
type operation func(c *CPU, op *opcode) bool

type condition uint8

const (
	always condition = iota
	condNZ
	condZ
	condNC
	condC
)

// opcode binds a definition to the operation that implements it, together
// with the operand selectors decoded from the opcode byte.
type opcode struct {
	defn instructions.Definition
	exec operation

	// destination (or sole) and source 8-bit operands
	r   registers.Reg8
	src registers.Reg8

	rr    registers.Pair
	cc    condition
	alu   aluOp
	shift shiftOp

	// bit number for BIT/RES/SET, vector for RST and the HL step for the
	// (HL+) and (HL-) loads
	n uint8
}

func (op *opcode) execute(c *CPU) int {
	return op.defn.Cost(op.exec(c, op))
}

var baseOps [256]opcode
var extendedOps [256]opcode

func init() {
	base := instructions.Base()
	extended := instructions.Extended()
	for i := range 256 {
		baseOps[i] = bindBase(base[i])
		extendedOps[i] = bindExtended(extended[i])
	}
	if err := checkBindings(); err != nil {
		panic(err)
	}
}

// checkBindings makes sure every defined slot has an operation and no
// undefined slot has one.
func checkBindings() error {
	check := func(op opcode) error {
		switch {
		case op.defn.Undefined || op.defn.Prefix:
			if op.exec != nil {
				return fmt.Errorf("cpu: operation bound to %v", op.defn)
			}
		case op.exec == nil:
			return fmt.Errorf("cpu: no operation for %v", op.defn)
		}
		return nil
	}

	for _, op := range baseOps {
		if err := check(op); err != nil {
			return err
		}
	}
	for _, op := range extendedOps {
		if err := check(op); err != nil {
			return err
		}
	}
	return nil
}

// register pair tables, indexed by the p field of the opcode
var (
	rp  = [4]registers.Pair{registers.BC, registers.DE, registers.HL, registers.SP}
	rp2 = [4]registers.Pair{registers.BC, registers.DE, registers.HL, registers.AF}
)

// bindBase decodes the x, y, z fields of a base opcode.
//
//	x = bits 7-6, y = bits 5-3, z = bits 2-0, p = y>>1, q = y&1
func bindBase(defn instructions.Definition) opcode {
	op := opcode{defn: defn}
	if defn.Undefined || defn.Prefix {
		return op
	}

	opc := defn.OpCode
	x := opc >> 6
	y := (opc >> 3) & 0x07
	z := opc & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				op.exec = opNOP
			case 1:
				op.exec = opStoreSP
			case 2:
				op.exec = opSTOP
			case 3:
				op.exec = opJR
			default:
				op.exec = opJR
				op.cc = condition(y-4) + condNZ
			}
		case 1:
			op.rr = rp[p]
			if q == 0 {
				op.exec = opLD16
			} else {
				op.exec = opADDHL
			}
		case 2:
			switch p {
			case 0, 1:
				op.rr = rp[p]
				if q == 0 {
					op.exec = opStoreA
				} else {
					op.exec = opLoadA
				}
			case 2, 3:
				op.n = 0x01
				if p == 3 {
					op.n = 0xff
				}
				if q == 0 {
					op.exec = opStoreAHL
				} else {
					op.exec = opLoadAHL
				}
			}
		case 3:
			op.rr = rp[p]
			if q == 0 {
				op.exec = opINC16
			} else {
				op.exec = opDEC16
			}
		case 4:
			op.r = registers.Reg8(y)
			op.exec = opINC8
		case 5:
			op.r = registers.Reg8(y)
			op.exec = opDEC8
		case 6:
			op.r = registers.Reg8(y)
			op.exec = opLD8Imm
		case 7:
			switch y {
			case 0, 1, 2, 3:
				op.shift = shiftOp(y)
				op.exec = opRotateA
			case 4:
				op.exec = opDAA
			case 5:
				op.exec = opCPL
			case 6:
				op.exec = opSCF
			case 7:
				op.exec = opCCF
			}
		}

	case 1:
		if y == 6 && z == 6 {
			op.exec = opHALT
		} else {
			op.r = registers.Reg8(y)
			op.src = registers.Reg8(z)
			op.exec = opLD8
		}

	case 2:
		op.alu = aluOp(y)
		op.src = registers.Reg8(z)
		op.exec = opALU

	case 3:
		switch z {
		case 0:
			switch y {
			case 0, 1, 2, 3:
				op.cc = condition(y) + condNZ
				op.exec = opRET
			case 4:
				op.exec = opStoreHighA
			case 5:
				op.exec = opADDSP
			case 6:
				op.exec = opLoadHighA
			case 7:
				op.exec = opLDHLSP
			}
		case 1:
			if q == 0 {
				op.rr = rp2[p]
				op.exec = opPOP
			} else {
				switch p {
				case 0:
					op.exec = opRET
				case 1:
					op.exec = opRETI
				case 2:
					op.exec = opJPHL
				case 3:
					op.exec = opLDSPHL
				}
			}
		case 2:
			switch y {
			case 0, 1, 2, 3:
				op.cc = condition(y) + condNZ
				op.exec = opJP
			case 4:
				op.exec = opStoreCA
			case 5:
				op.exec = opStoreA16
			case 6:
				op.exec = opLoadCA
			case 7:
				op.exec = opLoadA16
			}
		case 3:
			switch y {
			case 0:
				op.exec = opJP
			case 6:
				op.exec = opDI
			case 7:
				op.exec = opEI
			}
		case 4:
			if y < 4 {
				op.cc = condition(y) + condNZ
				op.exec = opCALL
			}
		case 5:
			if q == 0 {
				op.rr = rp2[p]
				op.exec = opPUSH
			} else if p == 0 {
				op.exec = opCALL
			}
		case 6:
			op.alu = aluOp(y)
			op.exec = opALUImm
		case 7:
			op.n = y * 8
			op.exec = opRST
		}
	}

	return op
}

// bindExtended decodes an opcode of the extended table. Every slot of the
// extended table is defined.
func bindExtended(defn instructions.Definition) opcode {
	op := opcode{defn: defn}
	if defn.Undefined {
		return op
	}

	opc := defn.OpCode
	y := (opc >> 3) & 0x07
	op.r = registers.Reg8(opc & 0x07)

	switch opc >> 6 {
	case 0:
		op.shift = shiftOp(y)
		op.exec = opShift
	case 1:
		op.n = y
		op.exec = opBIT
	case 2:
		op.n = y
		op.exec = opRES
	case 3:
		op.n = y
		op.exec = opSET
	}

	return op
}

// test evaluates a branch condition against the current flags.
func (c *CPU) test(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.Flag(registers.Zero)
	case condZ:
		return c.Flag(registers.Zero)
	case condNC:
		return !c.Flag(registers.Carry)
	case condC:
		return c.Flag(registers.Carry)
	}
	return true
}
