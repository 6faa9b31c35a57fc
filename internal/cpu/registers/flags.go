package registers

import "strings"

// Flag identifies one of the four status flags held in the upper nibble of F.
type Flag int

const (
	Zero Flag = iota
	Subtract
	HalfCarry
	Carry
)

func (f Flag) String() string {
	switch f {
	case Zero:
		return "Z"
	case Subtract:
		return "N"
	case HalfCarry:
		return "H"
	case Carry:
		return "C"
	}
	return "?"
}

// bit positions of the flags in F. nothing outside this file should know them.
const (
	maskZ uint8 = 1 << 7
	maskN uint8 = 1 << 6
	maskH uint8 = 1 << 5
	maskC uint8 = 1 << 4
)

func (f Flag) mask() uint8 {
	switch f {
	case Zero:
		return maskZ
	case Subtract:
		return maskN
	case HalfCarry:
		return maskH
	case Carry:
		return maskC
	}
	return 0
}

// Flags is the decoded form of the F register.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Value encodes the flags into the F register layout. The low nibble is
// always zero.
func (f Flags) Value() uint8 {
	var v uint8
	if f.Zero {
		v |= maskZ
	}
	if f.Subtract {
		v |= maskN
	}
	if f.HalfCarry {
		v |= maskH
	}
	if f.Carry {
		v |= maskC
	}
	return v
}

// FromValue decodes an F register value. The low nibble is ignored.
func FromValue(v uint8) Flags {
	return Flags{
		Zero:      v&maskZ == maskZ,
		Subtract:  v&maskN == maskN,
		HalfCarry: v&maskH == maskH,
		Carry:     v&maskC == maskC,
	}
}

// Get returns the state of a single flag.
func (f Flags) Get(flag Flag) bool {
	return f.Value()&flag.mask() != 0
}

// With returns a copy of the flags with a single flag changed.
func (f Flags) With(flag Flag, on bool) Flags {
	v := f.Value()
	if on {
		v |= flag.mask()
	} else {
		v &^= flag.mask()
	}
	return FromValue(v)
}

// String prints set flags in upper case and clear flags in lower case, in the
// order they appear in F.
func (f Flags) String() string {
	s := strings.Builder{}
	flag := func(on bool, set, clear rune) {
		if on {
			s.WriteRune(set)
		} else {
			s.WriteRune(clear)
		}
	}
	flag(f.Zero, 'Z', 'z')
	flag(f.Subtract, 'N', 'n')
	flag(f.HalfCarry, 'H', 'h')
	flag(f.Carry, 'C', 'c')
	return s.String()
}
