package unit

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the measurement system of a [Unit].
type Kind string

// Unit kinds. Sum, Max and Min are compound kinds whose value lives in Args.
const (
	KindNull   Kind = "null"
	KindCm     Kind = "cm"
	KindMm     Kind = "mm"
	KindInches Kind = "in"
	KindPoints Kind = "pt"
	KindLines  Kind = "lines"
	KindNPC    Kind = "npc"

	KindSum Kind = "sum"
	KindMax Kind = "max"
	KindMin Kind = "min"
)

// Conversion factors to points.
const (
	PointsPerInch = 72.27
	CmPerInch     = 2.54
	MmPerInch     = 25.4
)

// Unit is a single length value. The zero value is 0null.
type Unit struct {
	Value float64
	Kind  Kind
	Args  []Unit // operands of compound kinds
}

// New returns a simple unit of the given kind.
func New(v float64, k Kind) Unit { return Unit{Value: v, Kind: k} }

// Null returns a flexible unit with relative weight v.
func Null(v float64) Unit { return Unit{Value: v, Kind: KindNull} }

// Cm returns an absolute unit in centimetres.
func Cm(v float64) Unit { return Unit{Value: v, Kind: KindCm} }

// Mm returns an absolute unit in millimetres.
func Mm(v float64) Unit { return Unit{Value: v, Kind: KindMm} }

// Inches returns an absolute unit in inches.
func Inches(v float64) Unit { return Unit{Value: v, Kind: KindInches} }

// Points returns an absolute unit in points.
func Points(v float64) Unit { return Unit{Value: v, Kind: KindPoints} }

// Lines returns a unit in multiples of the current line height.
func Lines(v float64) Unit { return Unit{Value: v, Kind: KindLines} }

// NPC returns a unit in normalised parent coordinates (0..1).
func NPC(v float64) Unit { return Unit{Value: v, Kind: KindNPC} }

// Sum combines units additively. A single operand is returned unchanged.
func Sum(us ...Unit) Unit { return compound(KindSum, us) }

// Max combines units by taking the largest.
func Max(us ...Unit) Unit { return compound(KindMax, us) }

// Min combines units by taking the smallest.
func Min(us ...Unit) Unit { return compound(KindMin, us) }

func compound(k Kind, us []Unit) Unit {
	switch len(us) {
	case 0:
		return Unit{Kind: KindNull}
	case 1:
		return us[0]
	}
	return Unit{Value: 1, Kind: k, Args: slices.Clone(us)}
}

// Repeat returns n copies of u.
func Repeat(u Unit, n int) []Unit {
	out := make([]Unit, n)
	for i := range out {
		out[i] = u
	}
	return out
}

// IsCompound reports whether u is a sum, max or min.
func (u Unit) IsCompound() bool {
	return u.Kind == KindSum || u.Kind == KindMax || u.Kind == KindMin
}

// IsNull reports whether u is a plain flexible unit.
func (u Unit) IsNull() bool { return u.kind() == KindNull }

func (u Unit) kind() Kind {
	if u.Kind == "" {
		return KindNull
	}
	return u.Kind
}

// Equal reports whether u and o describe the same length expression.
func (u Unit) Equal(o Unit) bool {
	if u.kind() != o.kind() || u.Value != o.Value || len(u.Args) != len(o.Args) {
		return false
	}
	for i := range u.Args {
		if !u.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// EqualSlices reports whether a and b hold pairwise equal units.
func EqualSlices(a, b []Unit) bool {
	return slices.EqualFunc(a, b, Unit.Equal)
}

// String formats u in the form accepted by [Parse].
func (u Unit) String() string {
	if u.IsCompound() {
		parts := make([]string, len(u.Args))
		for i, a := range u.Args {
			parts[i] = a.String()
		}
		return string(u.Kind) + "(" + strings.Join(parts, ",") + ")"
	}
	return strconv.FormatFloat(u.Value, 'g', -1, 64) + string(u.kind())
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Absolute converts u to points. ok is false when u (or any operand of a
// compound unit) is not an absolute kind.
func (u Unit) Absolute() (pt float64, ok bool) {
	switch u.kind() {
	case KindPoints:
		return u.Value, true
	case KindInches:
		return u.Value * PointsPerInch, true
	case KindCm:
		return u.Value / CmPerInch * PointsPerInch, true
	case KindMm:
		return u.Value / MmPerInch * PointsPerInch, true
	case KindSum, KindMax, KindMin:
		vals := make([]float64, len(u.Args))
		for i, a := range u.Args {
			v, ok := a.Absolute()
			if !ok {
				return 0, false
			}
			vals[i] = v
		}
		return reduce(u.Kind, vals), true
	}
	return 0, false
}

// Resolve converts u to points given the size of one line, the parent
// extent (for npc) and the size of one null unit.
func (u Unit) Resolve(linePt, parentPt, nullPt float64) float64 {
	switch u.kind() {
	case KindNull:
		return u.Value * nullPt
	case KindLines:
		return u.Value * linePt
	case KindNPC:
		return u.Value * parentPt
	case KindSum, KindMax, KindMin:
		vals := make([]float64, len(u.Args))
		for i, a := range u.Args {
			vals[i] = a.Resolve(linePt, parentPt, nullPt)
		}
		return reduce(u.Kind, vals)
	}
	v, _ := u.Absolute()
	return v
}

// NullAmount reports how many null units u contributes when every other
// kind resolves to zero. Renderers use it to distribute leftover space.
func (u Unit) NullAmount() float64 {
	switch u.kind() {
	case KindNull:
		return u.Value
	case KindSum, KindMax, KindMin:
		vals := make([]float64, len(u.Args))
		for i, a := range u.Args {
			vals[i] = a.NullAmount()
		}
		return reduce(u.Kind, vals)
	}
	return 0
}

func reduce(k Kind, vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	switch k {
	case KindMax:
		m := math.Inf(-1)
		for _, v := range vals {
			m = max(m, v)
		}
		return m
	case KindMin:
		m := math.Inf(1)
		for _, v := range vals {
			m = min(m, v)
		}
		return m
	}
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

// GoString makes %#v output readable in test failures.
func (u Unit) GoString() string { return fmt.Sprintf("unit.Unit(%s)", u) }
