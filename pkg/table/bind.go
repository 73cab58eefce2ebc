package table

import (
	"slices"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// Size decides how [RBind] and [CBind] reconcile the shared dimension.
type Size string

// Size policies.
const (
	SizeMax   Size = "max"
	SizeMin   Size = "min"
	SizeFirst Size = "first"
	SizeLast  Size = "last"
)

// ParseSize converts a string to a Size. The empty string means [SizeMax].
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case "", SizeMax:
		return SizeMax, nil
	case SizeMin, SizeFirst, SizeLast:
		return Size(s), nil
	}
	return "", errors.Validation("invalid size policy %q (want max, min, first or last)", s)
}

// RBind stacks y below x. Both tables must have the same number of
// columns; column widths are combined according to size.
//
// The result keeps x's name and is respected if either input is. y's grobs
// are lifted above x's in z order. Row names are kept only when both tables
// have them, and must stay unique.
func RBind(x, y *Table, size Size) (*Table, error) {
	return bind("column", x, y, size)
}

// CBind places y to the right of x. Both tables must have the same number
// of rows; row heights are combined according to size.
func CBind(x, y *Table, size Size) (*Table, error) {
	out, err := bind("row", x.Transpose(), y.Transpose(), size)
	if err != nil {
		return nil, err
	}
	return out.Transpose(), nil
}

// bind stacks the rows of y below x. shared names the axis whose counts
// must agree.
func bind(shared string, x, y *Table, size Size) (*Table, error) {
	if len(x.widths) != len(y.widths) {
		return nil, errors.Validation("%s counts differ: %d and %d", shared, len(x.widths), len(y.widths))
	}

	widths, err := combineSizes(x.widths, y.widths, size)
	if err != nil {
		return nil, err
	}

	out := &Table{
		widths:   widths,
		heights:  slices.Concat(x.heights, y.heights),
		respect:  x.respect || y.respect,
		name:     x.name,
		colnames: slices.Clone(x.colnames),
		cells:    make([]Cell, 0, len(x.cells)+len(y.cells)),
	}
	if out.colnames == nil {
		out.colnames = slices.Clone(y.colnames)
	}
	if x.rownames != nil && y.rownames != nil {
		out.rownames = slices.Concat(x.rownames, y.rownames)
		if err := errors.ValidateNames(otherAxis(shared), out.rownames, len(out.heights)); err != nil {
			return nil, err
		}
	}

	out.cells = append(out.cells, x.cells...)

	var lift float64
	if len(x.cells) > 0 && len(y.cells) > 0 {
		_, xhi := x.zRange()
		ylo, _ := y.zRange()
		if ylo <= xhi {
			lift = xhi - ylo + 1
		}
	}
	shift := len(x.heights)
	for _, c := range y.cells {
		c.T += shift
		c.B += shift
		c.Z += lift
		out.cells = append(out.cells, c)
	}
	return out, nil
}

func combineSizes(a, b []unit.Unit, size Size) ([]unit.Unit, error) {
	switch size {
	case SizeFirst:
		return slices.Clone(a), nil
	case SizeLast:
		return slices.Clone(b), nil
	case SizeMax, SizeMin, "":
		out := make([]unit.Unit, len(a))
		for i := range a {
			switch {
			case a[i].Equal(b[i]):
				out[i] = a[i]
			case size == SizeMin:
				out[i] = unit.Min(a[i], b[i])
			default:
				out[i] = unit.Max(a[i], b[i])
			}
		}
		return out, nil
	}
	return nil, errors.Validation("invalid size policy %q", size)
}

func otherAxis(axis string) string {
	if axis == "row" {
		return "column"
	}
	return "row"
}
