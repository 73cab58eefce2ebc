package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// SetDimnames returns a copy of t with new row and column names. A nil
// slice removes the names of that axis.
//
// Both name sets are validated before anything is applied: duplicates or a
// length that does not match the grid return an INVALID_INPUT error and no
// table.
func (t *Table) SetDimnames(rownames, colnames []string) (*Table, error) {
	if err := errors.ValidateNames("row", rownames, len(t.heights)); err != nil {
		return nil, err
	}
	if err := errors.ValidateNames("column", colnames, len(t.widths)); err != nil {
		return nil, err
	}
	out := t.clone()
	out.rownames = slices.Clone(rownames)
	out.colnames = slices.Clone(colnames)
	return out, nil
}

// AddGrob places g into the grid.
//
// Extents follow these rules:
//   - negative positions count from the end (-1 is the last row or column)
//   - B and R default to T and L when zero
//   - Z of +Inf places the grob above everything already placed, -Inf below
//   - an empty Clip means [ClipOn], an empty Name means the table name
func (t *Table) AddGrob(g grob.Grob, p Placement) (*Table, error) {
	if g == nil {
		return nil, errors.Validation("grob must not be nil")
	}
	nr, nc := t.Dim()
	if p.B == 0 {
		p.B = p.T
	}
	if p.R == 0 {
		p.R = p.L
	}
	p.T, p.B = fromEnd(p.T, nr), fromEnd(p.B, nr)
	p.L, p.R = fromEnd(p.L, nc), fromEnd(p.R, nc)
	if err := checkExtent(p, nr, nc); err != nil {
		return nil, err
	}

	clip, err := ParseClip(string(p.Clip))
	if err != nil {
		return nil, err
	}
	p.Clip = clip
	if p.Name == "" {
		p.Name = t.name
	}

	switch {
	case math.IsNaN(p.Z):
		return nil, errors.Validation("z must be a number")
	case math.IsInf(p.Z, 1):
		_, hi := t.zRange()
		p.Z = hi + 1
	case math.IsInf(p.Z, -1):
		lo, _ := t.zRange()
		p.Z = lo - 1
	}

	out := t.clone()
	out.cells = append(out.cells, Cell{Placement: p, Grob: g})
	return out, nil
}

// zRange returns the smallest and largest z in use. An empty table reports
// (1, 0), so that the first grob added at +Inf gets z=1 and the first added
// at -Inf gets z=0.
func (t *Table) zRange() (lo, hi float64) {
	if len(t.cells) == 0 {
		return 1, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range t.cells {
		lo, hi = min(lo, c.Z), max(hi, c.Z)
	}
	return lo, hi
}

func fromEnd(pos, n int) int {
	if pos < 0 {
		return n + 1 + pos
	}
	return pos
}

// AddRows inserts rows with the given heights after row pos. pos=0 inserts
// above the first row and pos=-1 below the last.
//
// Placements below the insertion point move down; placements spanning it
// grow to include the new rows. If the table has row names, names for the
// new rows must be supplied; an unnamed table rejects names.
func (t *Table) AddRows(heights []unit.Unit, pos int, names ...string) (*Table, error) {
	return t.addRows("row", heights, pos, names)
}

// AddCols inserts columns with the given widths after column pos. It is the
// column counterpart of [Table.AddRows].
func (t *Table) AddCols(widths []unit.Unit, pos int, names ...string) (*Table, error) {
	out, err := t.Transpose().addRows("column", widths, pos, names)
	if err != nil {
		return nil, err
	}
	return out.Transpose(), nil
}

func (t *Table) addRows(axis string, sizes []unit.Unit, pos int, names []string) (*Table, error) {
	n := len(t.heights)
	pos = fromEnd(pos, n)
	if pos < 0 || pos > n {
		return nil, errors.Index("%s insertion point %d out of range 0-%d", axis, pos, n)
	}
	switch {
	case t.rownames == nil && len(names) > 0:
		return nil, errors.Validation("table has no %s names; cannot name inserted %ss", axis, axis)
	case t.rownames != nil && len(names) != len(sizes):
		return nil, errors.Validation("%d %s names given for %d inserted %ss", len(names), axis, len(sizes), axis)
	}
	if len(sizes) == 0 {
		return t.clone(), nil
	}

	out := t.clone()
	out.heights = slices.Insert(out.heights, pos, sizes...)
	if out.rownames != nil {
		out.rownames = slices.Insert(out.rownames, pos, names...)
		if err := errors.ValidateNames(axis, out.rownames, len(out.heights)); err != nil {
			return nil, err
		}
	}

	shift := len(sizes)
	for i := range out.cells {
		p := &out.cells[i].Placement
		if p.T > pos {
			p.T += shift
		}
		if p.B > pos {
			p.B += shift
		}
	}
	return out, nil
}

// AddRowSpace inserts a row of height h between every pair of adjacent
// rows. On a named axis the spacer rows are named ".space1", ".space2", ...
func (t *Table) AddRowSpace(h unit.Unit) (*Table, error) {
	return t.addSpace("row", h)
}

// AddColSpace inserts a column of width w between every pair of adjacent
// columns.
func (t *Table) AddColSpace(w unit.Unit) (*Table, error) {
	out, err := t.Transpose().addSpace("column", w)
	if err != nil {
		return nil, err
	}
	return out.Transpose(), nil
}

func (t *Table) addSpace(axis string, size unit.Unit) (*Table, error) {
	out := t.clone()
	n := len(t.heights)
	// Insert bottom-up so earlier insertion points stay valid.
	for i := n - 1; i >= 1; i-- {
		var names []string
		if out.rownames != nil {
			names = []string{fmt.Sprintf(".space%d", i)}
		}
		var err error
		if out, err = out.addRows(axis, []unit.Unit{size}, i, names); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddPadding surrounds the table with a row above and below and a column
// left and right of the given sizes. Named axes get ".pad.top",
// ".pad.bottom", ".pad.left" and ".pad.right".
func (t *Table) AddPadding(top, right, bottom, left unit.Unit) (*Table, error) {
	named := func(names []string, name string) []string {
		if names == nil {
			return nil
		}
		return []string{name}
	}

	out, err := t.AddRows([]unit.Unit{top}, 0, named(t.rownames, ".pad.top")...)
	if err != nil {
		return nil, err
	}
	if out, err = out.AddRows([]unit.Unit{bottom}, -1, named(t.rownames, ".pad.bottom")...); err != nil {
		return nil, err
	}
	if out, err = out.AddCols([]unit.Unit{left}, 0, named(t.colnames, ".pad.left")...); err != nil {
		return nil, err
	}
	return out.AddCols([]unit.Unit{right}, -1, named(t.colnames, ".pad.right")...)
}

// NormalizeZ replaces z values by their rank, 1..n. Ties keep insertion
// order, so the drawing order is unchanged.
func (t *Table) NormalizeZ() *Table {
	out := t.clone()
	for rank, i := range t.DrawOrder() {
		out.cells[i].Z = float64(rank + 1)
	}
	return out
}
