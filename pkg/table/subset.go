package table

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridtable/pkg/unit"
)

// Subset returns the table restricted to the selected rows and columns.
//
// A placement survives only when its top and bottom rows are both kept and
// its left and right columns are both kept; placements that reach into a
// dropped row or column are removed along with their grob, never clipped.
// Surviving placements are renumbered: each extent moves up (or left) by the
// number of dropped rows (or columns) before it.
//
// Unknown names, out-of-range positions and masks of the wrong length
// return an INDEX_OUT_OF_RANGE error and no table.
func (t *Table) Subset(rows, cols Selector) (*Table, error) {
	nr, nc := t.Dim()
	keptRows, err := rows.resolve("row", nr, t.rownames)
	if err != nil {
		return nil, err
	}
	keptCols, err := cols.resolve("column", nc, t.colnames)
	if err != nil {
		return nil, err
	}

	rowIndex := renumber(nr, keptRows)
	colIndex := renumber(nc, keptCols)

	out := &Table{
		heights:  pickUnits(t.heights, keptRows),
		widths:   pickUnits(t.widths, keptCols),
		rownames: pickNames(t.rownames, keptRows),
		colnames: pickNames(t.colnames, keptCols),
		respect:  t.respect,
		name:     t.name,
		cells:    make([]Cell, 0, len(t.cells)),
	}

	for _, c := range t.cells {
		top, bottom := rowIndex[c.T], rowIndex[c.B]
		left, right := colIndex[c.L], colIndex[c.R]
		if top == 0 || bottom == 0 || left == 0 || right == 0 {
			continue
		}
		c.T, c.B, c.L, c.R = top, bottom, left, right
		out.cells = append(out.cells, c)
	}
	return out, nil
}

// renumber maps every original position 1..n to its position after the
// subset, or 0 when dropped. The new position of a kept index is the index
// minus the number of dropped indices before it.
func renumber(n int, kept []int) []int {
	keep := make([]bool, n+1)
	for _, k := range kept {
		keep[k] = true
	}
	index := make([]int, n+1)
	dropped := 0
	for i := 1; i <= n; i++ {
		if !keep[i] {
			dropped++
			continue
		}
		index[i] = i - dropped
	}
	return index
}

func pickUnits(us []unit.Unit, kept []int) []unit.Unit {
	out := make([]unit.Unit, len(kept))
	for i, k := range kept {
		out[i] = us[k-1]
	}
	return out
}

func pickNames(names []string, kept []int) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(kept))
	for i, k := range kept {
		out[i] = names[k-1]
	}
	return out
}

func formatBools(bs []bool) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprint(b)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
