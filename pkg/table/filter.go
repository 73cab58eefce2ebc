package table

import (
	"regexp"
	"slices"
)

// Filter keeps the grobs whose placement name matches pattern (or does not
// match, when invert is set). With trim, rows and columns left empty at the
// edges are removed afterwards.
func (t *Table) Filter(pattern *regexp.Regexp, invert, trim bool) *Table {
	out := t.clone()
	out.cells = slices.DeleteFunc(out.cells, func(c Cell) bool {
		return pattern.MatchString(c.Name) == invert
	})
	if trim {
		return out.Trim()
	}
	return out
}

// Trim removes leading and trailing rows and columns that no placement
// touches. A table without placements trims to 0x0.
func (t *Table) Trim() *Table {
	if len(t.cells) == 0 {
		out, _ := t.Subset(Positions(), Positions())
		return out
	}

	top, bottom := t.cells[0].T, t.cells[0].B
	left, right := t.cells[0].L, t.cells[0].R
	for _, c := range t.cells[1:] {
		top, bottom = min(top, c.T), max(bottom, c.B)
		left, right = min(left, c.L), max(right, c.R)
	}

	// The ranges are within bounds, so Subset cannot fail.
	out, _ := t.Subset(Positions(seq(top, bottom)...), Positions(seq(left, right)...))
	return out
}
