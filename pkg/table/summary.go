package table

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Summary describes the table: its dimensions, name and grob count, then one
// line per placement in drawing order (ascending z, ties in insertion order).
// Each line shows the placement's layout index, z, cells as
// "(top-bottom,left-right)", name and grob identity:
//
//	TableGrob (2 x 3) "layout": 2 grobs
//	  z  cells      name   grob
//	1 1  (1-1,1-3)  title  text[GRID.text.1]
//	2 2  (2-2,1-1)  panel  rect[GRID.rect.2]
func (t *Table) Summary() string {
	var b strings.Builder
	nr, nc := t.Dim()
	fmt.Fprintf(&b, "TableGrob (%d x %d) %q: %d grobs\n", nr, nc, t.name, t.Len())
	if len(t.cells) == 0 {
		return b.String()
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tz\tcells\tname\tgrob")
	for _, i := range t.DrawOrder() {
		c := t.cells[i]
		fmt.Fprintf(w, "%d\t%s\t(%d-%d,%d-%d)\t%s\t%s\n",
			i+1, FormatZ(c.Z), c.T, c.B, c.L, c.R, c.Name, identity(c))
	}
	w.Flush()
	return b.String()
}

// String implements fmt.Stringer using [Table.Summary].
func (t *Table) String() string { return t.Summary() }

// DrawOrder returns the 0-based layout indices in drawing order, the order
// used by [Table.ZOrder].
func (t *Table) DrawOrder() []int {
	order := make([]int, len(t.cells))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(t.cells[a].Z, t.cells[b].Z)
	})
	return order
}

// FormatZ formats a z value without trailing zeros.
func FormatZ(z float64) string { return strconv.FormatFloat(z, 'g', -1, 64) }

func identity(c Cell) string {
	if c.Grob == nil {
		return "<nil>"
	}
	return c.Grob.Identity()
}
