package table

import (
	"reflect"
	"slices"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// DefaultName is the name given to tables constructed without [WithName].
const DefaultName = "layout"

// Table is a grid of sized rows and columns holding placed grobs.
//
// The zero value is an empty 0x0 table named "". Use [New] to construct
// tables; all methods treat the receiver as immutable.
type Table struct {
	widths   []unit.Unit
	heights  []unit.Unit
	respect  bool
	name     string
	rownames []string
	colnames []string
	cells    []Cell
}

// Option configures [New] and the other constructors.
type Option func(*config)

type config struct {
	respect  bool
	name     string
	rownames []string
	colnames []string
	clip     Clip
	z        [][]float64
}

// WithRespect sets whether null-unit rows and columns keep their aspect
// ratio when a renderer resolves sizes.
func WithRespect(respect bool) Option { return func(c *config) { c.respect = respect } }

// WithName sets the table name.
func WithName(name string) Option { return func(c *config) { c.name = name } }

// WithRowNames names the rows.
func WithRowNames(names ...string) Option {
	return func(c *config) { c.rownames = slices.Clone(names) }
}

// WithColNames names the columns.
func WithColNames(names ...string) Option {
	return func(c *config) { c.colnames = slices.Clone(names) }
}

// WithClip sets the clip mode of grobs placed by [NewMatrix], [NewCol] and
// [NewRow].
func WithClip(clip Clip) Option { return func(c *config) { c.clip = clip } }

// WithZ sets per-cell z values for [NewMatrix]. The shape must match the
// grob matrix.
func WithZ(z [][]float64) Option { return func(c *config) { c.z = z } }

func newConfig(opts []Option) config {
	c := config{name: DefaultName, clip: ClipOn}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// New creates an empty table with the given column widths and row heights.
//
// Row and column names, when given, must match the number of rows and
// columns and be unique; otherwise New returns an INVALID_INPUT error.
func New(widths, heights []unit.Unit, opts ...Option) (*Table, error) {
	c := newConfig(opts)
	if err := errors.ValidateTableName(c.name); err != nil {
		return nil, err
	}
	if err := errors.ValidateNames("row", c.rownames, len(heights)); err != nil {
		return nil, err
	}
	if err := errors.ValidateNames("column", c.colnames, len(widths)); err != nil {
		return nil, err
	}
	return &Table{
		widths:   slices.Clone(widths),
		heights:  slices.Clone(heights),
		respect:  c.respect,
		name:     c.name,
		rownames: c.rownames,
		colnames: c.colnames,
	}, nil
}

// Is reports whether v is a table.
func Is(v any) bool {
	_, ok := v.(*Table)
	return ok
}

// Dim returns the number of rows and columns.
func (t *Table) Dim() (rows, cols int) { return len(t.heights), len(t.widths) }

// Dimnames returns copies of the row and column names (nil when unnamed).
func (t *Table) Dimnames() (rownames, colnames []string) {
	return slices.Clone(t.rownames), slices.Clone(t.colnames)
}

// Len returns the number of placed grobs.
func (t *Table) Len() int { return len(t.cells) }

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Respect reports whether null units keep their aspect ratio.
func (t *Table) Respect() bool { return t.respect }

// Widths returns a copy of the column widths.
func (t *Table) Widths() []unit.Unit { return slices.Clone(t.widths) }

// Heights returns a copy of the row heights.
func (t *Table) Heights() []unit.Unit { return slices.Clone(t.heights) }

// Width returns the total width as a sum of the column widths.
func (t *Table) Width() unit.Unit { return unit.Sum(t.widths...) }

// Height returns the total height as a sum of the row heights.
func (t *Table) Height() unit.Unit { return unit.Sum(t.heights...) }

// Cells returns a copy of the placed cells in insertion order.
func (t *Table) Cells() []Cell { return slices.Clone(t.cells) }

// Layout returns the placements, index-aligned with [Table.Grobs].
func (t *Table) Layout() []Placement {
	out := make([]Placement, len(t.cells))
	for i, c := range t.cells {
		out[i] = c.Placement
	}
	return out
}

// Grobs returns the placed grobs, index-aligned with [Table.Layout].
func (t *Table) Grobs() []grob.Grob {
	out := make([]grob.Grob, len(t.cells))
	for i, c := range t.cells {
		out[i] = c.Grob
	}
	return out
}

// ZOrder returns the cells sorted by ascending z. Cells with equal z keep
// their insertion order. The table itself is not reordered.
func (t *Table) ZOrder() []Cell {
	out := make([]Cell, len(t.cells))
	for i, idx := range t.DrawOrder() {
		out[i] = t.cells[idx]
	}
	return out
}

// Identity implements [grob.Grob], so tables can be nested inside tables.
func (t *Table) Identity() string { return "gtable[" + t.name + "]" }

// Equal reports whether t and o have the same structure. Grobs are compared
// with == when their dynamic type is comparable (pointers, most structs) and
// with [reflect.DeepEqual] otherwise.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.respect == o.respect &&
		t.name == o.name &&
		unit.EqualSlices(t.widths, o.widths) &&
		unit.EqualSlices(t.heights, o.heights) &&
		slices.Equal(t.rownames, o.rownames) &&
		slices.Equal(t.colnames, o.colnames) &&
		slices.EqualFunc(t.cells, o.cells, func(a, b Cell) bool {
			return a.Placement == b.Placement && sameGrob(a.Grob, b.Grob)
		})
}

func sameGrob(a, b grob.Grob) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Validate checks the structural invariants: every placement lies inside
// the grid with T<=B and L<=R, every cell has a grob, and row and column
// names are well formed.
func (t *Table) Validate() error {
	if err := errors.ValidateNames("row", t.rownames, len(t.heights)); err != nil {
		return err
	}
	if err := errors.ValidateNames("column", t.colnames, len(t.widths)); err != nil {
		return err
	}
	nr, nc := t.Dim()
	for i, c := range t.cells {
		if c.Grob == nil {
			return errors.Validation("cell %d has no grob", i+1)
		}
		if err := checkExtent(c.Placement, nr, nc); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "cell %d", i+1)
		}
	}
	return nil
}

func checkExtent(p Placement, nrow, ncol int) error {
	if p.T > p.B {
		return errors.Validation("top row %d is below bottom row %d", p.T, p.B)
	}
	if p.L > p.R {
		return errors.Validation("left column %d is right of right column %d", p.L, p.R)
	}
	if p.T < 1 || p.B > nrow {
		return errors.Index("rows %d-%d outside 1-%d", p.T, p.B, nrow)
	}
	if p.L < 1 || p.R > ncol {
		return errors.Index("columns %d-%d outside 1-%d", p.L, p.R, ncol)
	}
	return nil
}

// clone returns a deep copy of t's slices.
func (t *Table) clone() *Table {
	return &Table{
		widths:   slices.Clone(t.widths),
		heights:  slices.Clone(t.heights),
		respect:  t.respect,
		name:     t.name,
		rownames: slices.Clone(t.rownames),
		colnames: slices.Clone(t.colnames),
		cells:    slices.Clone(t.cells),
	}
}
