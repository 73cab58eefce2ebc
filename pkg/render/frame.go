package render

import (
	"math"

	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// Frame is a table resolved into points.
type Frame struct {
	Name string
	// Region occupied by the grid. It is centred in the viewport the table
	// was given and may be smaller than it.
	X, Y, W, H float64
	Cols       []float64
	Rows       []float64
	// Cells in drawing order.
	Cells []*Cell
}

// Cell is one resolved placement.
type Cell struct {
	Index     int // 1-based layout index
	Placement table.Placement
	Grob      grob.Grob
	Viewport  grob.Viewport
	// Frame is set when Grob is a nested table.
	Frame *Frame
}

// Resolve lays t out in a viewport of the configured size.
func Resolve(t *table.Table, opts ...Option) (*Frame, error) {
	o := newOptions(opts)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	vp := grob.Viewport{Name: t.Name(), W: o.width, H: o.height}
	return resolve(t, vp, o)
}

func resolve(t *table.Table, vp grob.Viewport, o options) (*Frame, error) {
	colScale := nullScale(t.Widths(), vp.W, o.lineHeight)
	rowScale := nullScale(t.Heights(), vp.H, o.lineHeight)
	if t.Respect() {
		s := min(colScale, rowScale)
		if math.IsInf(s, 1) {
			s = 0
		}
		colScale, rowScale = s, s
	}

	f := &Frame{
		Name: t.Name(),
		Cols: sizes(t.Widths(), vp.W, o.lineHeight, finite(colScale)),
		Rows: sizes(t.Heights(), vp.H, o.lineHeight, finite(rowScale)),
	}
	f.W, f.H = sum(f.Cols), sum(f.Rows)
	f.X = vp.X + (vp.W-f.W)/2
	f.Y = vp.Y + (vp.H-f.H)/2

	cells := t.Cells()
	for _, i := range t.DrawOrder() {
		c := cells[i]
		p := c.Placement
		cv := grob.Viewport{
			Name: p.ViewportName(),
			X:    f.X + sum(f.Cols[:p.L-1]),
			Y:    f.Y + sum(f.Rows[:p.T-1]),
			W:    sum(f.Cols[p.L-1 : p.R]),
			H:    sum(f.Rows[p.T-1 : p.B]),
			Clip: clips(p.Clip, vp.Clip),
		}
		rc := &Cell{Index: i + 1, Placement: p, Grob: c.Grob, Viewport: cv}
		if nested, ok := c.Grob.(*table.Table); ok {
			child, err := resolve(nested, cv, o)
			if err != nil {
				return nil, err
			}
			rc.Frame = child
		}
		f.Cells = append(f.Cells, rc)
	}
	return f, nil
}

// nullScale returns the size of one null unit along an axis, or +Inf when
// the axis has no null units.
func nullScale(us []unit.Unit, avail, line float64) float64 {
	var fixed, nulls float64
	for _, u := range us {
		fixed += u.Resolve(line, avail, 0)
		nulls += u.NullAmount()
	}
	if nulls <= 0 {
		return math.Inf(1)
	}
	return max(0, avail-fixed) / nulls
}

func sizes(us []unit.Unit, avail, line, scale float64) []float64 {
	out := make([]float64, len(us))
	for i, u := range us {
		out[i] = max(0, u.Resolve(line, avail, scale))
	}
	return out
}

func finite(s float64) float64 {
	if math.IsInf(s, 0) {
		return 0
	}
	return s
}

func clips(c table.Clip, parent bool) bool {
	switch c {
	case table.ClipOff:
		return false
	case table.ClipInherit:
		return parent
	}
	return true
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
