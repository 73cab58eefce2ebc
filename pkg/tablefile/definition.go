package tablefile

import (
	"math"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// Grob kinds.
const (
	KindRect  = "rect"
	KindText  = "text"
	KindNull  = "null"
	KindTable = "table"
)

// Definition is the serialized form of a table.
type Definition struct {
	Name     string      `json:"name,omitempty" toml:"name,omitempty"`
	Respect  bool        `json:"respect,omitempty" toml:"respect,omitempty"`
	Widths   []unit.Unit `json:"widths" toml:"widths"`
	Heights  []unit.Unit `json:"heights" toml:"heights"`
	RowNames []string    `json:"rownames,omitempty" toml:"rownames,omitempty"`
	ColNames []string    `json:"colnames,omitempty" toml:"colnames,omitempty"`
	Grobs    []GrobDef   `json:"grobs,omitempty" toml:"grobs,omitempty"`
}

// GrobDef is one placed grob.
type GrobDef struct {
	Kind string `json:"kind" toml:"kind"`
	ID   string `json:"id,omitempty" toml:"id,omitempty"`

	T    int      `json:"t" toml:"t"`
	L    int      `json:"l" toml:"l"`
	B    int      `json:"b,omitempty" toml:"b,omitempty"`
	R    int      `json:"r,omitempty" toml:"r,omitempty"`
	Z    *float64 `json:"z,omitempty" toml:"z,omitempty"`
	Clip string   `json:"clip,omitempty" toml:"clip,omitempty"`
	Name string   `json:"name,omitempty" toml:"name,omitempty"`

	// rect
	Fill   string `json:"fill,omitempty" toml:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty" toml:"stroke,omitempty"`

	// text
	Label string  `json:"label,omitempty" toml:"label,omitempty"`
	Size  float64 `json:"size,omitempty" toml:"size,omitempty"`
	Color string  `json:"color,omitempty" toml:"color,omitempty"`

	Table *Definition `json:"table,omitempty" toml:"table,omitempty"`
}

// Build creates the table described by d.
func (d *Definition) Build() (*table.Table, error) {
	var opts []table.Option
	if d.Name != "" {
		opts = append(opts, table.WithName(d.Name))
	}
	if d.Respect {
		opts = append(opts, table.WithRespect(true))
	}
	if d.RowNames != nil {
		opts = append(opts, table.WithRowNames(d.RowNames...))
	}
	if d.ColNames != nil {
		opts = append(opts, table.WithColNames(d.ColNames...))
	}

	t, err := table.New(d.Widths, d.Heights, opts...)
	if err != nil {
		return nil, err
	}
	for i, gd := range d.Grobs {
		g, err := gd.grob()
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "grob %d", i+1)
		}
		p := table.Placement{T: gd.T, L: gd.L, B: gd.B, R: gd.R, Z: math.Inf(1), Clip: table.Clip(gd.Clip), Name: gd.Name}
		if gd.Z != nil {
			p.Z = *gd.Z
		}
		if t, err = t.AddGrob(g, p); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "grob %d", i+1)
		}
	}
	return t, nil
}

func (gd GrobDef) grob() (grob.Grob, error) {
	switch gd.Kind {
	case KindRect:
		r := grob.NewRect(gd.Fill)
		r.Stroke = gd.Stroke
		if gd.ID != "" {
			r.ID = gd.ID
		}
		return r, nil
	case KindText:
		t := grob.NewText(gd.Label)
		t.Size, t.Color = gd.Size, gd.Color
		if gd.ID != "" {
			t.ID = gd.ID
		}
		return t, nil
	case KindNull:
		n := grob.NewNull()
		if gd.ID != "" {
			n.ID = gd.ID
		}
		return n, nil
	case KindTable:
		if gd.Table == nil {
			return nil, errors.Validation("table grob without a table definition")
		}
		return gd.Table.Build()
	}
	return nil, errors.Validation("unknown grob kind %q (want rect, text, null or table)", gd.Kind)
}

// FromTable converts t into a definition. Every placement is written out in
// full, including its z value. Grobs other than the built-in kinds and
// nested tables cannot be serialized.
func FromTable(t *table.Table) (*Definition, error) {
	rownames, colnames := t.Dimnames()
	d := &Definition{
		Name:     t.Name(),
		Respect:  t.Respect(),
		Widths:   t.Widths(),
		Heights:  t.Heights(),
		RowNames: rownames,
		ColNames: colnames,
	}
	for i, c := range t.Cells() {
		z := c.Z
		gd := GrobDef{
			T: c.T, L: c.L, B: c.B, R: c.R,
			Z:    &z,
			Clip: string(c.Clip),
			Name: c.Name,
		}
		switch g := c.Grob.(type) {
		case *grob.Rect:
			gd.Kind, gd.ID, gd.Fill, gd.Stroke = KindRect, g.ID, g.Fill, g.Stroke
		case *grob.Text:
			gd.Kind, gd.ID, gd.Label, gd.Size, gd.Color = KindText, g.ID, g.Label, g.Size, g.Color
		case *grob.Null:
			gd.Kind, gd.ID = KindNull, g.ID
		case *table.Table:
			nested, err := FromTable(g)
			if err != nil {
				return nil, err
			}
			gd.Kind, gd.Table = KindTable, nested
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "grob %d: cannot serialize %s", i+1, c.Grob.Identity())
		}
		d.Grobs = append(d.Grobs, gd)
	}
	return d, nil
}
