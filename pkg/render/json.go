package render

import (
	"encoding/json"

	"github.com/matzehuels/gridtable/pkg/table"
)

type jsonFrame struct {
	Name   string     `json:"name"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Cols   []float64  `json:"cols"`
	Rows   []float64  `json:"rows"`
	Cells  []jsonCell `json:"cells"`
}

type jsonCell struct {
	Index    int        `json:"index"`
	Name     string     `json:"name"`
	Grob     string     `json:"grob"`
	Viewport string     `json:"viewport"`
	T        int        `json:"t"`
	L        int        `json:"l"`
	B        int        `json:"b"`
	R        int        `json:"r"`
	Z        float64    `json:"z"`
	Clip     bool       `json:"clip"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Table    *jsonFrame `json:"table,omitempty"`
}

// RenderJSON resolves t and encodes the frame tree as indented JSON. Cells
// are listed in drawing order.
func RenderJSON(t *table.Table, opts ...Option) ([]byte, error) {
	f, err := Resolve(t, opts...)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(toJSONFrame(f), "", "  ")
}

func toJSONFrame(f *Frame) *jsonFrame {
	out := &jsonFrame{
		Name:   f.Name,
		X:      f.X,
		Y:      f.Y,
		Width:  f.W,
		Height: f.H,
		Cols:   f.Cols,
		Rows:   f.Rows,
		Cells:  make([]jsonCell, 0, len(f.Cells)),
	}
	for _, c := range f.Cells {
		jc := jsonCell{
			Index:    c.Index,
			Name:     c.Placement.Name,
			Grob:     c.Grob.Identity(),
			Viewport: c.Viewport.Name,
			T:        c.Placement.T,
			L:        c.Placement.L,
			B:        c.Placement.B,
			R:        c.Placement.R,
			Z:        c.Placement.Z,
			Clip:     c.Viewport.Clip,
			X:        c.Viewport.X,
			Y:        c.Viewport.Y,
			Width:    c.Viewport.W,
			Height:   c.Viewport.H,
		}
		if c.Frame != nil {
			jc.Table = toJSONFrame(c.Frame)
		}
		out.Cells = append(out.Cells, jc)
	}
	return out
}
