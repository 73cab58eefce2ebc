// Package grob defines the drawable objects placed into tables.
//
// The table model treats a [Grob] as an opaque handle: all it ever asks for is
// a display identity for summaries. Renderers additionally look for the
// [Drawer] interface and hand it a [Canvas] and the [Viewport] the object was
// placed into. Objects that do not implement Drawer are skipped when drawing.
//
// [Rect], [Text] and [Null] are small built-in grobs used by table definition
// files and tests.
package grob

import (
	"fmt"
	"sync/atomic"
)

// Grob is an opaque drawable object.
type Grob interface {
	// Identity returns a short display string, e.g. "rect[GRID.rect.3]".
	Identity() string
}

// Drawer is implemented by grobs that can render themselves.
type Drawer interface {
	Draw(c Canvas, vp Viewport) error
}

// Viewport is the resolved region a grob is drawn into, in points.
type Viewport struct {
	Name string
	X, Y float64 // top-left corner
	W, H float64
	Clip bool
}

// Canvas is the drawing surface offered by a renderer.
type Canvas interface {
	Rect(x, y, w, h float64, fill, stroke string)
	Text(x, y float64, label string, size float64, color string)
}

var counter atomic.Int64

// nextID returns a process-wide unique id in the "GRID.<kind>.<n>" form.
func nextID(kind string) string {
	return fmt.Sprintf("GRID.%s.%d", kind, counter.Add(1))
}

// Rect fills its viewport.
type Rect struct {
	ID     string
	Fill   string
	Stroke string
}

// NewRect returns a rect with a generated id.
func NewRect(fill string) *Rect {
	return &Rect{ID: nextID("rect"), Fill: fill}
}

func (r *Rect) Identity() string { return "rect[" + r.ID + "]" }

func (r *Rect) Draw(c Canvas, vp Viewport) error {
	fill := r.Fill
	if fill == "" {
		fill = "none"
	}
	stroke := r.Stroke
	if stroke == "" {
		stroke = "none"
	}
	c.Rect(vp.X, vp.Y, vp.W, vp.H, fill, stroke)
	return nil
}

// Text draws a label centred in its viewport.
type Text struct {
	ID    string
	Label string
	Size  float64
	Color string
}

// NewText returns a text grob with a generated id.
func NewText(label string) *Text {
	return &Text{ID: nextID("text"), Label: label}
}

func (t *Text) Identity() string { return "text[" + t.ID + "]" }

func (t *Text) Draw(c Canvas, vp Viewport) error {
	size := t.Size
	if size <= 0 {
		size = 12
	}
	color := t.Color
	if color == "" {
		color = "black"
	}
	c.Text(vp.X+vp.W/2, vp.Y+vp.H/2, t.Label, size, color)
	return nil
}

// Null occupies a cell without drawing anything.
type Null struct {
	ID string
}

// NewNull returns a null grob with a generated id.
func NewNull() *Null { return &Null{ID: nextID("null")} }

func (n *Null) Identity() string { return "null[" + n.ID + "]" }

var (
	_ Drawer = (*Rect)(nil)
	_ Drawer = (*Text)(nil)
	_ Grob   = (*Null)(nil)
)
