package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/table"
)

// SVG renders tables as SVG documents to a writer. It implements
// [table.Renderer].
type SVG struct {
	w    io.Writer
	opts []Option
}

// NewSVG returns an SVG renderer writing to w.
func NewSVG(w io.Writer, opts ...Option) *SVG {
	return &SVG{w: w, opts: opts}
}

// Render implements [table.Renderer].
func (s *SVG) Render(ctx context.Context, t *table.Table) error {
	b, err := RenderSVG(ctx, t, s.opts...)
	if err != nil {
		return err
	}
	_, err = s.w.Write(b)
	return err
}

var _ table.Renderer = (*SVG)(nil)

// RenderSVG resolves t and draws it. Grobs that do not implement
// [grob.Drawer] occupy their cell but draw nothing.
func RenderSVG(ctx context.Context, t *table.Table, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	f, err := Resolve(t, opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		o.width, o.height, o.width, o.height)
	if o.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(o.background))
	}

	c := &svgCanvas{buf: &buf}
	if err := c.frame(ctx, f, o.guides); err != nil {
		return nil, err
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// svgCanvas implements grob.Canvas on top of a buffer.
type svgCanvas struct {
	buf   *bytes.Buffer
	clips int
}

func (c *svgCanvas) Rect(x, y, w, h float64, fill, stroke string) {
	fmt.Fprintf(c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
		x, y, w, h, escapeXML(fill), escapeXML(stroke))
}

func (c *svgCanvas) Text(x, y float64, label string, size float64, color string) {
	fmt.Fprintf(c.buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x, y, size, escapeXML(color), escapeXML(label))
}

func (c *svgCanvas) frame(ctx context.Context, f *Frame, guides bool) error {
	fmt.Fprintf(c.buf, `<g id="%s">`+"\n", escapeXML(f.Name))
	if guides {
		c.guides(f)
	}
	for _, cell := range f.Cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.cell(ctx, cell, guides); err != nil {
			return err
		}
	}
	c.buf.WriteString("</g>\n")
	return nil
}

func (c *svgCanvas) cell(ctx context.Context, cell *Cell, guides bool) error {
	vp := cell.Viewport
	if vp.Clip {
		c.clips++
		id := fmt.Sprintf("clip%d", c.clips)
		fmt.Fprintf(c.buf, `<clipPath id="%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			id, vp.X, vp.Y, vp.W, vp.H)
		fmt.Fprintf(c.buf, `<g class="cell" data-viewport="%s" clip-path="url(#%s)">`+"\n", escapeXML(vp.Name), id)
	} else {
		fmt.Fprintf(c.buf, `<g class="cell" data-viewport="%s">`+"\n", escapeXML(vp.Name))
	}

	switch {
	case cell.Frame != nil:
		if err := c.frame(ctx, cell.Frame, guides); err != nil {
			return err
		}
	default:
		if d, ok := cell.Grob.(grob.Drawer); ok {
			if err := d.Draw(c, vp); err != nil {
				return fmt.Errorf("draw %s: %w", cell.Grob.Identity(), err)
			}
		}
	}
	c.buf.WriteString("</g>\n")
	return nil
}

func (c *svgCanvas) guides(f *Frame) {
	const style = `stroke="#bbbbbb" stroke-width="0.5" stroke-dasharray="3,3"`
	x := f.X
	for _, w := range append([]float64{0}, f.Cols...) {
		x += w
		fmt.Fprintf(c.buf, `  <line class="guide" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", x, f.Y, x, f.Y+f.H, style)
	}
	y := f.Y
	for _, h := range append([]float64{0}, f.Rows...) {
		y += h
		fmt.Fprintf(c.buf, `  <line class="guide" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", f.X, y, f.X+f.W, y, style)
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
