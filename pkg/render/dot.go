package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridtable/pkg/table"
)

// ToDOT describes the structure of t as a Graphviz graph: one node showing
// the grid with its row and column sizes, and one node per placement in
// drawing order. Nested tables become nodes of their own, linked from the
// placement that holds them.
//
// The output can be rendered with [RenderDOTSVG].
func ToDOT(t *table.Table) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf}
	w.table(t)

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf    *bytes.Buffer
	tables int
}

func (w *dotWriter) table(t *table.Table) string {
	id := fmt.Sprintf("t%d", w.tables)
	w.tables++
	fmt.Fprintf(w.buf, "  %q [shape=plain, label=<%s>];\n", id, gridLabel(t))

	cells := t.Cells()
	for _, i := range t.DrawOrder() {
		c := cells[i]
		cid := fmt.Sprintf("%s.c%d", id, i+1)
		label := fmt.Sprintf("%s\n(%d-%d,%d-%d) z=%s\n%s",
			c.Name, c.T, c.B, c.L, c.R, table.FormatZ(c.Z), c.Grob.Identity())
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if c.Clip == table.ClipOff {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(w.buf, "  %q [%s];\n", cid, strings.Join(attrs, ", "))
		fmt.Fprintf(w.buf, "  %q -> %q;\n", id, cid)

		if nested, ok := c.Grob.(*table.Table); ok {
			nid := w.table(nested)
			fmt.Fprintf(w.buf, "  %q -> %q [style=dashed];\n", cid, nid)
		}
	}
	return id
}

// gridLabel renders the grid as a Graphviz HTML-like label. Each inner cell
// shows how many placements cover it.
func gridLabel(t *table.Table) string {
	nr, nc := t.Dim()
	rownames, colnames := t.Dimnames()
	widths, heights := t.Widths(), t.Heights()

	cover := make([][]int, nr)
	for r := range cover {
		cover[r] = make([]int, nc)
	}
	for _, p := range t.Layout() {
		for r := p.T - 1; r < p.B; r++ {
			for c := p.L - 1; c < p.R; c++ {
				cover[r][c]++
			}
		}
	}

	var b strings.Builder
	b.WriteString(`<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">`)
	fmt.Fprintf(&b, `<TR><TD COLSPAN="%d"><B>%s</B> (%d x %d)</TD></TR>`, nc+1, escapeXML(t.Name()), nr, nc)

	b.WriteString(`<TR><TD></TD>`)
	for c := range nc {
		fmt.Fprintf(&b, `<TD>%s<BR/>%s</TD>`, axisLabel(colnames, c), escapeXML(widths[c].String()))
	}
	b.WriteString(`</TR>`)

	for r := range nr {
		fmt.Fprintf(&b, `<TR><TD>%s<BR/>%s</TD>`, axisLabel(rownames, r), escapeXML(heights[r].String()))
		for c := range nc {
			if cover[r][c] == 0 {
				b.WriteString(`<TD BGCOLOR="#f4f4f4"></TD>`)
				continue
			}
			fmt.Fprintf(&b, `<TD>%d</TD>`, cover[r][c])
		}
		b.WriteString(`</TR>`)
	}
	b.WriteString(`</TABLE>`)
	return b.String()
}

func axisLabel(names []string, i int) string {
	if names == nil {
		return strconv.Itoa(i + 1)
	}
	return escapeXML(names[i])
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one whose viewBox starts
// at the origin and whose width and height are unitless.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
