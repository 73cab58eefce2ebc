package render

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/table"
)

// Format is an output format understood by [Export].
type Format string

// Output formats.
const (
	FormatSVG     Format = "svg"
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"     // Graphviz source of the layout diagram
	FormatDiagram Format = "diagram" // layout diagram rendered to SVG
	FormatPDF     Format = "pdf"
	FormatPNG     Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatJSON, FormatDOT, FormatDiagram, FormatPDF, FormatPNG}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
	}
	return f, nil
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatDiagram {
		return "svg"
	}
	return string(f)
}

// ContentType returns the MIME type of output in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG, FormatDiagram:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	}
	return "text/vnd.graphviz"
}

// Export renders t in the given format.
func Export(ctx context.Context, t *table.Table, f Format, opts ...Option) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(ctx, t, opts...)
	case FormatJSON:
		return RenderJSON(t, opts...)
	case FormatDOT:
		return []byte(ToDOT(t)), nil
	case FormatDiagram:
		return RenderDOTSVG(ctx, ToDOT(t))
	case FormatPDF, FormatPNG:
		svg, err := RenderSVG(ctx, t, opts...)
		if err != nil {
			return nil, err
		}
		if f == FormatPDF {
			return ToPDF(ctx, svg)
		}
		return ToPNG(ctx, svg, 2)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}
