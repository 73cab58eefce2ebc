package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gridtable/pkg/render"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ", []string{"svg", "dot"}},
		{"trailing comma", "json,", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "figs/layout.toml", "figs/layout"},
		{"out/plot.svg", "layout.toml", "out/plot"},
		{"out/plot", "layout.toml", "out/plot"},
		{"out/plot.v2", "layout.toml", "out/plot.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		format render.Format
		want   string
	}{
		{render.FormatSVG, "plot.svg"},
		{render.FormatDiagram, "plot.diagram.svg"},
		{render.FormatDOT, "plot.dot"},
		{render.FormatJSON, "plot.json"},
	}
	for _, tt := range tests {
		if got := outputPath("plot", tt.format); got != tt.want {
			t.Errorf("outputPath(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	c, _ := testCLI(t)
	in := writeLayout(t)
	dir := filepath.Dir(in)

	if err := execute(t, c, "render", in, "-f", "svg,json,dot", "--no-cache", "--width", "300"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"figure.svg", "figure.json", "figure.dot"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	svg, _ := os.ReadFile(filepath.Join(dir, "figure.svg"))
	if !strings.Contains(string(svg), `viewBox="0 0 300.0`) {
		t.Errorf("width flag not applied: %.120s", svg)
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	c, _ := testCLI(t)
	in := writeLayout(t)
	out := filepath.Join(t.TempDir(), "nested", "layout.out")

	if err := execute(t, c, "render", in, "-f", "json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	c, _ := testCLI(t)
	if err := execute(t, c, "render", writeLayout(t), "-f", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
}
