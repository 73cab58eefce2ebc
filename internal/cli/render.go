package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/pipeline"
	"github.com/matzehuels/gridtable/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string
	formats string
	noCache bool
	pipeline.Options
}

// renderCommand renders a definition file through the artifact cache.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{Options: pipeline.Options{
		Width:      pipeline.DefaultWidth,
		Height:     pipeline.DefaultHeight,
		LineHeight: render.DefaultLineHeight,
	}}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a table to SVG, JSON, DOT, PDF or PNG",
		Long: `Render a table definition.

Formats:
  svg       the laid-out grobs
  json      the resolved viewport tree
  dot       Graphviz source of the layout diagram
  diagram   the layout diagram rendered to SVG
  pdf, png  converted from SVG with rsvg-convert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, diagram, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width in points")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height in points")
	cmd.Flags().Float64Var(&opts.LineHeight, "line-height", opts.LineHeight, "size of one \"lines\" unit in points")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background fill color")
	cmd.Flags().BoolVar(&opts.Guides, "guides", false, "draw grid lines")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// basePath derives the base output path. An empty output strips the
// extension from input; a known format extension is stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for one format. The diagram shares the svg
// extension, so it gets its own suffix.
func outputPath(base string, f render.Format) string {
	if f == render.FormatDiagram {
		return base + ".diagram.svg"
	}
	return base + "." + f.Ext()
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	t, err := c.loadTable(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	opts.Logger = logger
	res, err := runner.Execute(ctx, t, opts.Options)
	spinner.Stop()
	if err != nil {
		return err
	}

	single := len(opts.Formats) == 1 && opts.output != ""
	base := basePath(opts.output, input)
	var paths []string
	for _, name := range opts.Formats {
		f, _ := render.ParseFormat(name)
		path := outputPath(base, f)
		if single {
			path = opts.output
		}
		if err := writeOutput(path, res.Artifacts[string(f)]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", f, "path", path, "bytes", len(res.Artifacts[string(f)]))
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %d formats", len(opts.Formats)))
	printSuccess("Rendered %s", t.Name())
	printStats(res.Stats.Rows, res.Stats.Cols, res.Stats.Grobs, res.CacheInfo.AllHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
