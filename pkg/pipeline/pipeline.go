// Package pipeline renders tables with artifact caching.
//
// Both the CLI and the HTTP service go through a [Runner] so that the same
// table rendered with the same options is produced once and then served
// from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, t, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	    Width:   600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Cache keys combine a hash of the table's JSON definition with the render
// options ([cache.ArtifactKeyOpts]). Tables holding grobs that cannot be
// serialized are rendered without caching.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtable/pkg/cache"
	"github.com/matzehuels/gridtable/pkg/render"
)

const (
	// DefaultWidth is the default frame width in points.
	DefaultWidth = render.DefaultWidth

	// DefaultHeight is the default frame height in points.
	DefaultHeight = render.DefaultHeight

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	LineHeight float64  `json:"line_height,omitempty"`
	Background string   `json:"background,omitempty"`
	Guides     bool     `json:"guides,omitempty"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Scope prefixes the artifact keys (see [cache.TableScope]) so that
	// [Runner.Evict] can drop them together.
	Scope string `json:"scope,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TableHash is the content hash of the table definition, empty when the
	// table cannot be serialized.
	TableHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Rows       int
	Cols       int
	Grobs      int
	RenderTime time.Duration
}

// CacheInfo tracks cache usage.
type CacheInfo struct {
	Hits   int  // formats served from cache
	AllHit bool // every format came from the cache
}

// ValidateFormats checks that all formats are known.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults fills in defaults and checks the formats.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.LineHeight <= 0 {
		o.LineHeight = render.DefaultLineHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// RenderOptions converts o into render options.
func (o Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithSize(o.Width, o.Height), render.WithLineHeight(o.LineHeight)}
	if o.Background != "" {
		opts = append(opts, render.WithBackground(o.Background))
	}
	if o.Guides {
		opts = append(opts, render.WithGuides())
	}
	return opts
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		LineHeight: o.LineHeight,
		Background: o.Background,
		Guides:     o.Guides,
	}
}
