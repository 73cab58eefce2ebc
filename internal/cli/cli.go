package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtable/pkg/cache"
	"github.com/matzehuels/gridtable/pkg/pipeline"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/tablefile"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridtable"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output (summaries, written paths). It defaults
	// to stdout.
	Out io.Writer
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the file cache, or by no
// cache when noCache is set or the cache directory is unusable.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), nil, c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cache.DefaultDir())
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Table I/O
// =============================================================================

// loadTable reads a definition file and logs its shape.
func (c *CLI) loadTable(path string) (*table.Table, error) {
	t, err := tablefile.Load(path)
	if err != nil {
		return nil, err
	}
	rows, cols := t.Dim()
	c.Logger.Debug("loaded table", "path", path, "name", t.Name(), "rows", rows, "cols", cols, "grobs", t.Len())
	return t, nil
}

// saveTable writes t to output, or back to input when output is empty.
func (c *CLI) saveTable(t *table.Table, input, output string) (string, error) {
	if output == "" {
		output = input
	}
	if err := tablefile.Save(t, output); err != nil {
		return "", err
	}
	return output, nil
}
