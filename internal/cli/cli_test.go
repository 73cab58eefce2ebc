package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const layoutTOML = `
name = "figure"
widths = ["2cm", "1null", "1null"]
heights = ["1lines", "1null"]
rownames = ["title", "body"]
colnames = ["axis", "left", "right"]

[[grobs]]
kind = "text"
id = "title"
label = "Sales"
t = 1
l = 1
r = 3
name = "title"

[[grobs]]
kind = "rect"
id = "left"
fill = "steelblue"
t = 2
l = 2

[[grobs]]
kind = "rect"
id = "right"
t = 2
l = 3
z = 0.5
`

// testCLI returns a CLI writing command output to out, with status lines
// discarded.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	prev := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = prev })

	var out bytes.Buffer
	return &CLI{Logger: log.NewWithOptions(io.Discard, log.Options{}), Out: &out}, &out
}

// writeLayout writes the fixture into a temp dir and returns its path.
func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figure.toml")
	if err := os.WriteFile(path, []byte(layoutTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}
