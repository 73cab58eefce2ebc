package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/gridtable/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	c, out := testCLI(t)
	if err := execute(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != cache.DefaultDir() {
		t.Errorf("cache path = %q, want %q", got, cache.DefaultDir())
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, _ := testCLI(t)
	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("clear on empty cache: %v", err)
	}

	in := writeLayout(t)
	if err := execute(t, c, "render", in, "-f", "json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	fc, err := cache.NewFileCache(cache.DefaultDir())
	if err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(fc.Dir())
	if len(entries) == 0 {
		t.Fatal("render did not populate the cache")
	}

	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := fc.Clear(); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
}
