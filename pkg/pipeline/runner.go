package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtable/pkg/cache"
	"github.com/matzehuels/gridtable/pkg/observability"
	"github.com/matzehuels/gridtable/pkg/render"
	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/tablefile"
)

// Runner renders tables with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute renders t in every requested format. Formats found in the cache
// are not re-rendered.
func (r *Runner) Execute(ctx context.Context, t *table.Table, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	rows, cols := t.Dim()
	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats:     Stats{Rows: rows, Cols: cols, Grobs: t.Len()},
	}
	if data, err := tablefile.Marshal(t, tablefile.FormatJSON); err == nil {
		result.TableHash = cache.Hash(data)
	} else {
		opts.Logger.Debug("table not cacheable", "err", err)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, t.Name(), opts.Formats)
	start := time.Now()
	for _, name := range opts.Formats {
		format, _ := render.ParseFormat(name)
		data, hit, err := r.renderFormat(ctx, t, result.TableHash, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, t.Name(), opts.Formats, time.Since(start), err)
			return nil, err
		}
		if hit {
			result.CacheInfo.Hits++
		}
		result.Artifacts[string(format)] = data
	}
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.AllHit = result.CacheInfo.Hits == len(opts.Formats)
	hooks.OnRenderComplete(ctx, t.Name(), opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered table",
		"name", t.Name(),
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, t *table.Table, hash string, f render.Format, opts Options) ([]byte, bool, error) {
	const keyType = "artifact"
	hooks := observability.Cache()

	var key string
	if hash != "" {
		keyer := r.Keyer
		if opts.Scope != "" {
			keyer = cache.NewScopedKeyer(keyer, opts.Scope)
		}
		key = keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(string(f)))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			switch {
			case err != nil:
				opts.Logger.Warn("cache lookup failed", "err", err)
			case hit:
				hooks.OnCacheHit(ctx, keyType)
				return data, true, nil
			default:
				hooks.OnCacheMiss(ctx, keyType)
			}
		}
	}

	data, err := render.Export(ctx, t, f, opts.RenderOptions()...)
	if err != nil {
		return nil, false, err
	}
	if key != "" {
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyType, len(data))
		}
	}
	return data, false, nil
}

// Evict drops every cached artifact rendered under scope. Caches that
// cannot delete by prefix keep their entries until they expire.
func (r *Runner) Evict(ctx context.Context, scope string) error {
	pd, ok := r.Cache.(cache.PrefixDeleter)
	if !ok || scope == "" {
		return nil
	}
	if err := pd.DeletePrefix(ctx, scope); err != nil {
		return fmt.Errorf("evict %s: %w", scope, err)
	}
	r.Logger.Debug("evicted artifacts", "scope", scope)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
