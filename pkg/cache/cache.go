// Package cache stores rendered table artifacts.
//
// Rendering is deterministic: the same table definition and the same render
// options always produce the same bytes. Artifacts are therefore keyed by a
// hash of the definition plus the options ([Keyer]) and can be shared
// between CLI runs ([FileCache]) or service instances ([RedisCache]).
// [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PrefixDeleter is implemented by caches that can drop a whole key
// namespace, such as every artifact of one stored table.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// ArtifactKeyOpts are the render options that influence an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LineHeight float64 `json:"line_height,omitempty"`
	Background string  `json:"background,omitempty"`
	Guides     bool    `json:"guides,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendering of the table whose
	// definition hashes to tableHash.
	ArtifactKey(tableHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tableHash, opts)
}
