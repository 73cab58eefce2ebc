package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each scope its own
// namespace. The service scopes artifacts by stored table id ([TableScope])
// so that replacing or deleting a table can drop its renderings with
// [PrefixDeleter].
//
//	k := NewScopedKeyer(NewDefaultKeyer(), TableScope(id))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tableHash, opts)
}

// TableScopePrefix starts every table-scoped key.
const TableScopePrefix = "table:"

// TableScope returns the key prefix for artifacts of the stored table id.
func TableScope(id string) string { return TableScopePrefix + id + ":" }
