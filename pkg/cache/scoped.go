package cache

// ScopedKeyer wraps a Keyer with a prefix. A Redis instance shared with other
// applications uses it to keep heatgrid keys in their own namespace.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "heatgrid:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(year int, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(year, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
