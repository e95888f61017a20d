package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without reading each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(puzzleHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(puzzleHash, opts)
}

// SolutionKey generates a prefixed key for solver result caching.
func (k *ScopedKeyer) SolutionKey(puzzleHash string) string {
	return k.prefix + k.inner.SolutionKey(puzzleHash)
}
