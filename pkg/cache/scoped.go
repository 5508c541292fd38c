package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments, or several
// layout sets, can share one Redis or MongoDB instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "crk:")
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

// LookupKey generates a prefixed generator lookup key.
func (k *ScopedKeyer) LookupKey(generatorID, analysis string) string {
	return k.prefix + k.inner.LookupKey(generatorID, analysis)
}

// ResponseKey generates a prefixed API response key.
func (k *ScopedKeyer) ResponseKey(route string, params map[string]string) string {
	return k.prefix + k.inner.ResponseKey(route, params)
}
