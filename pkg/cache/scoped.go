package cache

// ScopedKeyer wraps a Keyer with a prefix. Used to keep authenticated GitHub
// lookups apart from anonymous ones, since private repositories only resolve
// with a token.
//
// Example usage:
//
//	tokenKeyer := NewScopedKeyer(NewDefaultKeyer(), "token:"+Hash([]byte(tok))[:12]+":")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// DescriptorKey generates a prefixed key for descriptor caching.
func (k *ScopedKeyer) DescriptorKey(repository, group, artifact, version string) string {
	return k.prefix + k.inner.DescriptorKey(repository, group, artifact, version)
}

// LicenseKey generates a prefixed key for license lookups.
func (k *ScopedKeyer) LicenseKey(owner, repo string) string {
	return k.prefix + k.inner.LicenseKey(owner, repo)
}
