package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "ltschart:staging:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SegmentsKey generates a prefixed key for segmenter output.
func (k *ScopedKeyer) SegmentsKey(datasetHash string, opts SegmentsKeyOpts) (string, error) {
	key, err := k.inner.SegmentsKey(datasetHash, opts)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(segmentsHash string, opts LayoutKeyOpts) (string, error) {
	key, err := k.inner.LayoutKey(segmentsHash, opts)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) (string, error) {
	key, err := k.inner.ArtifactKey(sceneHash, opts)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}
