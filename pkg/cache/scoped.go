package cache

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GraphKey(stationID int, datasetHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(stationID, datasetHash, opts)
}

func (k *ScopedKeyer) PositionsKey(stationID int) string {
	return k.prefix + k.inner.PositionsKey(stationID)
}

func (k *ScopedKeyer) BackdropKey(url string) string {
	return k.prefix + k.inner.BackdropKey(url)
}
