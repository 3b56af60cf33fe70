package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can
// share one backend without colliding.
//
// Example usage:
//
//	siteKeyer := NewScopedKeyer(NewDefaultKeyer(), "site:lyon:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys; plan hashes are unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanHash delegates to the wrapped keyer.
func (k *ScopedKeyer) PlanHash(plan []byte) string {
	return k.inner.PlanHash(plan)
}

// ZonesKey generates a prefixed key for classified zones.
func (k *ScopedKeyer) ZonesKey(planHash string, settings any) string {
	return k.prefix + k.inner.ZonesKey(planHash, settings)
}

// ResultKey generates a prefixed key for optimization results.
func (k *ScopedKeyer) ResultKey(planHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(planHash, opts)
}
