package cache

// ResultKeyOpts are the settings that change an optimization result besides
// the floor plan itself.
type ResultKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Seed      uint64 `json:"seed"`
	// Settings is the effective optimization configuration; it is hashed as
	// JSON, so it must marshal deterministically.
	Settings any `json:"settings"`
}

// Keyer generates cache keys.
type Keyer interface {
	// PlanHash returns the content hash of an encoded floor plan.
	PlanHash(plan []byte) string
	// ZonesKey addresses the classified zones of a plan. settings holds
	// the classification parameters and is hashed as JSON.
	ZonesKey(planHash string, settings any) string
	// ResultKey addresses an optimization result.
	ResultKey(planHash string, opts ResultKeyOpts) string
}

// DefaultKeyer derives keys from SHA-256 hashes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanHash implements Keyer.
func (DefaultKeyer) PlanHash(plan []byte) string { return Hash(plan) }

// ZonesKey implements Keyer.
func (DefaultKeyer) ZonesKey(planHash string, settings any) string {
	return hashKey("zones", planHash, settings)
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(planHash string, opts ResultKeyOpts) string {
	return hashKey("result", planHash, opts)
}

var _ Keyer = DefaultKeyer{}
