package placement

// Random returns one randomly seeded layout without any search. It is the
// baseline the other placers are compared against.
type Random struct {
	cfg  GeneticConfig
	seed uint64
}

// NewRandom returns a random placer using the seeding settings of cfg.
func NewRandom(cfg GeneticConfig, seed uint64) *Random {
	return &Random{cfg: cfg.WithDefaults(), seed: seed}
}

// Name implements Placer.
func (*Random) Name() string { return AlgorithmRandom }

// Place implements Placer.
func (r *Random) Place(p Problem) Outcome {
	units := expand(p.Requirements)
	if p.FreeArea() <= 0 || len(units) == 0 {
		return Outcome{Requested: len(units)}
	}
	s := seeder{units: units, free: p.Free, cfg: r.cfg, tol: p.Tolerances.WithDefaults().Overlap}
	out := finish(s.candidate(newRand(r.seed)), p, len(units), 1)
	if p.Progress != nil {
		p.Progress(0, out.Fitness)
	}
	return out
}
