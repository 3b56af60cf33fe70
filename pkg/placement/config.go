package placement

// GeneticConfig holds the parameters of the genetic search.
type GeneticConfig struct {
	PopulationSize int     `json:"population_size" toml:"population_size" env:"POPULATION_SIZE" validate:"gte=0"`
	Generations    int     `json:"generations" toml:"generations" env:"GENERATIONS" validate:"gte=0"`
	EliteFraction  float64 `json:"elite_fraction" toml:"elite_fraction" env:"ELITE_FRACTION" validate:"gte=0,lte=1"`
	TournamentSize int     `json:"tournament_size" toml:"tournament_size" env:"TOURNAMENT_SIZE" validate:"gte=0"`
	CrossoverRate  float64 `json:"crossover_rate" toml:"crossover_rate" env:"CROSSOVER_RATE" validate:"gte=0,lte=1"`
	MutationRate   float64 `json:"mutation_rate" toml:"mutation_rate" env:"MUTATION_RATE" validate:"gte=0,lte=1"`
	MutationStep   float64 `json:"mutation_step" toml:"mutation_step" env:"MUTATION_STEP" validate:"gte=0"`
	MaxAttempts    int     `json:"max_attempts" toml:"max_attempts" env:"MAX_ATTEMPTS" validate:"gte=0"`
	AspectMin      float64 `json:"aspect_min" toml:"aspect_min" env:"ASPECT_MIN" validate:"gte=0"`
	AspectMax      float64 `json:"aspect_max" toml:"aspect_max" env:"ASPECT_MAX" validate:"gte=0"`

	// Parallel evaluates fitness across the population concurrently.
	Parallel bool `json:"parallel" toml:"parallel" env:"PARALLEL"`
}

// DefaultGeneticConfig returns the standard search parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		EliteFraction:  0.1,
		TournamentSize: 3,
		CrossoverRate:  0.8,
		MutationRate:   0.1,
		MutationStep:   2,
		MaxAttempts:    100,
		AspectMin:      0.5,
		AspectMax:      1.5,
	}
}

// WithDefaults returns c with unset fields filled from DefaultGeneticConfig.
// Rates are only defaulted when every rate is zero so that an explicit zero
// crossover or mutation rate can be configured alongside other settings.
func (c GeneticConfig) WithDefaults() GeneticConfig {
	d := DefaultGeneticConfig()
	if c.PopulationSize <= 0 {
		c.PopulationSize = d.PopulationSize
	}
	if c.Generations <= 0 {
		c.Generations = d.Generations
	}
	if c.EliteFraction <= 0 {
		c.EliteFraction = d.EliteFraction
	}
	if c.TournamentSize <= 0 {
		c.TournamentSize = d.TournamentSize
	}
	if c.CrossoverRate == 0 && c.MutationRate == 0 {
		c.CrossoverRate = d.CrossoverRate
		c.MutationRate = d.MutationRate
	}
	if c.MutationStep <= 0 {
		c.MutationStep = d.MutationStep
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.AspectMin <= 0 || c.AspectMax < c.AspectMin {
		c.AspectMin, c.AspectMax = d.AspectMin, d.AspectMax
	}
	return c
}

// eliteCount returns how many individuals survive unchanged.
func (c GeneticConfig) eliteCount() int {
	n := int(float64(c.PopulationSize) * c.EliteFraction)
	return max(1, min(n, c.PopulationSize))
}
