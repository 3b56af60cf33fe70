package geometry

// Default tolerance values.
const (
	DefaultConnectTolerance   = 0.1
	DefaultNoiseFloor         = 1.0
	DefaultAlignmentTolerance = 0.5
	DefaultOverlapTolerance   = 1e-6
	DefaultAdjacencyBuffer    = 2.0
)

// Tolerances groups the numeric slack used across the pipeline so that tests
// and configuration can exercise boundary behavior explicitly.
type Tolerances struct {
	// Connect is the maximum endpoint distance for joining wall chains.
	Connect float64 `json:"connect" toml:"connect" env:"CONNECT" validate:"gte=0"`

	// NoiseFloor drops free rectangles whose width or height is at or below it.
	NoiseFloor float64 `json:"noise_floor" toml:"noise_floor" env:"NOISE_FLOOR" validate:"gte=0"`

	// Alignment is the coordinate delta under which two units count as aligned.
	Alignment float64 `json:"alignment" toml:"alignment" env:"ALIGNMENT" validate:"gte=0"`

	// Overlap is the area under which two units are not considered colliding.
	Overlap float64 `json:"overlap" toml:"overlap" env:"OVERLAP" validate:"gte=0"`

	// Adjacency is the buffer around a corridor within which a unit counts as
	// reachable from it.
	Adjacency float64 `json:"adjacency" toml:"adjacency" env:"ADJACENCY" validate:"gte=0"`
}

// DefaultTolerances returns the standard tolerance set.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Connect:    DefaultConnectTolerance,
		NoiseFloor: DefaultNoiseFloor,
		Alignment:  DefaultAlignmentTolerance,
		Overlap:    DefaultOverlapTolerance,
		Adjacency:  DefaultAdjacencyBuffer,
	}
}

// WithDefaults returns t with every zero field replaced by its default.
func (t Tolerances) WithDefaults() Tolerances {
	d := DefaultTolerances()
	if t.Connect == 0 {
		t.Connect = d.Connect
	}
	if t.NoiseFloor == 0 {
		t.NoiseFloor = d.NoiseFloor
	}
	if t.Alignment == 0 {
		t.Alignment = d.Alignment
	}
	if t.Overlap == 0 {
		t.Overlap = d.Overlap
	}
	if t.Adjacency == 0 {
		t.Adjacency = d.Adjacency
	}
	return t
}
