package score

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ilotplan/pkg/errors"
)

// ModelVersion is the current on-disk model format.
const ModelVersion = 1

// Model is a logistic model over the feature vector. Its prediction is
// scaled to [0, 100].
type Model struct {
	Version int       `toml:"version"`
	Weights []float64 `toml:"weights"`
	Bias    float64   `toml:"bias"`
	Samples int       `toml:"samples"`
	Loss    float64   `toml:"loss"`
}

// Validate reports whether the model can be used for prediction.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidModel, "no model loaded")
	}
	if m.Version != ModelVersion {
		return errors.New(errors.ErrCodeInvalidModel, "unsupported model version %d", m.Version)
	}
	if len(m.Weights) != NumFeatures {
		return errors.New(errors.ErrCodeInvalidModel, "model has %d weights, want %d", len(m.Weights), NumFeatures)
	}
	for _, w := range append([]float64{m.Bias}, m.Weights...) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.New(errors.ErrCodeInvalidModel, "model contains non-finite parameters")
		}
	}
	return nil
}

// Predict returns the model score for f. The model must be valid.
func (m *Model) Predict(f Features) float64 {
	return 100 * sigmoid(m.logit(f.Vector()))
}

func (m *Model) logit(x [NumFeatures]float64) float64 {
	z := m.Bias
	for i, w := range m.Weights {
		z += w * x[i]
	}
	return z
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }

// Sample is a labeled training example.
type Sample struct {
	Features Features `json:"features"`
	Score    float64  `json:"score"`
}

// FitOptions controls training.
type FitOptions struct {
	Epochs       int
	LearningRate float64
}

// DefaultFitOptions returns the standard training settings.
func DefaultFitOptions() FitOptions {
	return FitOptions{Epochs: 2000, LearningRate: 0.5}
}

// Fit trains a model on samples by batch gradient descent on the squared
// error of the scaled prediction. Scores outside [0, 100] are clamped.
func Fit(samples []Sample, opts FitOptions) (*Model, error) {
	if len(samples) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no training samples")
	}
	d := DefaultFitOptions()
	if opts.Epochs <= 0 {
		opts.Epochs = d.Epochs
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = d.LearningRate
	}

	m := &Model{Version: ModelVersion, Weights: make([]float64, NumFeatures), Samples: len(samples)}
	xs := make([][NumFeatures]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Features.Vector()
		ys[i] = clamp(s.Score) / 100
	}

	n := float64(len(samples))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		var gradB float64
		var gradW [NumFeatures]float64
		for i, x := range xs {
			p := sigmoid(m.logit(x))
			g := 2 * (p - ys[i]) * p * (1 - p)
			gradB += g
			for j := range gradW {
				gradW[j] += g * x[j]
			}
		}
		m.Bias -= opts.LearningRate * gradB / n
		for j := range m.Weights {
			m.Weights[j] -= opts.LearningRate * gradW[j] / n
		}
	}

	var loss float64
	for i, x := range xs {
		d := sigmoid(m.logit(x)) - ys[i]
		loss += d * d
	}
	m.Loss = loss / n
	return m, m.Validate()
}

// LoadModel reads a model from a TOML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read model %s", path)
	}
	var m Model
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode model %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the model as TOML.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create model %s", path)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode model %s", path)
	}
	return f.Close()
}

// Trained scores with a fitted model and defers to Fallback when the model
// is missing or invalid.
type Trained struct {
	Model    *Model
	Fallback Scorer
}

// NewTrained returns a trained scorer backed by m with the heuristic as
// fallback.
func NewTrained(m *Model) *Trained {
	return &Trained{Model: m, Fallback: Heuristic{}}
}

// Name implements Scorer.
func (t *Trained) Name() string {
	if t.Usable() {
		return "trained"
	}
	return t.fallback().Name()
}

// Fingerprinter is implemented by scorers whose output depends on more
// than their name, so that cached results of different models stay apart.
type Fingerprinter interface {
	Fingerprint() string
}

// Fingerprint returns a short hash of the model parameters, or "" when the
// heuristic fallback is in use.
func (t *Trained) Fingerprint() string {
	if !t.Usable() {
		return ""
	}
	h := sha256.New()
	buf := make([]byte, 8)
	for _, v := range append([]float64{t.Model.Bias}, t.Model.Weights...) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Usable reports whether the model will be used.
func (t *Trained) Usable() bool { return t.Model.Validate() == nil }

// Score implements Scorer.
func (t *Trained) Score(f Features) float64 {
	if !t.Usable() {
		return t.fallback().Score(f)
	}
	return clamp(t.Model.Predict(f))
}

func (t *Trained) fallback() Scorer {
	if t.Fallback == nil {
		return Heuristic{}
	}
	return t.Fallback
}
