package score

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/geometry"
	"github.com/matzehuels/ilotplan/pkg/layout"
)

const eps = 1e-9

func unit(id int, x, y, w, h float64) layout.Ilot {
	return layout.NewIlot(id, geometry.Rect{X: x, Y: y, Width: w, Height: h}, "", layout.Rot0)
}

func gridLayout() ([]layout.Ilot, []layout.Corridor, []geometry.Rect) {
	ilots := []layout.Ilot{
		unit(0, 0, 0, 2, 2), unit(1, 3, 0, 2, 2),
		unit(2, 0, 4, 2, 2), unit(3, 3, 4, 2, 2),
	}
	corridors := []layout.Corridor{{
		Rect:             geometry.Rect{X: 0, Y: 2, Width: 5, Height: 2},
		Orientation:      layout.Horizontal,
		ConnectedIlotIDs: []int{0, 1, 2, 3},
	}}
	free := []geometry.Rect{{Width: 8, Height: 8}}
	return ilots, corridors, free
}

func TestExtract(t *testing.T) {
	ilots, corridors, free := gridLayout()
	f := Extract(ilots, corridors, free, geometry.DefaultTolerances())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"utilization", f.Utilization, 16.0 / 64},
		{"unit count", f.UnitCount, 0.04},
		{"corridor count", f.CorridorCount, 0.05},
		{"corridor area", f.CorridorAreaRatio, 10.0 / 64},
		{"overlap", f.Overlap, 0},
		{"aspect", f.AspectRatio, 1},
		{"accessibility", f.Accessibility, 1},
		{"compactness", f.Compactness, 16.0 / 32},
		// pairs: (0,1) y, (0,2) x, (0,3) -, (1,2) -, (1,3) x, (2,3) y
		{"alignment", f.Alignment, 4.0 / 6},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > eps {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if f.Corridors != 1 {
		t.Errorf("Corridors = %d, want 1", f.Corridors)
	}
	if f.SpacingUniformity <= 0 || f.SpacingUniformity > 1 {
		t.Errorf("spacing uniformity = %v, want (0, 1]", f.SpacingUniformity)
	}
}

func TestExtractDegenerate(t *testing.T) {
	f := Extract(nil, nil, nil, geometry.Tolerances{})
	for i, v := range f.Vector() {
		if v != 0 {
			t.Errorf("%s = %v, want 0", FeatureNames[i], v)
		}
	}

	single := Extract([]layout.Ilot{unit(0, 0, 0, 1, 4)}, nil, []geometry.Rect{{Width: 4, Height: 4}}, geometry.Tolerances{})
	if single.SpacingUniformity != 0 || single.Alignment != 0 {
		t.Errorf("single unit spacing/alignment = %v/%v, want 0/0", single.SpacingUniformity, single.Alignment)
	}
	if math.Abs(single.AspectRatio-0.25) > eps {
		t.Errorf("aspect = %v, want 0.25", single.AspectRatio)
	}
}

func TestSpacingUniformityEven(t *testing.T) {
	// Two units: one distance, zero variance.
	got := spacingUniformity([]layout.Ilot{unit(0, 0, 0, 1, 1), unit(1, 5, 0, 1, 1)})
	if math.Abs(got-1) > eps {
		t.Errorf("spacing uniformity = %v, want 1", got)
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name string
		f    Features
		want float64
	}{
		{"zero", Features{}, 0},
		{"weighted", Features{Utilization: 0.5, Overlap: 0.1, Corridors: 2, Accessibility: 0.5, Alignment: 0.2}, 20 - 2 + 10 + 10 + 3},
		{"clamped low", Features{Overlap: 3}, 0},
		{"clamped high", Features{Utilization: 1, Corridors: 20, Accessibility: 1, Alignment: 1}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Heuristic{}).Score(tt.f); math.Abs(got-tt.want) > eps {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	ilots, corridors, free := gridLayout()
	tol := geometry.DefaultTolerances()
	first, _ := Evaluate(nil, ilots, corridors, free, tol)
	for i := 0; i < 5; i++ {
		if got, _ := Evaluate(Heuristic{}, ilots, corridors, free, tol); got != first {
			t.Fatalf("run %d: score %v, want %v", i, got, first)
		}
	}
}

func TestTrainedFallsBack(t *testing.T) {
	f := Features{Utilization: 0.5, Accessibility: 1}
	want := (Heuristic{}).Score(f)

	for name, m := range map[string]*Model{
		"nil":          nil,
		"wrong length": {Version: ModelVersion, Weights: []float64{1}},
		"nan":          {Version: ModelVersion, Weights: []float64{math.NaN(), 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewTrained(m)
			if s.Usable() {
				t.Fatal("model should be unusable")
			}
			if got := s.Score(f); got != want {
				t.Errorf("Score = %v, want heuristic %v", got, want)
			}
			if s.Name() != "heuristic" {
				t.Errorf("Name = %q", s.Name())
			}
		})
	}
}

func TestFitLearnsOrdering(t *testing.T) {
	var samples []Sample
	for i := 0; i <= 10; i++ {
		u := float64(i) / 10
		samples = append(samples, Sample{Features: Features{Utilization: u}, Score: 10 + 80*u})
	}

	m, err := Fit(samples, FitOptions{})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	s := NewTrained(m)
	if !s.Usable() || s.Name() != "trained" {
		t.Fatalf("fitted model not usable")
	}
	low := s.Score(Features{Utilization: 0.1})
	high := s.Score(Features{Utilization: 0.9})
	if !(high > low) {
		t.Errorf("score(0.9) = %v should exceed score(0.1) = %v", high, low)
	}
	if m.Loss > 0.03 {
		t.Errorf("training loss %v too high", m.Loss)
	}
}

func TestFitNoSamples(t *testing.T) {
	if _, err := Fit(nil, FitOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fit(nil) error = %v", err)
	}
}

func TestModelSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.toml")
	m := &Model{Version: ModelVersion, Weights: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Bias: -0.5, Samples: 3}
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if got.Bias != m.Bias || len(got.Weights) != NumFeatures || got.Weights[9] != 10 {
		t.Errorf("loaded %+v, want %+v", got, m)
	}

	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing model error = %v", err)
	}
}

func TestTrainedFingerprint(t *testing.T) {
	weights := func(w float64) []float64 {
		out := make([]float64, NumFeatures)
		for i := range out {
			out[i] = w
		}
		return out
	}
	a := NewTrained(&Model{Version: ModelVersion, Weights: weights(1), Bias: 0.5})
	b := NewTrained(&Model{Version: ModelVersion, Weights: weights(2), Bias: 0.5})
	c := NewTrained(&Model{Version: ModelVersion, Weights: weights(1), Bias: 0.5})

	if a.Name() != b.Name() {
		t.Fatalf("names differ: %q vs %q", a.Name(), b.Name())
	}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("models with different weights share a fingerprint")
	}
	if a.Fingerprint() != c.Fingerprint() {
		t.Error("identical models should share a fingerprint")
	}
	if got := NewTrained(nil).Fingerprint(); got != "" {
		t.Errorf("fallback fingerprint = %q, want empty", got)
	}
}
