package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ilotplan/pkg/cache"
	"github.com/matzehuels/ilotplan/pkg/demand"
	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/placement"
	"github.com/matzehuels/ilotplan/pkg/score"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.CorridorWidth != 2.0 {
		t.Errorf("CorridorWidth = %v, want 2", cfg.CorridorWidth)
	}
	if len(cfg.SizeDistribution) != 3 {
		t.Errorf("bands = %d, want 3", len(cfg.SizeDistribution))
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "ilotplan.toml", `
corridor_width = 1.5
algorithm = "greedy"
seed = 7

[[size_distribution]]
min_size = 1
max_size = 3
percentage = 100

[genetic]
generations = 12

[tolerances]
noise_floor = 0.5
`)
	cfg, err := load(path, map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CorridorWidth != 1.5 || cfg.Algorithm != "greedy" || cfg.Seed != 7 {
		t.Errorf("scalars = %v %q %d", cfg.CorridorWidth, cfg.Algorithm, cfg.Seed)
	}
	want := []demand.SizeBand{{MinSize: 1, MaxSize: 3, Percentage: 100}}
	if len(cfg.SizeDistribution) != 1 || cfg.SizeDistribution[0] != want[0] {
		t.Errorf("SizeDistribution = %+v, want %+v", cfg.SizeDistribution, want)
	}
	if cfg.Genetic.Generations != 12 {
		t.Errorf("Generations = %d, want 12", cfg.Genetic.Generations)
	}
	if cfg.Genetic.PopulationSize != placement.DefaultGeneticConfig().PopulationSize {
		t.Errorf("PopulationSize = %d, want default", cfg.Genetic.PopulationSize)
	}
	if cfg.Tolerances.NoiseFloor != 0.5 {
		t.Errorf("NoiseFloor = %v, want 0.5", cfg.Tolerances.NoiseFloor)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "ilotplan.toml", "corridor_width = 1.5\n")
	cfg, err := load(path, map[string]string{
		"ILOTPLAN_CORRIDOR_WIDTH":        "3",
		"ILOTPLAN_GENETIC_PARALLEL":      "true",
		"ILOTPLAN_TOLERANCE_NOISE_FLOOR": "0.25",
		"ILOTPLAN_CACHE_DISABLED":        "true",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CorridorWidth != 3 {
		t.Errorf("CorridorWidth = %v, want env value 3", cfg.CorridorWidth)
	}
	if !cfg.Genetic.Parallel {
		t.Error("Genetic.Parallel should be set from env")
	}
	if cfg.Tolerances.NoiseFloor != 0.25 {
		t.Errorf("NoiseFloor = %v, want 0.25", cfg.Tolerances.NoiseFloor)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled should be set from env")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		environ map[string]string
		code    errors.Code
	}{
		{
			name: "distribution sums to 60",
			content: `
[[size_distribution]]
min_size = 0
max_size = 1
percentage = 30
[[size_distribution]]
min_size = 1
max_size = 5
percentage = 30
`,
			code: errors.ErrCodeConfiguration,
		},
		{name: "zero corridor", content: "corridor_width = 0\n", code: errors.ErrCodeConfiguration},
		{name: "unknown algorithm", content: `algorithm = "annealing"`, code: errors.ErrCodeConfiguration},
		{name: "unknown key", content: "corridor_widht = 2\n", code: errors.ErrCodeConfiguration},
		{name: "malformed", content: "corridor_width = \n", code: errors.ErrCodeConfiguration},
		{name: "inverted band", content: `
[[size_distribution]]
min_size = 5
max_size = 1
percentage = 100
`, code: errors.ErrCodeConfiguration},
		{
			name:    "bad env value",
			content: "",
			environ: map[string]string{"ILOTPLAN_SEED": "minus one"},
			code:    errors.ErrCodeConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "c.toml", tt.content)
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := load(path, environ)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.toml"), map[string]string{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.VerticalCorridors = true
	cfg.Raster.Scale = 0.05
	opts := cfg.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("options from default config invalid: %v", err)
	}
	if !opts.VerticalCorridors || opts.Raster.Scale != 0.05 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Seed != cfg.Seed || opts.CorridorWidth != cfg.CorridorWidth {
		t.Errorf("seed/width not carried over")
	}
}

func TestLoadScorer(t *testing.T) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	cfg := Default()
	if _, ok := cfg.LoadScorer(logger).(score.Heuristic); !ok {
		t.Error("no model should select the heuristic")
	}

	cfg.Scorer.Model = filepath.Join(t.TempDir(), "missing.toml")
	if _, ok := cfg.LoadScorer(logger).(score.Heuristic); !ok {
		t.Error("missing model should fall back to the heuristic")
	}

	m := &score.Model{Version: score.ModelVersion, Weights: make([]float64, score.NumFeatures)}
	path := filepath.Join(t.TempDir(), "model.toml")
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}
	cfg.Scorer.Model = path
	if got := cfg.LoadScorer(logger).Name(); got != "trained" {
		t.Errorf("scorer = %q, want trained", got)
	}
}

func TestOpenCache(t *testing.T) {
	cfg := Default()
	cfg.Cache.Disabled = true
	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("disabled cache = %T, want *NullCache", c)
	}

	cfg.Cache.Disabled = false
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("cache = %T, want *FileCache", c)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir = %s, want %s", fc.Dir(), cfg.Cache.Dir)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	cfg := Default()
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", AppName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, _ = cfg.CacheDir()
	if want := filepath.Join("/tmp/custom-cache", AppName); dir != want {
		t.Errorf("CacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}

	cfg.Cache.Dir = "/srv/ilotplan"
	if dir, _ = cfg.CacheDir(); dir != "/srv/ilotplan" {
		t.Errorf("CacheDir() = %q, want configured dir", dir)
	}
}
