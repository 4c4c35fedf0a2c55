package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, halpha.DefaultRegions(), cfg.Regions)
	assert.Equal(t, []float64{1, 1, 1, 1}, cfg.Continuum.Seed)
	assert.Equal(t, triplet.DefaultVoigtSeed, cfg.Voigt.Seed)
	assert.Equal(t, triplet.DefaultLorentzianSeed, cfg.Lorentzian.Seed)
	assert.Equal(t, []string{"voigt", "lorentzian"}, cfg.Fit.Models)
	assert.Equal(t, "empirical", cfg.Fit.Law)
	assert.Empty(t, cfg.Artifacts)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeeman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
regions:
  dip_low: 6510
  dip_high: 6640
  clip_high: 6720
artifacts:
  - low: 6300
    high: 6310
lorentzian:
  seed:
    lambda0: 6563
    b: 1.2
    amp1: 0.3
    wid1: 4
    amp2: 0.4
    wid2: 5
fit:
  models: [lorentzian]
  law: quadratic
`), 0o600))

	t.Setenv("ZEEMAN_REGIONS_BROAD_LOW", "6250")

	flags := pflag.NewFlagSet("fit", pflag.ContinueOnError)
	flags.Float64("clip-low", 6400, "")
	flags.Int("max-evaluations", 0, "")
	require.NoError(t, flags.Parse([]string{"--clip-low=6420", "--max-evaluations=500"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.InDelta(t, 6250, cfg.Regions.BroadLow, 0)
	assert.InDelta(t, 7000, cfg.Regions.BroadHigh, 0)
	assert.InDelta(t, 6510, cfg.Regions.DipLow, 0)
	assert.InDelta(t, 6420, cfg.Regions.ClipLow, 0)
	assert.InDelta(t, 6720, cfg.Regions.ClipHigh, 0)
	assert.Equal(t, []halpha.Band{{Low: 6300, High: 6310}}, cfg.Artifacts)
	assert.InDelta(t, 1.2, cfg.Lorentzian.Seed.B, 0)
	assert.Equal(t, 500, cfg.Fit.MaxEvaluations)

	p, err := cfg.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, []halpha.ModelKind{halpha.KindLorentzian}, p.Models)
	assert.Equal(t, zeeman.Quadratic, p.Law)
	assert.Len(t, p.FitOptions, 1)
	assert.Equal(t, [4]float64{1, 1, 1, 1}, p.ContinuumSeed)
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"reversed dip":      func(c *Config) { c.Regions.DipLow, c.Regions.DipHigh = 6650, 6500 },
		"reversed artifact": func(c *Config) { c.Artifacts = []halpha.Band{{Low: 10, High: 5}} },
		"short seed":        func(c *Config) { c.Continuum.Seed = []float64{1, 1} },
		"unknown model":     func(c *Config) { c.Fit.Models = []string{"gaussian"} },
		"no models":         func(c *Config) { c.Fit.Models = nil },
		"unknown law":       func(c *Config) { c.Fit.Law = "linear" },
		"unknown format":    func(c *Config) { c.Output.Format = "xml" },
		"unknown level":     func(c *Config) { c.Log.Level = "trace" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.Error(t, Validate(&cfg))
		})
	}

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	want := Default()
	want.Artifacts = []halpha.Band{{Low: 6850, High: 6860}}
	want.Fit.Weighted = true
	want.Output.Format = "json"
	require.NoError(t, Save(path, &want))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestFlagKey(t *testing.T) {
	key, ok := FlagKey("dip-high")
	require.True(t, ok)
	assert.Equal(t, "regions.dip_high", key)

	_, ok = FlagKey("nope")
	assert.False(t, ok)
}
