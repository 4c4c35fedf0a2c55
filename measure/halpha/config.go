package halpha

import (
	"fmt"

	"github.com/cwbudde/algo-zeeman/core"
	"github.com/cwbudde/algo-zeeman/fit"
	"github.com/cwbudde/algo-zeeman/fit/continuum"
	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

// Regions holds the wavelength bounds, in Å, of every window the pipeline
// slices.
type Regions struct {
	BroadLow  float64 `json:"broad_low" yaml:"broad_low" mapstructure:"broad_low"`
	BroadHigh float64 `json:"broad_high" yaml:"broad_high" mapstructure:"broad_high" validate:"gtfield=BroadLow"`
	AbsLow    float64 `json:"abs_low" yaml:"abs_low" mapstructure:"abs_low"`
	AbsHigh   float64 `json:"abs_high" yaml:"abs_high" mapstructure:"abs_high" validate:"gtfield=AbsLow"`
	DipLow    float64 `json:"dip_low" yaml:"dip_low" mapstructure:"dip_low"`
	DipHigh   float64 `json:"dip_high" yaml:"dip_high" mapstructure:"dip_high" validate:"gtfield=DipLow"`
	ClipLow   float64 `json:"clip_low" yaml:"clip_low" mapstructure:"clip_low"`
	ClipHigh  float64 `json:"clip_high" yaml:"clip_high" mapstructure:"clip_high" validate:"gtfield=ClipLow"`
}

// DefaultRegions returns the windows used for DA/DAH Hα.
func DefaultRegions() Regions {
	return Regions{
		BroadLow: 6200, BroadHigh: 7000,
		AbsLow: 6400, AbsHigh: 6800,
		DipLow: 6500, DipHigh: 6650,
		ClipLow: 6400, ClipHigh: 6750,
	}
}

// Validate checks that every window has low < high.
func (r Regions) Validate() error {
	pairs := []struct {
		name      string
		low, high float64
	}{
		{"broad", r.BroadLow, r.BroadHigh},
		{"abs", r.AbsLow, r.AbsHigh},
		{"dip", r.DipLow, r.DipHigh},
		{"clip", r.ClipLow, r.ClipHigh},
	}

	for _, p := range pairs {
		if !(p.low < p.high) {
			return fmt.Errorf("%w: %s window [%v, %v]", core.ErrInvalidRegion, p.name, p.low, p.high)
		}
	}

	return nil
}

// Band is a wavelength interval to excise from the continuum fit.
type Band struct {
	Low  float64 `json:"low" yaml:"low" mapstructure:"low"`
	High float64 `json:"high" yaml:"high" mapstructure:"high" validate:"gtfield=Low"`
}

// ModelKind names a triplet model.
type ModelKind string

const (
	KindVoigt      ModelKind = "voigt"
	KindLorentzian ModelKind = "lorentzian"
)

// ParseModelKind validates a model name.
func ParseModelKind(s string) (ModelKind, error) {
	switch k := ModelKind(s); k {
	case KindVoigt, KindLorentzian:
		return k, nil
	default:
		return "", fmt.Errorf("halpha: unknown model %q", s)
	}
}

// Config holds the pipeline settings.
type Config struct {
	Regions Regions
	// Artifacts are extra bands removed before the continuum fit.
	Artifacts []Band

	ContinuumSeed  [4]float64
	VoigtSeed      triplet.VoigtParams
	LorentzianSeed triplet.LorentzianParams

	// Models lists the triplet fits to run. Empty runs both.
	Models []ModelKind
	// Law defaults to zeeman.Empirical.
	Law zeeman.Law
	// Weighted weights the triplet fits by the normalised error column.
	Weighted bool

	// FitOptions apply to every fit; ModelOptions are appended per model.
	FitOptions   []fit.Option
	ModelOptions map[ModelKind][]fit.Option
}

// DefaultConfig returns the default regions, seeds and both models.
func DefaultConfig() Config {
	return Config{
		Regions:        DefaultRegions(),
		ContinuumSeed:  continuum.DefaultSeed,
		VoigtSeed:      triplet.DefaultVoigtSeed,
		LorentzianSeed: triplet.DefaultLorentzianSeed,
		Models:         []ModelKind{KindVoigt, KindLorentzian},
		Law:            zeeman.Empirical,
	}
}

func normalizeConfig(cfg Config) Config {
	if len(cfg.Models) == 0 {
		cfg.Models = []ModelKind{KindVoigt, KindLorentzian}
	}

	if cfg.Law == nil {
		cfg.Law = zeeman.Empirical
	}

	if cfg.ContinuumSeed == ([4]float64{}) {
		cfg.ContinuumSeed = continuum.DefaultSeed
	}

	if cfg.VoigtSeed == (triplet.VoigtParams{}) {
		cfg.VoigtSeed = triplet.DefaultVoigtSeed
	}

	if cfg.LorentzianSeed == (triplet.LorentzianParams{}) {
		cfg.LorentzianSeed = triplet.DefaultLorentzianSeed
	}

	return cfg
}

func (cfg Config) options(kind ModelKind) []fit.Option {
	opts := append([]fit.Option(nil), cfg.FitOptions...)
	return append(opts, cfg.ModelOptions[kind]...)
}
