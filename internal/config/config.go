package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-zeeman/fit"
	"github.com/cwbudde/algo-zeeman/fit/triplet"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ZEEMAN_REGIONS_DIP_LOW.
	EnvPrefix = "ZEEMAN"

	// DefaultFilename is the config file written by `zeemanfit config init`.
	DefaultFilename = "zeeman.yaml"

	defaultFilePermissions = 0o644
)

var errConfigIsNotSet = errors.New("config: configuration is not set")

// Config is the file layout of the settings.
type Config struct {
	Regions    halpha.Regions   `yaml:"regions" mapstructure:"regions"`
	Artifacts  []halpha.Band    `yaml:"artifacts" mapstructure:"artifacts" validate:"dive"`
	Continuum  ContinuumConfig  `yaml:"continuum" mapstructure:"continuum"`
	Voigt      VoigtConfig      `yaml:"voigt" mapstructure:"voigt"`
	Lorentzian LorentzianConfig `yaml:"lorentzian" mapstructure:"lorentzian"`
	Fit        FitConfig        `yaml:"fit" mapstructure:"fit"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ContinuumConfig seeds the cubic continuum fit.
type ContinuumConfig struct {
	// Seed is (a, b, c, d).
	Seed []float64 `yaml:"seed" mapstructure:"seed" validate:"len=4"`
}

// VoigtConfig seeds the Voigt triplet fit.
type VoigtConfig struct {
	Seed triplet.VoigtParams `yaml:"seed" mapstructure:"seed"`
}

// LorentzianConfig seeds the Lorentzian triplet fit.
type LorentzianConfig struct {
	Seed triplet.LorentzianParams `yaml:"seed" mapstructure:"seed"`
}

// FitConfig selects models and solver settings.
type FitConfig struct {
	Models         []string `yaml:"models" mapstructure:"models" validate:"min=1,dive,oneof=voigt lorentzian"`
	Law            string   `yaml:"law" mapstructure:"law" validate:"oneof=empirical quadratic"`
	MaxEvaluations int      `yaml:"max_evaluations" mapstructure:"max_evaluations" validate:"gte=0"`
	Weighted       bool     `yaml:"weighted" mapstructure:"weighted"`
}

// OutputConfig controls reports, plots and the results database.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format" validate:"oneof=text json yaml msgpack"`
	PlotsDir string `yaml:"plots_dir" mapstructure:"plots_dir"`
	DBPath   string `yaml:"db_path" mapstructure:"db_path"`
	// Workers bounds concurrent spectra in batch mode; zero uses GOMAXPROCS.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Regions:    halpha.DefaultRegions(),
		Continuum:  ContinuumConfig{Seed: []float64{1, 1, 1, 1}},
		Voigt:      VoigtConfig{Seed: triplet.DefaultVoigtSeed},
		Lorentzian: LorentzianConfig{Seed: triplet.DefaultLorentzianSeed},
		Fit: FitConfig{
			Models: []string{string(halpha.KindVoigt), string(halpha.KindLorentzian)},
			Law:    zeeman.Empirical.Name(),
		},
		Output: OutputConfig{Format: "text"},
		Log:    LogConfig{Level: "info"},
	}
}

// flagKeys maps command-line flag names to configuration keys.
//
//nolint:gochecknoglobals // static lookup table.
var flagKeys = map[string]string{
	"broad-low":       "regions.broad_low",
	"broad-high":      "regions.broad_high",
	"abs-low":         "regions.abs_low",
	"abs-high":        "regions.abs_high",
	"dip-low":         "regions.dip_low",
	"dip-high":        "regions.dip_high",
	"clip-low":        "regions.clip_low",
	"clip-high":       "regions.clip_high",
	"models":          "fit.models",
	"law":             "fit.law",
	"max-evaluations": "fit.max_evaluations",
	"weighted":        "fit.weighted",
	"format":          "output.format",
	"plots-dir":       "output.plots_dir",
	"db":              "output.db_path",
	"workers":         "output.workers",
	"log-level":       "log.level",
}

// FlagKey returns the configuration key bound to a flag name.
func FlagKey(flag string) (string, bool) {
	key, ok := flagKeys[flag]
	return key, ok
}

// Load reads settings with precedence flags > environment > file > defaults.
// An empty path skips the file; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}

			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	r := d.Regions

	v.SetDefault("regions.broad_low", r.BroadLow)
	v.SetDefault("regions.broad_high", r.BroadHigh)
	v.SetDefault("regions.abs_low", r.AbsLow)
	v.SetDefault("regions.abs_high", r.AbsHigh)
	v.SetDefault("regions.dip_low", r.DipLow)
	v.SetDefault("regions.dip_high", r.DipHigh)
	v.SetDefault("regions.clip_low", r.ClipLow)
	v.SetDefault("regions.clip_high", r.ClipHigh)
	v.SetDefault("artifacts", []map[string]float64{})

	v.SetDefault("continuum.seed", d.Continuum.Seed)

	vs := d.Voigt.Seed
	v.SetDefault("voigt.seed.lambda0", vs.Lambda0)
	v.SetDefault("voigt.seed.b", vs.B)
	v.SetDefault("voigt.seed.a1", vs.A1)
	v.SetDefault("voigt.seed.sigma1", vs.Sigma1)
	v.SetDefault("voigt.seed.gamma1", vs.Gamma1)
	v.SetDefault("voigt.seed.a2", vs.A2)
	v.SetDefault("voigt.seed.sigma2", vs.Sigma2)
	v.SetDefault("voigt.seed.gamma2", vs.Gamma2)

	ls := d.Lorentzian.Seed
	v.SetDefault("lorentzian.seed.lambda0", ls.Lambda0)
	v.SetDefault("lorentzian.seed.b", ls.B)
	v.SetDefault("lorentzian.seed.amp1", ls.Amp1)
	v.SetDefault("lorentzian.seed.wid1", ls.Wid1)
	v.SetDefault("lorentzian.seed.amp2", ls.Amp2)
	v.SetDefault("lorentzian.seed.wid2", ls.Wid2)

	v.SetDefault("fit.models", d.Fit.Models)
	v.SetDefault("fit.law", d.Fit.Law)
	v.SetDefault("fit.max_evaluations", d.Fit.MaxEvaluations)
	v.SetDefault("fit.weighted", d.Fit.Weighted)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.plots_dir", d.Output.PlotsDir)
	v.SetDefault("output.db_path", d.Output.DBPath)
	v.SetDefault("output.workers", d.Output.Workers)

	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks field constraints and window ordering.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, defaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Pipeline converts the settings to a halpha.Config.
func (c *Config) Pipeline() (halpha.Config, error) {
	law, err := zeeman.ParseLaw(c.Fit.Law)
	if err != nil {
		return halpha.Config{}, err
	}

	models := make([]halpha.ModelKind, 0, len(c.Fit.Models))

	for _, name := range c.Fit.Models {
		kind, err := halpha.ParseModelKind(name)
		if err != nil {
			return halpha.Config{}, err
		}

		models = append(models, kind)
	}

	if len(c.Continuum.Seed) != 4 {
		return halpha.Config{}, fmt.Errorf("config: continuum seed has %d coefficients, want 4", len(c.Continuum.Seed))
	}

	out := halpha.DefaultConfig()
	out.Regions = c.Regions
	out.Artifacts = c.Artifacts
	out.ContinuumSeed = [4]float64(c.Continuum.Seed)
	out.VoigtSeed = c.Voigt.Seed
	out.LorentzianSeed = c.Lorentzian.Seed
	out.Models = models
	out.Law = law
	out.Weighted = c.Fit.Weighted

	if c.Fit.MaxEvaluations > 0 {
		out.FitOptions = []fit.Option{fit.WithMaxEvaluations(c.Fit.MaxEvaluations)}
	}

	return out, nil
}
