package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-zeeman/internal/config"
	"github.com/cwbudde/algo-zeeman/internal/logger"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
)

var (
	// configPath is the optional YAML settings file.
	configPath string

	rootCmd = &cobra.Command{
		Use:   "zeemanfit",
		Short: "Fit Zeeman-split Hα triplets in white-dwarf spectra.",
		Long: `Fits the Hα Zeeman triplet of DA/DAH white-dwarf spectra.

Each spectrum is a whitespace-delimited file of wavelength, flux and error
columns. The broad Hα window is continuum-normalised with a cubic fitted
outside the absorption dip, then Voigt and Lorentzian triplets sharing one
splitting law are fitted to the clipped window.

Settings come from --config, ZEEMAN_* environment variables and flags, in
increasing order of precedence.`,
		SilenceUsage: true,
	}
)

// Execute runs the CLI and exits with a non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML settings file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(fitCmd, batchCmd, compareCmd, configCmd)
}

// addPipelineFlags registers the per-spectrum overrides shared by fit and batch.
func addPipelineFlags(fs *pflag.FlagSet) {
	d := config.Default()
	r := d.Regions

	fs.Float64("broad-low", r.BroadLow, "broad Hα window lower bound (Å)")
	fs.Float64("broad-high", r.BroadHigh, "broad Hα window upper bound (Å)")
	fs.Float64("abs-low", r.AbsLow, "absorption window lower bound (Å)")
	fs.Float64("abs-high", r.AbsHigh, "absorption window upper bound (Å)")
	fs.Float64("dip-low", r.DipLow, "excised dip lower bound (Å)")
	fs.Float64("dip-high", r.DipHigh, "excised dip upper bound (Å)")
	fs.Float64("clip-low", r.ClipLow, "triplet window lower bound (Å), exclusive")
	fs.Float64("clip-high", r.ClipHigh, "triplet window upper bound (Å), exclusive")

	fs.StringSlice("models", d.Fit.Models, "triplet models to fit: voigt, lorentzian")
	fs.String("law", d.Fit.Law, "splitting law: empirical or quadratic")
	fs.Int("max-evaluations", d.Fit.MaxEvaluations, "solver evaluation budget per fit (0 = automatic)")
	fs.Bool("weighted", d.Fit.Weighted, "weight triplet fits by the error column")

	fs.StringP("format", "f", d.Output.Format, "report format: text, json, yaml or msgpack")
	fs.String("plots-dir", d.Output.PlotsDir, "write PNG figures to this directory")
	fs.String("db", d.Output.DBPath, "store results in this SQLite database")
}

// loadSettings merges file, environment and flags and applies the log level.
func loadSettings(cmd *cobra.Command) (*config.Config, halpha.Config, error) {
	settings, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, halpha.Config{}, err
	}

	level, ok := logger.ParseLogLevel(settings.Log.Level)
	if !ok {
		return nil, halpha.Config{}, fmt.Errorf("unknown log level %q", settings.Log.Level)
	}

	logger.SetLevel(level)

	pipeline, err := settings.Pipeline()
	if err != nil {
		return nil, halpha.Config{}, err
	}

	return settings, pipeline, nil
}
