package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-zeeman/internal/batch"
	"github.com/cwbudde/algo-zeeman/internal/config"
	"github.com/cwbudde/algo-zeeman/internal/logger"
	"github.com/cwbudde/algo-zeeman/internal/plotting"
	"github.com/cwbudde/algo-zeeman/internal/report"
	"github.com/cwbudde/algo-zeeman/internal/store"
	"github.com/cwbudde/algo-zeeman/measure/halpha"
	"github.com/cwbudde/algo-zeeman/spectrum"
)

var fitCmd = &cobra.Command{
	Use:   "fit spectrum.dat",
	Short: "Analyse one spectrum.",
	Long: `Runs the Hα pipeline on one spectrum and writes the report to stdout.

Every window boundary can be overridden for this spectrum with flags, e.g.
	zeemanfit fit --dip-low 6510 --dip-high 6640 wd.dat

A failed model fit is reported and makes the command exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, pipeline, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		ctx := logger.WithKV(cmd.Context(), "spectrum", batch.Source(args[0]))

		s, err := spectrum.Load(args[0])
		if err != nil {
			return err
		}

		a, runErr := halpha.Run(ctx, s, pipeline)
		if a == nil {
			return runErr
		}

		doc := report.New(batch.Source(args[0]), a)

		if err := publish(ctx, settings, a, doc, ""); err != nil {
			return errors.Join(runErr, err)
		}

		if err := report.Encode(cmd.OutOrStdout(), settings.Output.Format, doc); err != nil {
			return errors.Join(runErr, err)
		}

		return runErr
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addPipelineFlags(fitCmd.Flags())
}

// publish writes plots and database rows when they are configured.
func publish(ctx context.Context, settings *config.Config, a *halpha.Analysis, doc report.Document, prefix string) error {
	if dir := settings.Output.PlotsDir; dir != "" {
		paths, err := plotting.Render(dir, prefix, a)
		if err != nil {
			return err
		}

		logger.DebugKV(ctx, "plots written", "count", len(paths), "dir", dir)
	}

	if path := settings.Output.DBPath; path != "" {
		db, err := store.Open(ctx, path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Save(ctx, doc); err != nil {
			return err
		}

		logger.DebugKV(ctx, "results stored", "run", doc.RunID, "db", path)
	}

	return nil
}
