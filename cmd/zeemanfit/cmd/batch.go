package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-zeeman/internal/batch"
	"github.com/cwbudde/algo-zeeman/internal/logger"
	"github.com/cwbudde/algo-zeeman/internal/plotting"
	"github.com/cwbudde/algo-zeeman/internal/report"
	"github.com/cwbudde/algo-zeeman/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch spectrum.dat...",
	Short: "Analyse many spectra concurrently.",
	Long: `Runs the Hα pipeline on every file with a bounded worker pool.

With --out each report is written to <out>/<name><ext>; otherwise reports go
to stdout. Results are added to --db when it is set. Files that fail are
logged and counted; the command exits non-zero if any failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, pipeline, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		outDir, _ := cmd.Flags().GetString("out")

		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		var db *store.Store
		if settings.Output.DBPath != "" {
			if db, err = store.Open(ctx, settings.Output.DBPath); err != nil {
				return err
			}
			defer db.Close()
		}

		pool := batch.New(pipeline, settings.Output.Workers)
		failed := 0

		err = pool.Run(ctx, args, func(o batch.Outcome) error {
			if o.Err != nil {
				failed++
				logger.WarnKV(ctx, "spectrum failed", "path", o.Path, "error", o.Err)
			}

			if o.Analysis == nil {
				return nil
			}

			if settings.Output.PlotsDir != "" {
				if _, err := plotting.Render(settings.Output.PlotsDir, o.Document.Source+"-", o.Analysis); err != nil {
					return err
				}
			}

			if db != nil {
				if err := db.Save(ctx, o.Document); err != nil {
					return err
				}
			}

			if outDir == "" {
				return report.Encode(cmd.OutOrStdout(), settings.Output.Format, o.Document)
			}

			path := filepath.Join(outDir, o.Document.Source+report.Extension(settings.Output.Format))

			f, err := os.Create(filepath.Clean(path))
			if err != nil {
				return err
			}

			if err := report.Encode(f, settings.Output.Format, o.Document); err != nil {
				_ = f.Close()
				return err
			}

			return f.Close()
		})
		if err != nil {
			return err
		}

		logger.InfoKV(ctx, "batch finished", "spectra", len(args), "failed", failed, "workers", pool.Workers())

		if failed > 0 {
			return fmt.Errorf("%d of %d spectra failed", failed, len(args))
		}

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addPipelineFlags(batchCmd.Flags())
	batchCmd.Flags().IntP("workers", "w", 0, "concurrent spectra (0 = GOMAXPROCS)")
	batchCmd.Flags().StringP("out", "o", "", "directory for per-spectrum reports")
}
