package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-zeeman/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "List one fitted parameter across stored spectra.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("db")
		model, _ := cmd.Flags().GetString("model")
		param, _ := cmd.Flags().GetString("param")

		if path == "" {
			return errors.New("--db is required")
		}

		db, err := store.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer db.Close()

		ms, err := db.Measurements(cmd.Context(), model, param)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "SOURCE\t%s\tSIGMA\tRUN\n", param)

		for _, m := range ms {
			fmt.Fprintf(tw, "%s\t%.8g\t%.3g\t%s\n", m.Source, m.Value, m.Sigma, m.RunID)
		}

		return tw.Flush()
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	compareCmd.Flags().String("db", "", "SQLite results database")
	compareCmd.Flags().String("model", "lorentzian", "model whose fits to list")
	compareCmd.Flags().String("param", "B", "parameter to list")
}
