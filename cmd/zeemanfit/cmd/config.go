package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-zeeman/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or inspect settings.",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default settings as a YAML template.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultFilename
		if len(args) > 0 {
			path = args[0]
		}

		d := config.Default()
		if err := config.Save(path, &d); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

		return err
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after file, environment and flags.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, _, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(settings); err != nil {
			return err
		}

		return enc.Close()
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addPipelineFlags(configShowCmd.Flags())
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
