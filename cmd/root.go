package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transitlab/busplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "busplan",
	Short: "Battery-feasibility checks for electric bus plans",
	Long: `busplan validates an electric bus operating schedule: it normalizes
trip times onto a continuous operating day, fills idle gaps, detects
overlapping assignments and simulates battery state of charge per bus.
Infeasible plans can be patched by inserting charging sessions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the --config file, or returns defaults when no file
// was given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
