package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var tuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Print the default tuning file",
	Long: `Print the built-in tuning file (world size, physics, spawn timers and
economy) as YAML. Save it and pass it with --config, or place it at
~/.runner/configs/runner.yaml, to override any value.

Examples:
  runner tuning > ~/.runner/configs/runner.yaml
  runner tuning > ./runner.yaml && runner play --config ./runner.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
