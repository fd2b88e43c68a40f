package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration snakebot would run with, as YAML.

The output merges the built-in defaults, ~/.snakebot/configs/snake.yaml (or --config)
and --difficulty, so it can be saved as a starting point:

  snakebot config > ~/.snakebot/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Println()
	}
}
