// snakebot is a terminal snake game with an A* autopilot.
//
// Usage:
//
//	snakebot play            - Play a game in the terminal
//	snakebot menu            - Start menu (play, watch autopilot, scores)
//	snakebot simulate        - Run headless autopilot games
//	snakebot scores          - Show high scores
//	snakebot runs            - Show recent autopilot runs
//	snakebot policies        - List autopilot fallback policies
//	snakebot config          - Print the effective configuration
//	snakebot serve           - Start SSH server for remote play
//	snakebot watch           - Stream a live autopilot game over WebSocket
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.snakebot/scores.db)
//	--config <path>       - Use a custom snake.yaml
//	--difficulty <level>  - Pace preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/platform/tui"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakebot",
	Short: "Snake in your terminal, with an A* autopilot",
	Long: `snakebot is a terminal snake game whose autopilot steers along the
shortest path to the food and falls back to a survival policy when no path
exists.

Available commands:
  play      - Play a game directly
  menu      - Interactive start menu
  simulate  - Headless autopilot batches
  scores    - View high scores
  runs      - View recent autopilot runs
  policies  - List fallback policies
  config    - Print the effective configuration
  serve     - Start SSH server for remote play
  watch     - Stream a live autopilot game over WebSocket

Examples:
  snakebot play
  snakebot play --auto --difficulty hard
  snakebot simulate --games 200 --parallel 8 --record ./runs
  snakebot serve --ssh :2222
  snakebot watch --addr :12000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakebot/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Pace preset: easy, normal, hard (default: config file pace)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every run and connection")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}

// exitf prints an error in the CLI's format and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the snake config and applies --difficulty on top.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.SnakeConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadSettings builds the game settings every interactive driver shares.
func loadSettings() (tui.GameSettings, error) {
	cfg, err := loadConfig()
	if err != nil {
		return tui.GameSettings{}, err
	}
	opts, err := snake.OptionsFromConfig(cfg)
	if err != nil {
		return tui.GameSettings{}, err
	}
	preset, _ := config.ParsePreset(flagDifficulty) // checked by loadConfig
	return tui.GameSettings{
		Options: opts,
		Pace:    cfg.Pace,
		Preset:  preset,
		Seed:    flagSeed,
	}, nil
}

// openScores opens the database for interactive play. A failure only costs
// persistence, so it is reported and the game goes on.
func openScores() (*storage.Store, tui.ScoreStore) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil, nil
	}
	return store, store
}

// newLogger returns the shared charmbracelet logger for a command.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
