package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
)

var (
	flagAuto bool
	flagGrid int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game straight away, without the menu.

Controls:
  Arrows/WASD  - Steer
  Enter        - Start
  Space/P      - Pause
  T            - Toggle autopilot
  R            - Reset the board
  Tab          - High scores
  B/Esc        - Menu
  Q/Ctrl+C     - Quit

Games where the autopilot moved the snake even once are ranked on the
autopilot board, not the manual one.

Examples:
  snakebot play
  snakebot play --grid 30
  snakebot play --auto --difficulty hard
  snakebot play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Start with the autopilot driving")
	playCmd.Flags().IntVar(&flagGrid, "grid", 0, "Board side in cells (default: config board.grid_width)")
}

func runPlay(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}
	if flagGrid != 0 {
		settings.Options.GridWidth = flagGrid
	}

	store, scores := openScores()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	runErr := tui.RunSession(tui.SessionConfig{
		Settings:    settings,
		Store:       scores,
		Width:       width,
		Height:      height,
		StartInGame: true,
		Autopilot:   flagAuto || settings.Options.Autonomous,
	})
	if runErr != nil {
		if store != nil {
			store.Close()
		}
		exitf("%v", runErr)
	}
}
