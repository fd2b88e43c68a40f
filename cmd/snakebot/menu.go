package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start snakebot with the start menu",
	Long: `Start snakebot in interactive menu mode.

Pick Play for a manual game, Watch autopilot to let the A* autopilot play,
cycle the difficulty with Left/Right, or open the high scores.
Leaving a game with B or Esc brings you back here.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  snakebot menu
  snakebot menu --difficulty easy
  snakebot menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	settings, err := loadSettings()
	if err != nil {
		exitf("%v", err)
	}

	store, scores := openScores()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	runErr := tui.RunSession(tui.SessionConfig{
		Settings: settings,
		Store:    scores,
		Width:    width,
		Height:   height,
	})
	if runErr != nil {
		if store != nil {
			store.Close()
		}
		exitf("%v", runErr)
	}
}
