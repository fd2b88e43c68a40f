package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/storage"
)

var (
	flagMode  string
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores for manual or autopilot games.

A game is ranked on the autopilot board if the autopilot drove the snake
for at least one move.

Examples:
  snakebot scores
  snakebot scores --mode auto --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent autopilot runs",
	Long: `Display the most recent runs recorded by 'snakebot simulate', followed by
per-policy averages over every stored run.

Examples:
  snakebot runs
  snakebot runs --limit 50`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	scoresCmd.Flags().StringVar(&flagMode, "mode", storage.ModeManual, "Leaderboard: manual or auto")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	if !storage.ValidMode(flagMode) {
		exitf("unknown mode %q (want %s or %s)", flagMode, storage.ModeManual, storage.ModeAuto)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(flagMode, flagLimit)
	if err != nil {
		store.Close()
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", modeTitle(flagMode))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		if flagMode == storage.ModeAuto {
			fmt.Println("Play 'snakebot play --auto' to set the first high score!")
		} else {
			fmt.Println("Play 'snakebot play' to set the first high score!")
		}
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Length", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-6d  %s\n", i+1, entry.Score, entry.Length,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetModeStats(flagMode); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d over %d games (avg %.1f, longest snake %d)\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestLen)
	}
}

func modeTitle(mode string) string {
	if mode == storage.ModeAuto {
		return "Autopilot"
	}
	return "Manual"
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		store.Close()
		exitf("retrieving runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No autopilot runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snakebot simulate' to record some.")
		return
	}

	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-8s  %-12s  %-4s  %-6s  %-6s  %-7s  %-10s  %s\n",
		"Run", "Policy", "Grid", "Score", "Length", "Ticks", "End", "Date")
	fmt.Printf("  %-8s  %-12s  %-4s  %-6s  %-6s  %-7s  %-10s  %s\n",
		"---", "------", "----", "-----", "------", "-----", "---", "----")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-12s  %-4d  %-6d  %-6d  %-7d  %-10s  %s\n",
			shortID(r.RunID), r.Policy, r.GridWidth, r.Score, r.Length, r.Ticks,
			r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetPolicyStats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("By policy")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-5s  %-9s  %-10s  %s\n", "Policy", "Runs", "Best", "Avg score", "Avg length", "Avg ticks")
	fmt.Printf("  %-12s  %-5s  %-5s  %-9s  %-10s  %s\n", "------", "----", "----", "---------", "----------", "---------")
	for _, s := range stats {
		fmt.Printf("  %-12s  %-5d  %-5d  %-9.1f  %-10.1f  %.1f\n",
			s.Policy, s.Runs, s.BestScore, s.AvgScore, s.AvgLength, s.AvgTicks)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
