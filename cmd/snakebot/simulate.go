package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/autoplay"
	"github.com/vovakirdan/snakebot/internal/recording"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

var (
	flagGames     int
	flagMaxTicks  int
	flagParallel  int
	flagRecordDir string
	flagPolicy    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot games",
	Long: `Play a batch of autopilot games without a terminal UI.

Every finished run is stored in the scores database and shows up in
'snakebot runs'. With --record, the tick-by-tick history of the whole
batch is written as one Parquet file into the given directory.

Game i uses seed --seed+i, so a batch with a fixed --seed is reproducible.

Examples:
  snakebot simulate
  snakebot simulate --games 500 --parallel 8
  snakebot simulate --policy first-safe --seed 1 --record ./runs`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Tick budget per game (0 = default)")
	simulateCmd.Flags().IntVar(&flagParallel, "parallel", 0, "Games running at once (0 = one per CPU)")
	simulateCmd.Flags().StringVar(&flagRecordDir, "record", "", "Directory for the Parquet tick archive")
	simulateCmd.Flags().StringVar(&flagPolicy, "policy", "", "Fallback policy (default: config autopilot.fallback)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	opts, err := snake.OptionsFromConfig(cfg)
	if err != nil {
		exitf("%v", err)
	}
	if flagPolicy != "" {
		if !registry.Exists(flagPolicy) {
			exitf("unknown policy %q\nRun 'snakebot policies' to see available policies.", flagPolicy)
		}
		opts.Fallback = flagPolicy
	}
	opts.Autonomous = true

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	var rec *recording.Recorder
	if flagRecordDir != "" {
		rec = recording.NewRecorder(flagRecordDir)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger("snakebot-sim")
	logger.Info("starting batch",
		"games", flagGames,
		"grid", opts.GridWidth,
		"policy", opts.Fallback,
		"tail", opts.Tail,
		"seed", seed,
	)

	sum, runErr := autoplay.RunBatch(ctx, autoplay.BatchConfig{
		Config:   autoplay.Config{Options: opts, MaxTicks: flagMaxTicks},
		Games:    flagGames,
		Parallel: flagParallel,
		BaseSeed: seed,
		Store:    store,
		Recorder: rec,
		Logger:   logger,
	})

	if rec != nil {
		name := fmt.Sprintf("batch_%s", time.Now().Format("20060102_150405"))
		path, err := rec.Flush(name)
		if err != nil {
			logger.Error("cannot write recording", "error", err)
		} else if path != "" {
			logger.Info("recording written", "path", path)
		}
	}

	printSummary(sum)

	if runErr != nil {
		store.Close()
		exitf("%v", runErr)
	}
}

func printSummary(sum autoplay.Summary) {
	fmt.Println()
	fmt.Printf("Games played:   %d\n", len(sum.Results))
	if len(sum.Results) == 0 {
		return
	}
	fmt.Printf("Best score:     %d\n", sum.BestScore)
	fmt.Printf("Average score:  %.1f\n", sum.AvgScore)
	fmt.Printf("Average length: %.1f\n", sum.AvgLength)
	fmt.Printf("Elapsed:        %s\n", sum.Elapsed.Round(time.Millisecond))

	reasons := make([]string, 0, len(sum.Reasons))
	for r := range sum.Reasons {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)

	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "End", "Games")
	fmt.Printf("  %-12s  %s\n", "---", "-----")
	for _, r := range reasons {
		fmt.Printf("  %-12s  %d\n", r, sum.Reasons[r])
	}
}
