package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakebot/internal/platform/web"
	"github.com/vovakirdan/snakebot/internal/recording"
	"github.com/vovakirdan/snakebot/internal/snake"
)

var (
	flagWatchAddr string
	flagWatchDir  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream a live autopilot game over WebSocket",
	Long: `Run an autopilot game forever and stream every tick as JSON to WebSocket
clients connected to /ws. A new game starts shortly after each one ends.
GET /healthz answers 200 while the server is up.

With --record, each finished game is written as a Parquet file.

Examples:
  snakebot watch
  snakebot watch --addr :8080 --difficulty hard
  snakebot watch --record ./runs`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchAddr, "addr", web.DefaultAddr, "HTTP listen address")
	watchCmd.Flags().StringVar(&flagWatchDir, "record", "", "Directory for per-game Parquet recordings")
}

func runWatch(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	opts, err := snake.OptionsFromConfig(cfg)
	if err != nil {
		exitf("%v", err)
	}

	var rec *recording.Recorder
	if flagWatchDir != "" {
		rec = recording.NewRecorder(flagWatchDir)
	}

	srv, err := web.New(web.Config{
		Addr:     flagWatchAddr,
		Options:  opts,
		Pace:     cfg.Pace,
		Seed:     flagSeed,
		Recorder: rec,
		Logger:   newLogger("snakebot-watch"),
	})
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Streaming on ws://localhost%s/ws\n", flagWatchAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.Run(ctx); err != nil {
		stop()
		exitf("%v", err)
	}
}
