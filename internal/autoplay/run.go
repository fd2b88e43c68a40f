// Package autoplay drives autopilot games headlessly, one at a time or in
// parallel batches, and reports what happened to each.
package autoplay

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/recording"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// DefaultMaxTicks bounds a single run when no limit is configured.
const DefaultMaxTicks = 10000

// Config describes one autopilot game.
type Config struct {
	Options  snake.Options
	MaxTicks int  // 0 means DefaultMaxTicks
	Record   bool // keep one TickRow per tick in Result.Rows
}

// Result is the outcome of one run.
type Result struct {
	RunID     string
	Seed      int64
	Score     int
	Length    int
	Ticks     int
	EndReason string
	Duration  time.Duration
	BoardFull bool
	Decisions map[pathfind.Source]int
	Rows      []recording.TickRow
}

// Record converts a result into its storage row.
func (r Result) Record(opts snake.Options) storage.RunRecord {
	return storage.RunRecord{
		RunID:     r.RunID,
		Seed:      r.Seed,
		Policy:    opts.Fallback,
		TailRule:  opts.Tail.String(),
		GridWidth: opts.GridWidth,
		Score:     r.Score,
		Length:    r.Length,
		Ticks:     r.Ticks,
		EndReason: r.EndReason,
		Duration:  r.Duration,
	}
}

// Run plays one autopilot game seeded with seed until the snake dies, fills
// the board, the tick budget runs out or ctx is cancelled.
func Run(ctx context.Context, cfg Config, seed int64) (Result, error) {
	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	e, err := snake.New(cfg.Options, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Result{}, fmt.Errorf("autoplay: %w", err)
	}
	e.SetAutonomous(true)
	e.Start()

	res := Result{
		RunID:     uuid.NewString(),
		Seed:      seed,
		Decisions: make(map[pathfind.Source]int),
	}
	started := time.Now()

	for {
		select {
		case <-ctx.Done():
			res.EndReason = storage.EndCancelled
			return finish(res, e, started), nil
		default:
		}

		out := e.Tick()
		snap := e.Snapshot()
		res.Decisions[snap.LastDecision.Source]++
		if cfg.Record {
			res.Rows = append(res.Rows, recording.RowFromSnapshot(res.RunID, snap, out))
		}

		switch {
		case out == snake.GameOver:
			res.EndReason = storage.EndCollision
		case out == snake.FoodEaten && !snap.HasFood:
			res.EndReason = storage.EndBoardFull
			res.BoardFull = true
		case snap.Tick >= uint64(maxTicks):
			res.EndReason = storage.EndMaxTicks
		default:
			continue
		}
		return finish(res, e, started), nil
	}
}

func finish(res Result, e *snake.Engine, started time.Time) Result {
	snap := e.Snapshot()
	res.Score = snap.Score
	res.Length = snap.Length
	res.Ticks = int(snap.Tick)
	res.Duration = time.Since(started)
	return res
}
