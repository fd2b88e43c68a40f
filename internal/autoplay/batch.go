package autoplay

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snakebot/internal/recording"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// RunSaver persists finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(r storage.RunRecord) (int64, error)
}

// BatchConfig describes a set of independent autopilot games.
type BatchConfig struct {
	Config
	Games    int
	Parallel int   // concurrent games; 0 means GOMAXPROCS
	BaseSeed int64 // game i uses BaseSeed+i

	Store    RunSaver            // optional
	Recorder *recording.Recorder // optional; enables per-tick rows
	Logger   *log.Logger         // optional
}

// Summary aggregates a batch. Results are in game order.
type Summary struct {
	Results   []Result
	BestScore int
	AvgScore  float64
	AvgLength float64
	Reasons   map[string]int
	Elapsed   time.Duration
}

// RunBatch plays bc.Games games with at most bc.Parallel running at once.
// A storage failure stops the batch; games already finished are kept.
func RunBatch(ctx context.Context, bc BatchConfig) (Summary, error) {
	if bc.Games <= 0 {
		return Summary{}, fmt.Errorf("autoplay: games must be positive, got %d", bc.Games)
	}
	parallel := bc.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	cfg := bc.Config
	cfg.Record = cfg.Record || bc.Recorder != nil

	started := time.Now()
	results := make([]Result, bc.Games)
	done := make([]bool, bc.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := 0; i < bc.Games; i++ {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			seed := bc.BaseSeed + int64(i)
			res, err := Run(gctx, cfg, seed)
			if err != nil {
				return err
			}

			if bc.Store != nil {
				if _, err := bc.Store.SaveRun(res.Record(cfg.Options)); err != nil {
					return err
				}
			}
			if bc.Recorder != nil {
				bc.Recorder.AddRun(res.Rows)
			}
			if bc.Logger != nil {
				bc.Logger.Debug("run finished",
					"game", i+1,
					"run", res.RunID,
					"seed", seed,
					"score", res.Score,
					"length", res.Length,
					"ticks", res.Ticks,
					"reason", res.EndReason,
				)
			}

			// Rows now live in the recorder.
			res.Rows = nil
			results[i] = res
			done[i] = true
			return nil
		})
	}

	err := g.Wait()

	kept := make([]Result, 0, bc.Games)
	for i, ok := range done {
		if ok {
			kept = append(kept, results[i])
		}
	}
	sum := summarize(kept)
	sum.Elapsed = time.Since(started)

	if bc.Logger != nil {
		bc.Logger.Info("batch finished",
			"games", len(kept),
			"best", sum.BestScore,
			"avg_score", fmt.Sprintf("%.1f", sum.AvgScore),
			"avg_length", fmt.Sprintf("%.1f", sum.AvgLength),
			"elapsed", sum.Elapsed.Round(time.Millisecond),
		)
	}
	return sum, err
}

func summarize(results []Result) Summary {
	sum := Summary{
		Results: results,
		Reasons: make(map[string]int),
	}
	if len(results) == 0 {
		return sum
	}

	var totalScore, totalLen int
	for _, r := range results {
		totalScore += r.Score
		totalLen += r.Length
		sum.BestScore = max(sum.BestScore, r.Score)
		sum.Reasons[r.EndReason]++
	}
	sum.AvgScore = float64(totalScore) / float64(len(results))
	sum.AvgLength = float64(totalLen) / float64(len(results))
	return sum
}
