// Package recording archives autopilot games tick by tick as Parquet files.
package recording

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/snakebot/internal/snake"
)

// SchemaVersion is stored under the "schema" key of every file.
const SchemaVersion = "snake_tick_v1"

// TickRow is the board after one tick of one run.
//
// Body is split into parallel X/Y columns, head first, which compresses far
// better than a nested list of points.
type TickRow struct {
	RunID    string `parquet:"run_id,dict"`
	Tick     int32  `parquet:"tick"`
	Grid     int32  `parquet:"grid"`
	HeadX    int32  `parquet:"head_x"`
	HeadY    int32  `parquet:"head_y"`
	FoodX    int32  `parquet:"food_x"`
	FoodY    int32  `parquet:"food_y"`
	HasFood  bool   `parquet:"has_food"`
	DirX     int32  `parquet:"dir_x"`
	DirY     int32  `parquet:"dir_y"`
	Length   int32  `parquet:"length"`
	Score    int32  `parquet:"score"`
	Outcome  string `parquet:"outcome,dict"`
	Decision string `parquet:"decision,dict"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
}

// RowFromSnapshot converts the state after a tick into a row.
func RowFromSnapshot(runID string, snap snake.Snapshot, out snake.Outcome) TickRow {
	row := TickRow{
		RunID:    runID,
		Tick:     int32(snap.Tick),
		Grid:     int32(snap.GridWidth),
		FoodX:    int32(snap.Food.X),
		FoodY:    int32(snap.Food.Y),
		HasFood:  snap.HasFood,
		DirX:     int32(snap.Direction.DX),
		DirY:     int32(snap.Direction.DY),
		Length:   int32(snap.Length),
		Score:    int32(snap.Score),
		Outcome:  out.String(),
		Decision: snap.LastDecision.Source.String(),
		BodyX:    make([]int32, len(snap.Snake)),
		BodyY:    make([]int32, len(snap.Snake)),
	}
	for i, c := range snap.Snake {
		row.BodyX[i] = int32(c.X)
		row.BodyY[i] = int32(c.Y)
	}
	if len(snap.Snake) > 0 {
		row.HeadX = row.BodyX[0]
		row.HeadY = row.BodyY[0]
	}
	return row
}

// WriteFile writes rows to path, creating parent directories.
// The file appears under its final name only once fully written.
func WriteFile(path string, rows []TickRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("recording: create output dir: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("recording: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("recording: rename parquet: %w", err)
	}
	return nil
}

// ErrSchema is returned when a file was not written by this package.
var ErrSchema = errors.New("recording: unexpected schema")

// ReadFile loads every row of a recording.
func ReadFile(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recording: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("recording: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("recording: open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); !ok || v != SchemaVersion {
		return nil, fmt.Errorf("%w: %q", ErrSchema, v)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	rows := make([]TickRow, 0, reader.NumRows())
	for {
		buf := make([]TickRow, 256)
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("recording: read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows, nil
}
