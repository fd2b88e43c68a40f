package recording

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/vovakirdan/snakebot/internal/snake"
)

// Recorder buffers the rows of many runs and writes them as one file.
// Observe is safe to call from parallel autoplay workers.
type Recorder struct {
	dir string

	mu   sync.Mutex
	rows []TickRow
	runs int
}

// NewRecorder returns a recorder that writes into dir.
func NewRecorder(dir string) *Recorder {
	return &Recorder{dir: dir}
}

// Observe appends the state after one tick.
func (r *Recorder) Observe(runID string, snap snake.Snapshot, out snake.Outcome) {
	row := RowFromSnapshot(runID, snap, out)

	r.mu.Lock()
	r.rows = append(r.rows, row)
	r.mu.Unlock()
}

// AddRun appends a whole run at once and counts it.
func (r *Recorder) AddRun(rows []TickRow) {
	r.mu.Lock()
	r.rows = append(r.rows, rows...)
	r.runs++
	r.mu.Unlock()
}

// Buffered returns the number of rows and completed runs waiting to be flushed.
func (r *Recorder) Buffered() (rows, runs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), r.runs
}

// Flush writes everything buffered to <dir>/<name>.parquet and clears the
// buffer. With nothing buffered it writes no file and returns "".
func (r *Recorder) Flush(name string) (string, error) {
	r.mu.Lock()
	rows := r.rows
	r.rows = nil
	r.runs = 0
	r.mu.Unlock()

	if len(rows) == 0 {
		return "", nil
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s.parquet", name))
	if err := WriteFile(path, rows); err != nil {
		return "", err
	}
	return path, nil
}
