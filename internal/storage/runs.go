package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run end reasons.
const (
	EndCollision = "collision"  // wall or self
	EndMaxTicks  = "max_ticks"  // tick budget exhausted while alive
	EndBoardFull = "board_full" // snake covers every cell
	EndCancelled = "cancelled"  // context cancelled mid-run
)

// RunRecord is one headless autopilot game.
type RunRecord struct {
	ID        int64
	RunID     string // uuid
	Seed      int64
	Policy    string
	TailRule  string
	GridWidth int
	Score     int
	Length    int
	Ticks     int
	EndReason string
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveRun records a finished autopilot run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, seed, policy, tail_rule, grid_width, score, length, ticks, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.Seed,
		r.Policy,
		r.TailRule,
		r.GridWidth,
		r.Score,
		r.Length,
		r.Ticks,
		r.EndReason,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, seed, policy, tail_rule, grid_width,
	score, length, ticks, end_reason, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var r RunRecord
	var durationMs int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.RunID,
		&r.Seed,
		&r.Policy,
		&r.TailRule,
		&r.GridWidth,
		&r.Score,
		&r.Length,
		&r.Ticks,
		&r.EndReason,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its uuid. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// PolicyStats aggregates runs for one fallback policy.
type PolicyStats struct {
	Policy    string
	Runs      int
	BestScore int
	AvgScore  float64
	AvgLength float64
	AvgTicks  float64
}

// GetPolicyStats retrieves run statistics grouped by policy, sorted by name.
func (s *Store) GetPolicyStats() ([]PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), MAX(score), AVG(score), AVG(length), AVG(ticks)
		 FROM runs
		 GROUP BY policy
		 ORDER BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	defer rows.Close()

	var stats []PolicyStats
	for rows.Next() {
		var p PolicyStats
		if err := rows.Scan(&p.Policy, &p.Runs, &p.BestScore, &p.AvgScore, &p.AvgLength, &p.AvgTicks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
