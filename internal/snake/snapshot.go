package snake

import (
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/pathfind"
)

// Snapshot is a read-only copy of the game state for renderers, recorders
// and tests. It shares no memory with the engine.
type Snapshot struct {
	Snake        []core.Cell // head first
	Food         core.Cell
	HasFood      bool
	Direction    core.Direction
	Score        int
	Status       Status
	Autonomous   bool
	GridWidth    int
	Tick         uint64
	Length       int
	LastDecision pathfind.Decision // zero unless autopilot moved this game
}

// Head returns the head cell.
func (s Snapshot) Head() core.Cell {
	return s.Snake[0]
}

// Occupies reports whether c is part of the snake.
func (s Snapshot) Occupies(c core.Cell) bool {
	for _, seg := range s.Snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Snapshot returns the current game state.
func (e *Engine) Snapshot() Snapshot {
	body := make([]core.Cell, len(e.snake))
	copy(body, e.snake)

	return Snapshot{
		Snake:        body,
		Food:         e.food,
		HasFood:      e.hasFood,
		Direction:    e.direction,
		Score:        e.score,
		Status:       e.status,
		Autonomous:   e.autonomous,
		GridWidth:    e.width,
		Tick:         e.tick,
		Length:       len(body),
		LastDecision: e.last,
	}
}
