// Package web streams a live autopilot game to browsers over WebSocket.
// One goroutine owns the engine; every tick it encodes a Frame and hands
// the bytes to a hub that fans them out to connected clients.
package web

import (
	"encoding/json"

	"github.com/vovakirdan/snakebot/internal/snake"
)

// Point is a board cell on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Frame is the JSON message sent to clients after every tick.
type Frame struct {
	Tick       uint64  `json:"tick"`
	Grid       int     `json:"grid"`
	Snake      []Point `json:"snake"` // head first
	Food       Point   `json:"food"`
	HasFood    bool    `json:"has_food"`
	Score      int     `json:"score"`
	Status     string  `json:"status"`
	Autonomous bool    `json:"autonomous"`
	Outcome    string  `json:"outcome"`
	Decision   string  `json:"decision"`
	RunID      string  `json:"run_id,omitempty"`
}

// FrameFromSnapshot converts engine state into a wire frame.
func FrameFromSnapshot(runID string, snap snake.Snapshot, out snake.Outcome) Frame {
	body := make([]Point, len(snap.Snake))
	for i, c := range snap.Snake {
		body[i] = Point{X: c.X, Y: c.Y}
	}
	return Frame{
		Tick:       snap.Tick,
		Grid:       snap.GridWidth,
		Snake:      body,
		Food:       Point{X: snap.Food.X, Y: snap.Food.Y},
		HasFood:    snap.HasFood,
		Score:      snap.Score,
		Status:     snap.Status.String(),
		Autonomous: snap.Autonomous,
		Outcome:    out.String(),
		Decision:   snap.LastDecision.Source.String(),
		RunID:      runID,
	}
}

// Encode marshals the frame once so every client gets the same bytes.
func (f Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}
