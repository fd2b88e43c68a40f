package pathfind

import (
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/registry"
)

// Source tells where an autopilot heading came from.
type Source int

const (
	SourceNone     Source = iota // no decision made yet
	SourcePath                   // first step of an A* route to the food
	SourceFallback               // no route; fallback policy picked a safe heading
	SourceStuck                  // no safe heading; current direction kept
)

// String returns a short label for logs and HUDs.
func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceFallback:
		return "fallback"
	case SourceStuck:
		return "stuck"
	default:
		return "none"
	}
}

// Request is everything the autopilot needs to pick the next heading.
type Request struct {
	Body    []core.Cell    // head first
	Food    core.Cell
	HasFood bool           // false once the board is full
	Current core.Direction // heading kept when nothing is safe
	Width   int            // side of the square board

	// TailBlocks keeps the tail in the obstacle set. Set it when the engine
	// treats a move onto the current tail as a collision.
	TailBlocks bool

	// Fallback runs when no route to the food exists. Nil means FirstSafe.
	Fallback registry.Fallback
}

// Decision is the autopilot's answer for one tick.
type Decision struct {
	Direction core.Direction
	Source    Source
	PathLen   int // cells in the route, 0 when no route was used
}

// Decide picks the next heading: follow a shortest route to the food when one
// exists, otherwise ask the fallback for a safe heading, otherwise keep the
// current direction and accept the collision.
func Decide(req Request) Decision {
	if len(req.Body) == 0 {
		return Decision{Direction: req.Current, Source: SourceStuck}
	}
	head := req.Body[0]

	if req.HasFood {
		path, ok := FindPath(head, req.Food, Obstacles(req.Body, req.TailBlocks), req.Width)
		if ok && len(path) > 1 {
			return Decision{
				Direction: core.Between(head, path[1]),
				Source:    SourcePath,
				PathLen:   len(path),
			}
		}
	}

	fallback := req.Fallback
	if fallback == nil {
		fallback = FirstSafe
	}
	if dir, ok := fallback(req.Body, req.Width); ok {
		return Decision{Direction: dir, Source: SourceFallback}
	}

	return Decision{Direction: req.Current, Source: SourceStuck}
}
