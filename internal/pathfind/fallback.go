package pathfind

import (
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/registry"
)

// Registered fallback policy names.
const (
	PolicyFirstSafe = "first-safe"
	PolicyOpenSpace = "open-space"

	DefaultPolicy = PolicyOpenSpace
)

func init() {
	registry.Register(PolicyFirstSafe,
		"first heading (right, left, down, up) that stays on the board and off the body",
		FirstSafe)
	registry.Register(PolicyOpenSpace,
		"safe heading with the most free cells in its 3x3 neighbourhood",
		OpenSpace)
}

// candidate is a heading that does not kill the snake on the next move.
type candidate struct {
	dir  core.Direction
	cell core.Cell
}

// safeCandidates filters the four headings against the board edge and every
// body cell, tail included. Order follows core.Directions.
func safeCandidates(body []core.Cell, width int) []candidate {
	if len(body) == 0 {
		return nil
	}
	occupied := Obstacles(body, true)
	head := body[0]

	out := make([]candidate, 0, len(core.Directions))
	for _, d := range core.Directions {
		next := head.Add(d)
		if !next.In(width) || occupied.Has(next) {
			continue
		}
		out = append(out, candidate{dir: d, cell: next})
	}
	return out
}

// FirstSafe returns the first surviving heading in fixed order.
func FirstSafe(body []core.Cell, width int) (core.Direction, bool) {
	cands := safeCandidates(body, width)
	if len(cands) == 0 {
		return core.Direction{}, false
	}
	return cands[0].dir, true
}

// OpenSpace returns the surviving heading whose target cell has the most free
// in-grid cells around it (3x3 block, the target itself included).
// Ties keep the earlier heading in fixed order.
func OpenSpace(body []core.Cell, width int) (core.Direction, bool) {
	cands := safeCandidates(body, width)
	if len(cands) == 0 {
		return core.Direction{}, false
	}

	occupied := Obstacles(body, true)
	best, bestSpace := cands[0].dir, -1
	for _, c := range cands {
		if space := freeAround(c.cell, occupied.Has, width); space > bestSpace {
			best, bestSpace = c.dir, space
		}
	}
	return best, true
}

// freeAround counts unoccupied in-grid cells in the 3x3 block centred on c.
func freeAround(c core.Cell, occupied func(core.Cell) bool, width int) int {
	free := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := core.Cell{X: c.X + dx, Y: c.Y + dy}
			if n.In(width) && !occupied(n) {
				free++
			}
		}
	}
	return free
}
