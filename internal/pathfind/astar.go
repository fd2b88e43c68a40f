// Package pathfind implements the autopilot: an A* search from the snake's
// head to the food and the fallback policies used when no route exists.
//
// Everything here is deterministic. Ties between frontier nodes with equal
// f-score go to the node inserted first, and neighbours are always expanded
// in the order right, left, down, up, so the same board always yields the
// same path.
package pathfind

import (
	"container/heap"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/snakebot/internal/core"
)

// searchNode is a frontier entry, alive for one FindPath call.
type searchNode struct {
	cell  core.Cell
	g     int // best known cost from start
	f     int // g + heuristic
	seq   int // insertion order, breaks f ties
	index int // position in the heap
}

// frontier is a min-heap over (f, seq).
type frontier []*searchNode

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontier) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *frontier) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

// FindPath returns the lowest-cost route from start to goal on a square grid
// of the given side, moving orthogonally and never entering an obstacle cell.
// The returned slice holds every cell from start to goal inclusive.
// ok is false when the goal cannot be reached; that is a normal outcome.
//
// The start cell is never tested against obstacles, so the snake's own head
// may be part of the set.
func FindPath(start, goal core.Cell, obstacles mapset.Set[core.Cell], width int) (path []core.Cell, ok bool) {
	if !start.In(width) || !goal.In(width) {
		return nil, false
	}

	open := &frontier{}
	inOpen := make(map[core.Cell]*searchNode)
	closed := mapset.New[core.Cell]()
	cameFrom := make(map[core.Cell]core.Cell)
	seq := 0

	root := &searchNode{cell: start, g: 0, f: start.Manhattan(goal), seq: seq}
	seq++
	heap.Push(open, root)
	inOpen[start] = root

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(inOpen, current.cell)

		if current.cell == goal {
			return reconstruct(cameFrom, start, goal), true
		}
		closed.Put(current.cell)

		for _, d := range core.Directions {
			next := current.cell.Add(d)
			if !next.In(width) || obstacles.Has(next) || closed.Has(next) {
				continue
			}

			tentative := current.g + 1
			node, seen := inOpen[next]
			if !seen {
				node = &searchNode{cell: next, seq: seq}
				seq++
				node.g = tentative
				node.f = tentative + next.Manhattan(goal)
				heap.Push(open, node)
				inOpen[next] = node
			} else if tentative < node.g {
				// Keep the original seq: a better cost never changes insertion order.
				node.g = tentative
				node.f = tentative + next.Manhattan(goal)
				heap.Fix(open, node.index)
			} else {
				continue
			}
			cameFrom[next] = current.cell
		}
	}

	return nil, false
}

// reconstruct walks parent links back from goal to start.
func reconstruct(cameFrom map[core.Cell]core.Cell, start, goal core.Cell) []core.Cell {
	path := []core.Cell{goal}
	for c := goal; c != start; {
		c = cameFrom[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Obstacles builds the blocked-cell set for a search from the snake's head.
// With includeTail false the last segment is left passable, since it moves
// out of the way on the same tick the head moves.
func Obstacles(body []core.Cell, includeTail bool) mapset.Set[core.Cell] {
	n := len(body)
	if !includeTail && n > 0 {
		n--
	}
	set := mapset.New[core.Cell]()
	for _, c := range body[:n] {
		set.Put(c)
	}
	return set
}
