package pathfind

import (
	"testing"

	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/registry"
)

func TestDecideFollowsPath(t *testing.T) {
	tests := []struct {
		name string
		body []core.Cell
		food core.Cell
		want core.Direction
	}{
		{"open grid", cells(10, 10), core.Cell{X: 15, Y: 15}, core.Right},
		{"from corner", cells(0, 0), core.Cell{X: 5, Y: 5}, core.Right},
		{"coiled body", cells(5, 5, 4, 5, 3, 5, 3, 4, 4, 4, 5, 4), core.Cell{X: 10, Y: 10}, core.Right},
		{"food behind", cells(10, 10, 11, 10, 12, 10), core.Cell{X: 10, Y: 3}, core.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(Request{
				Body:    tt.body,
				Food:    tt.food,
				HasFood: true,
				Current: core.Right,
				Width:   20,
			})
			if d.Source != SourcePath {
				t.Fatalf("Source = %v, expected path", d.Source)
			}
			if d.Direction != tt.want {
				t.Errorf("Direction = %v, expected %v", d.Direction, tt.want)
			}
			if !tt.body[0].Add(d.Direction).In(20) {
				t.Error("chosen move leaves the grid")
			}
		})
	}
}

func TestDecideTailRule(t *testing.T) {
	// Square body; the only short route to the food runs through the tail.
	body := cells(5, 5, 6, 5, 6, 6, 5, 6)
	food := core.Cell{X: 5, Y: 7}

	vacates := Decide(Request{Body: body, Food: food, HasFood: true, Current: core.Left, Width: 20})
	if vacates.Direction != core.Down || vacates.PathLen != 3 {
		t.Errorf("tail passable: got %v len %d, expected down len 3", vacates.Direction, vacates.PathLen)
	}

	blocks := Decide(Request{Body: body, Food: food, HasFood: true, Current: core.Left, Width: 20, TailBlocks: true})
	if blocks.Direction != core.Left {
		t.Errorf("tail blocked: got %v, expected left", blocks.Direction)
	}
	if blocks.Source != SourcePath {
		t.Errorf("tail blocked: Source = %v, expected path", blocks.Source)
	}
}

func TestDecideFallback(t *testing.T) {
	// Food at (0,0) is walled in by the body; no route exists.
	body := cells(3, 0, 2, 0, 1, 0, 1, 1, 0, 1, 0, 2)
	food := core.Cell{X: 0, Y: 0}

	if _, ok := FindPath(body[0], food, Obstacles(body, false), 20); ok {
		t.Fatal("board should have no route to the food")
	}

	tests := []struct {
		policy string
		want   core.Direction
	}{
		{PolicyOpenSpace, core.Down},
		{PolicyFirstSafe, core.Right},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			f, err := registry.Lookup(tt.policy)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.policy, err)
			}
			d := Decide(Request{Body: body, Food: food, HasFood: true, Current: core.Right, Width: 20, Fallback: f})
			if d.Source != SourceFallback {
				t.Fatalf("Source = %v, expected fallback", d.Source)
			}
			if d.Direction != tt.want {
				t.Errorf("Direction = %v, expected %v", d.Direction, tt.want)
			}
		})
	}
}

func TestDecideNilFallbackIsFirstSafe(t *testing.T) {
	body := cells(3, 0, 2, 0, 1, 0, 1, 1, 0, 1, 0, 2)
	d := Decide(Request{Body: body, Food: core.Cell{}, HasFood: true, Current: core.Right, Width: 20})
	if d.Direction != core.Right || d.Source != SourceFallback {
		t.Errorf("got %v/%v, expected right/fallback", d.Direction, d.Source)
	}
}

func TestDecideStuck(t *testing.T) {
	// Head in the corner, boxed in by its own body.
	body := cells(0, 0, 1, 0, 1, 1, 0, 1, 0, 2)

	for _, policy := range []string{PolicyFirstSafe, PolicyOpenSpace} {
		f, _ := registry.Lookup(policy)
		d := Decide(Request{Body: body, Food: core.Cell{X: 5, Y: 5}, HasFood: true, Current: core.Up, Width: 20, Fallback: f})
		if d.Source != SourceStuck {
			t.Errorf("%s: Source = %v, expected stuck", policy, d.Source)
		}
		if d.Direction != core.Up {
			t.Errorf("%s: Direction = %v, expected the current heading", policy, d.Direction)
		}
	}
}

func TestDecideNoFood(t *testing.T) {
	d := Decide(Request{Body: cells(2, 2, 1, 2), HasFood: false, Current: core.Right, Width: 5, Fallback: OpenSpace})
	if d.Source != SourceFallback {
		t.Errorf("Source = %v, expected fallback when the board has no food", d.Source)
	}
}

func TestFallbackPoliciesSafe(t *testing.T) {
	body := cells(4, 4, 3, 4, 3, 3)
	for _, f := range []registry.Fallback{FirstSafe, OpenSpace} {
		dir, ok := f(body, 5)
		if !ok {
			t.Fatal("expected a safe heading")
		}
		next := body[0].Add(dir)
		if !next.In(5) {
			t.Errorf("heading %v leaves the grid", dir)
		}
		for _, c := range body {
			if c == next {
				t.Errorf("heading %v runs into the body", dir)
			}
		}
	}
}

func TestOpenSpacePrefersRoom(t *testing.T) {
	// Head at (1,0) against the top wall, body to the right. Left leads into
	// the corner (3 free cells around it), down into open board (7).
	body := cells(1, 0, 2, 0)
	dir, ok := OpenSpace(body, 10)
	if !ok {
		t.Fatal("expected a safe heading")
	}
	if dir != core.Down {
		t.Errorf("OpenSpace = %v, expected down", dir)
	}
	if first, _ := FirstSafe(body, 10); first != core.Left {
		t.Errorf("FirstSafe = %v, expected left", first)
	}
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourceNone:     "none",
		SourcePath:     "path",
		SourceFallback: "fallback",
		SourceStuck:    "stuck",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Source(%d).String() = %q, expected %q", int(s), got, want)
		}
	}
}

func TestPoliciesRegistered(t *testing.T) {
	for _, name := range []string{PolicyFirstSafe, PolicyOpenSpace} {
		if !registry.Exists(name) {
			t.Errorf("policy %q should be registered", name)
		}
	}
}
