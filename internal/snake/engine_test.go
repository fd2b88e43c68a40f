package snake

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/pathfind"
)

// zeroRand always picks the first free cell.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func newEngine(t *testing.T, opts Options, seed int64) *Engine {
	t.Helper()
	e, err := New(opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// place puts the board into an exact running position.
func place(e *Engine, body []core.Cell, dir core.Direction, food core.Cell) {
	e.snake = slices.Clone(body)
	e.direction = dir
	e.food = food
	e.hasFood = true
	e.status = StatusRunning
}

func cells(xy ...int) []core.Cell {
	out := make([]core.Cell, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func distinct(body []core.Cell) bool {
	seen := make(map[core.Cell]bool, len(body))
	for _, c := range body {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

func TestNewValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name   string
		mutate func(*Options)
		rng    RandSource
	}{
		{"tiny grid", func(o *Options) { o.GridWidth = 1 }, rng},
		{"zero reward", func(o *Options) { o.FoodReward = 0 }, rng},
		{"unknown policy", func(o *Options) { o.Fallback = "coin-flip" }, rng},
		{"nil rng", func(o *Options) {}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := New(opts, tt.rng); err == nil {
				t.Error("expected New() to fail")
			}
		})
	}
}

func TestResetState(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 7)
	snap := e.Snapshot()

	if !slices.Equal(snap.Snake, cells(10, 10)) {
		t.Errorf("Snake = %v, expected [(10,10)]", snap.Snake)
	}
	if !snap.Direction.IsZero() {
		t.Errorf("Direction = %v, expected zero", snap.Direction)
	}
	if snap.Status != StatusNotRunning {
		t.Errorf("Status = %v, expected not_running", snap.Status)
	}
	if snap.Score != 0 || snap.Tick != 0 {
		t.Errorf("Score/Tick = %d/%d, expected 0/0", snap.Score, snap.Tick)
	}
	if !snap.HasFood || snap.Occupies(snap.Food) || !snap.Food.In(20) {
		t.Errorf("bad food %v (has=%v)", snap.Food, snap.HasFood)
	}
}

func TestResetPanicsOnTinyGrid(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	defer func() {
		if recover() == nil {
			t.Error("Reset(1) should panic")
		}
	}()
	e.Reset(1)
}

func TestResetKeepsAutonomous(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	e.SetAutonomous(true)
	e.Start()
	e.Tick()
	e.Reset(12)

	if !e.Autonomous() {
		t.Error("Reset should keep the autonomous flag")
	}
	if e.Width() != 12 || e.Snapshot().Head() != (core.Cell{X: 6, Y: 6}) {
		t.Errorf("Reset(12) head = %v, expected (6,6)", e.Snapshot().Head())
	}
	if e.Status() != StatusNotRunning {
		t.Errorf("Status = %v after Reset, expected not_running", e.Status())
	}
}

func TestFoodPickedFromFreeCells(t *testing.T) {
	e, err := New(DefaultOptions(), zeroRand{})
	if err != nil {
		t.Fatal(err)
	}
	if e.Snapshot().Food != (core.Cell{X: 0, Y: 0}) {
		t.Errorf("first free cell should be (0,0), got %v", e.Snapshot().Food)
	}

	place(e, cells(0, 0, 1, 0), core.Left, core.Cell{})
	e.spawnFood()
	if e.food != (core.Cell{X: 2, Y: 0}) {
		t.Errorf("first free cell should be (2,0), got %v", e.food)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 999)
	place(e, cells(5, 5, 5, 6, 5, 7, 6, 7, 7, 7, 8, 7), core.Up, core.Cell{})

	for i := 0; i < 200; i++ {
		e.spawnFood()
		if !e.hasFood {
			t.Fatal("board has room, food expected")
		}
		if !e.food.In(e.width) {
			t.Fatalf("food %v off the grid", e.food)
		}
		if slices.Contains(e.snake, e.food) {
			t.Fatalf("food %v spawned on the snake", e.food)
		}
	}
}

func TestTickBeforeStart(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	before := e.Snapshot()

	if out := e.Tick(); out != Continued {
		t.Errorf("Tick() = %v, expected continued", out)
	}
	after := e.Snapshot()
	if !slices.Equal(before.Snake, after.Snake) || after.Tick != 0 {
		t.Error("Tick before Start should not mutate the game")
	}
}

func TestStart(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	e.Start()
	if e.Status() != StatusRunning {
		t.Fatalf("Status = %v, expected running", e.Status())
	}
	if e.Snapshot().Direction != core.Right {
		t.Errorf("Direction = %v, expected right", e.Snapshot().Direction)
	}

	e.SetDirection(core.Down)
	e.Start()
	if e.Snapshot().Direction != core.Down {
		t.Error("Start while running should be a no-op")
	}

	e.status = StatusOver
	e.Start()
	if e.Status() != StatusOver {
		t.Error("Start should not resume a finished game")
	}
}

func TestTogglePause(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)

	e.TogglePause()
	if e.Status() != StatusNotRunning {
		t.Error("TogglePause before Start should be a no-op")
	}

	e.Start()
	e.TogglePause()
	if e.Status() != StatusPaused {
		t.Fatalf("Status = %v, expected paused", e.Status())
	}

	head := e.Snapshot().Head()
	if out := e.Tick(); out != Continued || e.Snapshot().Head() != head {
		t.Error("paused game should not move")
	}
	if e.SetDirection(core.Down) {
		t.Error("SetDirection should be rejected while paused")
	}

	e.TogglePause()
	if e.Status() != StatusRunning {
		t.Errorf("Status = %v, expected running", e.Status())
	}

	e.status = StatusOver
	e.TogglePause()
	if e.Status() != StatusOver {
		t.Error("TogglePause should not touch a finished game")
	}
}

func TestSetDirection(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)

	if e.SetDirection(core.Down) {
		t.Error("SetDirection before Start should be rejected")
	}

	e.Start() // heading right
	tests := []struct {
		name string
		dir  core.Direction
		ok   bool
	}{
		{"reverse", core.Left, false},
		{"zero", core.Direction{}, false},
		{"diagonal", core.Direction{DX: 1, DY: 1}, false},
		{"long", core.Direction{DX: 2}, false},
		{"same", core.Right, true},
		{"turn", core.Down, true},
		{"reverse after turn", core.Up, false},
	}
	for _, tt := range tests {
		if got := e.SetDirection(tt.dir); got != tt.ok {
			t.Errorf("%s: SetDirection(%v) = %v, expected %v", tt.name, tt.dir, got, tt.ok)
		}
	}
	if e.Snapshot().Direction != core.Down {
		t.Errorf("Direction = %v, expected down", e.Snapshot().Direction)
	}

	e.SetAutonomous(true)
	if e.SetDirection(core.Right) {
		t.Error("SetDirection should be rejected under autopilot")
	}
}

func TestMoveWithoutFood(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	place(e, cells(5, 5), core.Right, core.Cell{X: 0, Y: 0})

	if out := e.Tick(); out != Continued {
		t.Fatalf("Tick() = %v, expected continued", out)
	}
	snap := e.Snapshot()
	if snap.Head() != (core.Cell{X: 6, Y: 5}) {
		t.Errorf("head = %v, expected (6,5)", snap.Head())
	}
	if snap.Length != 1 {
		t.Errorf("length = %d, expected 1", snap.Length)
	}
	if snap.Tick != 1 {
		t.Errorf("tick = %d, expected 1", snap.Tick)
	}
}

func TestEatFood(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	place(e, cells(5, 5), core.Right, core.Cell{X: 6, Y: 5})

	if out := e.Tick(); out != FoodEaten {
		t.Fatalf("Tick() = %v, expected food_eaten", out)
	}
	snap := e.Snapshot()
	if snap.Score != 10 {
		t.Errorf("score = %d, expected 10", snap.Score)
	}
	if !slices.Equal(snap.Snake, cells(6, 5, 5, 5)) {
		t.Errorf("snake = %v, expected [(6,5) (5,5)]", snap.Snake)
	}
	if !snap.HasFood || snap.Occupies(snap.Food) {
		t.Errorf("new food %v must be off the snake", snap.Food)
	}
}

func TestCustomFoodReward(t *testing.T) {
	opts := DefaultOptions()
	opts.FoodReward = 3
	e := newEngine(t, opts, 1)
	place(e, cells(5, 5), core.Right, core.Cell{X: 6, Y: 5})
	e.Tick()
	if e.Score() != 3 {
		t.Errorf("score = %d, expected 3", e.Score())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name string
		head core.Cell
		dir  core.Direction
	}{
		{"right", core.Cell{X: 19, Y: 5}, core.Right},
		{"left", core.Cell{X: 0, Y: 5}, core.Left},
		{"down", core.Cell{X: 5, Y: 19}, core.Down},
		{"up", core.Cell{X: 5, Y: 0}, core.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, DefaultOptions(), 1)
			place(e, []core.Cell{tt.head}, tt.dir, core.Cell{X: 10, Y: 10})

			if out := e.Tick(); out != GameOver {
				t.Fatalf("Tick() = %v, expected game_over", out)
			}
			if e.Status() != StatusOver {
				t.Errorf("Status = %v, expected over", e.Status())
			}
			if e.Snapshot().Head() != tt.head {
				t.Error("snake should not move on a fatal tick")
			}
			if out := e.Tick(); out != Continued {
				t.Errorf("Tick() after game over = %v, expected continued", out)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	for _, rule := range []TailRule{TailVacates, TailBlocks} {
		opts := DefaultOptions()
		opts.Tail = rule
		e := newEngine(t, opts, 1)
		// Head at (5,5) heading left; turning down runs into the middle of the body.
		place(e, cells(5, 5, 6, 5, 6, 6, 5, 6, 4, 6), core.Left, core.Cell{X: 0, Y: 0})

		if !e.SetDirection(core.Down) {
			t.Fatalf("%v: turn down should be accepted", rule)
		}
		if out := e.Tick(); out != GameOver {
			t.Errorf("%v: Tick() = %v, expected game_over", rule, out)
		}
	}
}

func TestTailRule(t *testing.T) {
	body := cells(5, 5, 6, 5, 6, 6, 5, 6)

	t.Run("vacates", func(t *testing.T) {
		e := newEngine(t, DefaultOptions(), 1)
		place(e, body, core.Left, core.Cell{X: 0, Y: 0})
		e.SetDirection(core.Down)

		if out := e.Tick(); out != Continued {
			t.Fatalf("Tick() = %v, expected continued", out)
		}
		want := cells(5, 6, 5, 5, 6, 5, 6, 6)
		if got := e.Snapshot().Snake; !slices.Equal(got, want) {
			t.Errorf("snake = %v, expected %v", got, want)
		}
	})

	t.Run("blocks", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Tail = TailBlocks
		e := newEngine(t, opts, 1)
		place(e, body, core.Left, core.Cell{X: 0, Y: 0})
		e.SetDirection(core.Down)

		if out := e.Tick(); out != GameOver {
			t.Fatalf("Tick() = %v, expected game_over", out)
		}
	})
}

func TestBoardFull(t *testing.T) {
	opts := DefaultOptions()
	opts.GridWidth = 2
	e := newEngine(t, opts, 1)
	place(e, cells(0, 0, 1, 0, 1, 1), core.Left, core.Cell{X: 0, Y: 1})
	e.SetDirection(core.Down)

	if out := e.Tick(); out != FoodEaten {
		t.Fatalf("Tick() = %v, expected food_eaten", out)
	}
	snap := e.Snapshot()
	if snap.HasFood {
		t.Errorf("full board should have no food, got %v", snap.Food)
	}
	if snap.Length != 4 {
		t.Errorf("length = %d, expected 4", snap.Length)
	}

	if out := e.Tick(); out != GameOver {
		t.Errorf("Tick() on a full board = %v, expected game_over", out)
	}
}

func TestAutopilotTick(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	place(e, cells(10, 10), core.Right, core.Cell{X: 15, Y: 15})
	e.SetAutonomous(true)

	want := e.ComputeAutoDirection()
	if snap := e.Snapshot(); snap.Tick != 0 || snap.LastDecision.Source != pathfind.SourceNone {
		t.Fatal("ComputeAutoDirection should not change the game")
	}

	e.Tick()
	snap := e.Snapshot()
	if snap.Direction != want {
		t.Errorf("Direction = %v, expected %v", snap.Direction, want)
	}
	if snap.LastDecision.Source != pathfind.SourcePath {
		t.Errorf("LastDecision.Source = %v, expected path", snap.LastDecision.Source)
	}
	if snap.Head() != (core.Cell{X: 11, Y: 10}) {
		t.Errorf("head = %v, expected (11,10)", snap.Head())
	}
}

func TestAutopilotStartsFromRest(t *testing.T) {
	opts := DefaultOptions()
	opts.Autonomous = true
	e := newEngine(t, opts, 3)
	e.Start()

	if out := e.Tick(); out == GameOver {
		t.Fatal("first autopilot move from the centre should not be fatal")
	}
	if e.Snapshot().Tick != 1 {
		t.Error("autopilot should move on the first tick")
	}
}

func TestAutopilotEatsFood(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 11)
	e.SetAutonomous(true)
	e.Start()

	for i := 0; i < 400 && e.Score() == 0; i++ {
		if e.Tick() == GameOver {
			t.Fatal("autopilot died before the first food")
		}
	}
	if e.Score() == 0 {
		t.Error("autopilot should reach food on an open board")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newEngine(t, DefaultOptions(), 12345)
		e.SetAutonomous(true)
		e.Start()
		for i := 0; i < 500; i++ {
			if e.Tick() == GameOver {
				break
			}
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Tick != b.Tick || a.Score != b.Score {
		t.Errorf("tick/score mismatch: %d/%d vs %d/%d", a.Tick, a.Score, b.Tick, b.Score)
	}
	if !slices.Equal(a.Snake, b.Snake) {
		t.Errorf("snake mismatch:\n%v\n%v", a.Snake, b.Snake)
	}
	if a.Food != b.Food || a.Direction != b.Direction || a.Status != b.Status {
		t.Error("food, direction or status mismatch")
	}
}

func TestInvariantsUnderAutopilot(t *testing.T) {
	for _, rule := range []TailRule{TailVacates, TailBlocks} {
		for _, policy := range []string{pathfind.PolicyFirstSafe, pathfind.PolicyOpenSpace} {
			for seed := int64(1); seed <= 3; seed++ {
				opts := DefaultOptions()
				opts.GridWidth = 10
				opts.Tail = rule
				opts.Fallback = policy
				opts.Autonomous = true
				e := newEngine(t, opts, seed)
				e.Start()

				prev := e.Snapshot()
				for i := 0; i < 3000; i++ {
					out := e.Tick()
					cur := e.Snapshot()

					switch out {
					case FoodEaten:
						if cur.Length != prev.Length+1 {
							t.Fatalf("%v/%s/%d: growth %d -> %d on food", rule, policy, seed, prev.Length, cur.Length)
						}
						if cur.Score != prev.Score+10 {
							t.Fatalf("%v/%s/%d: score %d -> %d on food", rule, policy, seed, prev.Score, cur.Score)
						}
					case Continued:
						if cur.Length != prev.Length || cur.Score != prev.Score {
							t.Fatalf("%v/%s/%d: length or score changed on a plain move", rule, policy, seed)
						}
					}

					if cur.Status == StatusOver {
						break
					}
					if !distinct(cur.Snake) {
						t.Fatalf("%v/%s/%d: snake overlaps itself: %v", rule, policy, seed, cur.Snake)
					}
					if cur.HasFood && cur.Occupies(cur.Food) {
						t.Fatalf("%v/%s/%d: food %v on the snake", rule, policy, seed, cur.Food)
					}
					prev = cur
				}
			}
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 1)
	snap := e.Snapshot()
	snap.Snake[0] = core.Cell{X: -5, Y: -5}

	if e.Snapshot().Head() == (core.Cell{X: -5, Y: -5}) {
		t.Error("mutating a snapshot should not reach the engine")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.GridWidth = 14
	cfg.Rules.Tail = config.TailBlocks
	cfg.Autopilot.Enabled = true
	cfg.Autopilot.Fallback = pathfind.PolicyFirstSafe

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig() failed: %v", err)
	}
	want := Options{GridWidth: 14, FoodReward: 10, Tail: TailBlocks, Fallback: pathfind.PolicyFirstSafe, Autonomous: true}
	if opts != want {
		t.Errorf("opts = %+v, expected %+v", opts, want)
	}

	cfg.Rules.Tail = "sometimes"
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("unknown tail rule should fail")
	}
}

func TestStringers(t *testing.T) {
	if StatusPaused.String() != "paused" || StatusOver.String() != "over" {
		t.Error("unexpected Status labels")
	}
	if FoodEaten.String() != "food_eaten" || GameOver.String() != "game_over" {
		t.Error("unexpected Outcome labels")
	}
	if TailBlocks.String() != "blocks" || TailVacates.String() != "vacates" {
		t.Error("unexpected TailRule labels")
	}
}
