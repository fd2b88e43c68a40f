// Package snake is the game-state machine: one square board, one snake, one
// piece of food, advanced one discrete step per Tick.
//
// The engine performs no I/O and keeps no clock. A driver owns the cadence,
// calls Tick, and reads Snapshot afterwards. An Engine is not safe for
// concurrent use; each driver goroutine owns its own.
package snake

import (
	"fmt"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/pathfind"
	"github.com/vovakirdan/snakebot/internal/registry"
)

// RandSource picks food cells. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// TailRule decides whether the cell the tail is leaving counts as body
// for the move that vacates it.
type TailRule int

const (
	// TailVacates lets the head move onto the current tail cell.
	TailVacates TailRule = iota
	// TailBlocks treats the current tail cell as a collision.
	TailBlocks
)

// String returns the config name of the rule.
func (r TailRule) String() string {
	if r == TailBlocks {
		return config.TailBlocks
	}
	return config.TailVacates
}

// ParseTailRule converts a config value into a TailRule.
func ParseTailRule(s string) (TailRule, error) {
	switch s {
	case config.TailVacates:
		return TailVacates, nil
	case config.TailBlocks:
		return TailBlocks, nil
	default:
		return 0, fmt.Errorf("snake: unknown tail rule %q", s)
	}
}

// Options configures an Engine.
type Options struct {
	GridWidth  int
	FoodReward int
	Tail       TailRule
	Fallback   string // registered fallback policy name
	Autonomous bool   // start in autopilot mode
}

// DefaultOptions returns the standard 20x20 game.
func DefaultOptions() Options {
	return Options{
		GridWidth:  20,
		FoodReward: 10,
		Tail:       TailVacates,
		Fallback:   pathfind.DefaultPolicy,
	}
}

// OptionsFromConfig maps a loaded config onto engine options.
func OptionsFromConfig(cfg config.SnakeConfig) (Options, error) {
	tail, err := ParseTailRule(cfg.Rules.Tail)
	if err != nil {
		return Options{}, err
	}
	return Options{
		GridWidth:  cfg.Board.GridWidth,
		FoodReward: cfg.Scoring.FoodReward,
		Tail:       tail,
		Fallback:   cfg.Autopilot.Fallback,
		Autonomous: cfg.Autopilot.Enabled,
	}, nil
}

// Status is the run state of a game.
type Status int

const (
	StatusNotRunning Status = iota
	StatusRunning
	StatusPaused
	StatusOver
)

// String returns a lowercase label.
func (s Status) String() string {
	switch s {
	case StatusNotRunning:
		return "not_running"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Tick.
type Outcome int

const (
	Continued Outcome = iota
	FoodEaten
	GameOver
)

// String returns a lowercase label.
func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case FoodEaten:
		return "food_eaten"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Engine owns the state of one game.
type Engine struct {
	opts     Options
	fallback registry.Fallback
	rng      RandSource

	width      int
	snake      []core.Cell // head at index 0
	food       core.Cell
	hasFood    bool
	direction  core.Direction
	score      int
	status     Status
	autonomous bool
	tick       uint64
	last       pathfind.Decision
}

// New validates opts and returns an engine already reset to a fresh board.
func New(opts Options, rng RandSource) (*Engine, error) {
	if opts.GridWidth < 2 {
		return nil, fmt.Errorf("snake: grid width must be at least 2, got %d", opts.GridWidth)
	}
	if opts.FoodReward <= 0 {
		return nil, fmt.Errorf("snake: food reward must be positive, got %d", opts.FoodReward)
	}
	if rng == nil {
		return nil, fmt.Errorf("snake: nil random source")
	}
	fallback, err := registry.Lookup(opts.Fallback)
	if err != nil {
		return nil, fmt.Errorf("snake: %w", err)
	}

	e := &Engine{
		opts:       opts,
		fallback:   fallback,
		rng:        rng,
		autonomous: opts.Autonomous,
	}
	e.Reset(opts.GridWidth)
	return e, nil
}

// Reset starts a fresh board of the given side: a single-cell snake in the
// centre, no heading, score 0, new food, status NotRunning.
// The autonomous flag survives a reset. Panics if gridWidth < 2.
func (e *Engine) Reset(gridWidth int) {
	if gridWidth < 2 {
		panic(fmt.Sprintf("snake: Reset with grid width %d", gridWidth))
	}
	e.width = gridWidth
	e.snake = []core.Cell{{X: gridWidth / 2, Y: gridWidth / 2}}
	e.direction = core.Direction{}
	e.score = 0
	e.status = StatusNotRunning
	e.tick = 0
	e.last = pathfind.Decision{}
	e.spawnFood()
}

// Start sets the game running. A snake with no heading starts moving right.
// Only valid from NotRunning; otherwise a no-op.
func (e *Engine) Start() {
	if e.status != StatusNotRunning {
		return
	}
	if e.direction.IsZero() {
		e.direction = core.Right
	}
	e.status = StatusRunning
}

// TogglePause switches between Running and Paused. No-op in other states.
func (e *Engine) TogglePause() {
	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusRunning
	}
}

// SetDirection steers the snake. The request is ignored unless the game is
// running under manual control, d is a unit heading, and d does not reverse
// the current heading. Reports whether the heading was taken.
func (e *Engine) SetDirection(d core.Direction) bool {
	if e.status != StatusRunning || e.autonomous {
		return false
	}
	if !d.IsUnit() || d.IsReverseOf(e.direction) {
		return false
	}
	e.direction = d
	return true
}

// SetAutonomous switches autopilot on or off.
func (e *Engine) SetAutonomous(on bool) {
	e.autonomous = on
}

// Autonomous reports whether autopilot drives the snake.
func (e *Engine) Autonomous() bool {
	return e.autonomous
}

// Status returns the run state.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Len returns the snake length, which drivers use to pace ticks.
func (e *Engine) Len() int {
	return len(e.snake)
}

// Width returns the side of the board.
func (e *Engine) Width() int {
	return e.width
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Tick advances the game by one step.
func (e *Engine) Tick() Outcome {
	if e.status != StatusRunning {
		return Continued
	}

	if e.autonomous {
		e.last = e.decide()
		e.direction = e.last.Direction
	}
	if e.direction.IsZero() {
		return Continued
	}
	e.tick++

	head := e.snake[0].Add(e.direction)

	// Wall
	if !head.In(e.width) {
		e.status = StatusOver
		return GameOver
	}

	// Self
	if e.hitsBody(head) {
		e.status = StatusOver
		return GameOver
	}

	e.snake = append(e.snake, core.Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = head

	if e.hasFood && head == e.food {
		e.score += e.opts.FoodReward
		e.spawnFood()
		return FoodEaten
	}

	e.snake = e.snake[:len(e.snake)-1]
	return Continued
}

// hitsBody checks a prospective head against the body under the tail rule.
func (e *Engine) hitsBody(c core.Cell) bool {
	body := e.snake
	if e.opts.Tail == TailVacates {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == c {
			return true
		}
	}
	return false
}

// ComputeAutoDirection returns the heading the autopilot would take now.
// It does not change the game.
func (e *Engine) ComputeAutoDirection() core.Direction {
	return e.decide().Direction
}

// decide runs the autopilot over the current board.
func (e *Engine) decide() pathfind.Decision {
	return pathfind.Decide(pathfind.Request{
		Body:       e.snake,
		Food:       e.food,
		HasFood:    e.hasFood,
		Current:    e.direction,
		Width:      e.width,
		TailBlocks: e.opts.Tail == TailBlocks,
		Fallback:   e.fallback,
	})
}

// spawnFood places food uniformly on a free cell.
// When the snake covers the whole board there is no food.
func (e *Engine) spawnFood() {
	occupied := pathfind.Obstacles(e.snake, true)

	// Collect all empty cells
	free := make([]core.Cell, 0, e.width*e.width-len(e.snake))
	for y := 0; y < e.width; y++ {
		for x := 0; x < e.width; x++ {
			c := core.Cell{X: x, Y: y}
			if !occupied.Has(c) {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		e.food = core.Cell{X: -1, Y: -1}
		e.hasFood = false
		return
	}

	e.food = free[e.rng.Intn(len(free))]
	e.hasFood = true
}
