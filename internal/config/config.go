// Package config provides YAML-based snake configuration loading, the pace
// schedule and difficulty presets.
package config

import "fmt"

// SnakeConfig contains all tunable settings for a snake game.
type SnakeConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Rules     RulesConfig     `yaml:"rules"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Pace      PaceConfig      `yaml:"pace"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	GridWidth int `yaml:"grid_width"` // side of the square board in cells
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// Tail rule names accepted in rules.tail.
const (
	TailVacates = "vacates" // moving onto the current tail is legal
	TailBlocks  = "blocks"  // the tail is solid until it moves
)

// RulesConfig selects collision rule variants.
type RulesConfig struct {
	Tail string `yaml:"tail"`
}

// AutopilotConfig controls the pathfinding controller.
type AutopilotConfig struct {
	Enabled  bool   `yaml:"enabled"`  // start games in autonomous mode
	Fallback string `yaml:"fallback"` // registered fallback policy name
}

// PaceConfig defines the inter-tick delay schedule in milliseconds.
// The delay shrinks by PerSegmentMs for every body segment, down to MinMs.
type PaceConfig struct {
	BaseMs       int `yaml:"base_ms"`
	PerSegmentMs int `yaml:"per_segment_ms"`
	MinMs        int `yaml:"min_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI/config string into a preset.
// The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// PaceForPreset returns the pace schedule for a difficulty preset.
func PaceForPreset(preset DifficultyPreset) PaceConfig {
	switch preset {
	case DifficultyEasy:
		return PaceConfig{BaseMs: 220, PerSegmentMs: 2, MinMs: 140}
	case DifficultyHard:
		return PaceConfig{BaseMs: 130, PerSegmentMs: 3, MinMs: 60}
	default:
		return PaceConfig{BaseMs: 180, PerSegmentMs: 2, MinMs: 100}
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Pace = PaceForPreset(preset)
}

// Validate reports the first setting that would make a game unplayable.
// Fallback names are checked against the policy registry by the engine.
func (c SnakeConfig) Validate() error {
	if c.Board.GridWidth < 2 {
		return fmt.Errorf("config: board.grid_width must be at least 2, got %d", c.Board.GridWidth)
	}
	if c.Scoring.FoodReward <= 0 {
		return fmt.Errorf("config: scoring.food_reward must be positive, got %d", c.Scoring.FoodReward)
	}
	switch c.Rules.Tail {
	case TailVacates, TailBlocks:
	default:
		return fmt.Errorf("config: rules.tail must be %q or %q, got %q", TailVacates, TailBlocks, c.Rules.Tail)
	}
	if c.Autopilot.Fallback == "" {
		return fmt.Errorf("config: autopilot.fallback must name a policy")
	}
	if c.Pace.MinMs <= 0 || c.Pace.BaseMs < c.Pace.MinMs || c.Pace.PerSegmentMs < 0 {
		return fmt.Errorf("config: pace needs 0 < min_ms <= base_ms and per_segment_ms >= 0, got %+v", c.Pace)
	}
	return nil
}
