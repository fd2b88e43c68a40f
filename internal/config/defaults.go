package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			GridWidth: 20,
		},
		Scoring: ScoringConfig{
			FoodReward: 10,
		},
		Rules: RulesConfig{
			Tail: TailVacates,
		},
		Autopilot: AutopilotConfig{
			Enabled:  false,
			Fallback: "open-space",
		},
		Pace: PaceForPreset(DifficultyNormal),
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
