package config

import (
	_ "embed"
)

//go:embed defaults/smoother.yaml
var defaultSmootherYAML []byte

// DefaultConfig returns the hardcoded default configuration, used as a
// last resort if the embedded YAML fails to parse.
func DefaultConfig() SmootherConfig {
	return SmootherConfig{
		Grid: GridConfig{
			Width:  48,
			Height: 24,
		},
		Rule: RuleConfig{
			CardinalWeight: 2,
			DiagonalWeight: 1,
			Boundary:       "exclude",
		},
		Display: DisplayConfig{
			TickRate: 10,
		},
	}
}
