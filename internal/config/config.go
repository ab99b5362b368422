// Package config provides YAML-based configuration loading for the
// smoother simulation.
package config

import (
	"errors"
	"fmt"

	"github.com/shadelab/tui-smoother/internal/core"
)

// ErrInvalidConfig wraps all configuration validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// SmootherConfig contains all tunables of the simulation.
type SmootherConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Rule    RuleConfig    `yaml:"rule"`
	Display DisplayConfig `yaml:"display"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RuleConfig defines the averaging rule.
type RuleConfig struct {
	CardinalWeight int    `yaml:"cardinal_weight"`
	DiagonalWeight int    `yaml:"diagonal_weight"`
	Boundary       string `yaml:"boundary"` // "exclude" or "wrap"
}

// DisplayConfig defines presentation parameters.
type DisplayConfig struct {
	TickRate int `yaml:"tick_rate"` // Auto-run ticks per second
}

// Weights converts the rule weights to the core type.
func (r RuleConfig) Weights() core.Weights {
	return core.Weights{Cardinal: r.CardinalWeight, Diagonal: r.DiagonalWeight}
}

// BoundaryPolicy converts the rule boundary string to the core type.
func (r RuleConfig) BoundaryPolicy() core.BoundaryPolicy {
	return core.BoundaryPolicy(r.Boundary)
}

// Validate checks the configuration for values the engine would reject.
func (c SmootherConfig) Validate() error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	}
	if c.Rule.DiagonalWeight < 1 || c.Rule.CardinalWeight < c.Rule.DiagonalWeight {
		return fmt.Errorf("%w: need cardinal_weight >= diagonal_weight >= 1, got %d/%d",
			ErrInvalidConfig, c.Rule.CardinalWeight, c.Rule.DiagonalWeight)
	}
	if !c.Rule.BoundaryPolicy().Valid() {
		return fmt.Errorf("%w: boundary must be %q or %q, got %q",
			ErrInvalidConfig, core.BoundaryExclude, core.BoundaryWrap, c.Rule.Boundary)
	}
	if c.Display.TickRate < 1 {
		return fmt.Errorf("%w: tick_rate must be at least 1, got %d", ErrInvalidConfig, c.Display.TickRate)
	}
	return nil
}
