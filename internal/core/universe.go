package core

import (
	"fmt"
	"math/rand"
	"time"
)

// Universe owns the simulation state: two grids of identical dimensions
// used as a double buffer, and the averaging rule. At any moment exactly
// one grid is current; Tick computes the next generation into the scratch
// grid from the frozen current one and then swaps their roles, so readers
// never observe a partially updated generation.
//
// A Universe is not safe for concurrent mutation; the owning layer
// serializes Tick calls.
type Universe struct {
	current    *Grid
	scratch    *Grid
	averager   *Averager
	generation uint64
}

type universeOptions struct {
	weights Weights
	policy  BoundaryPolicy
	rng     *rand.Rand
}

// Option configures a Universe at creation.
type Option func(*universeOptions)

// WithWeights overrides the default neighbor weights.
func WithWeights(w Weights) Option {
	return func(o *universeOptions) { o.weights = w }
}

// WithBoundary selects the boundary policy.
func WithBoundary(p BoundaryPolicy) Option {
	return func(o *universeOptions) { o.policy = p }
}

// WithRand injects the random source used for the initial fill.
// Overrides WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(o *universeOptions) { o.rng = rng }
}

// WithSeed seeds a fresh random source for the initial fill, making the
// starting grid reproducible.
func WithSeed(seed int64) Option {
	return func(o *universeOptions) { o.rng = rand.New(rand.NewSource(seed)) }
}

// NewUniverse creates a universe with the given dimensions and fills the
// current generation with uniformly random shades. Without WithSeed or
// WithRand the fill is time-seeded.
func NewUniverse(width, height int, opts ...Option) (*Universe, error) {
	o := universeOptions{
		weights: DefaultWeights,
		policy:  BoundaryExclude,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	averager, err := NewAverager(o.weights, o.policy)
	if err != nil {
		return nil, err
	}

	current, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	scratch, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	for i := range current.cells {
		current.cells[i] = Shade(o.rng.Intn(int(MaxShade) + 1))
	}

	return &Universe{
		current:  current,
		scratch:  scratch,
		averager: averager,
	}, nil
}

// Width returns the grid width.
func (u *Universe) Width() int {
	return u.current.width
}

// Height returns the grid height.
func (u *Universe) Height() int {
	return u.current.height
}

// Generation returns the number of ticks executed so far.
func (u *Universe) Generation() uint64 {
	return u.generation
}

// Rule returns the averaging rule in effect.
func (u *Universe) Rule() (Weights, BoundaryPolicy) {
	return u.averager.weights, u.averager.policy
}

// Tick advances the simulation by one generation. Every cell's next shade
// is computed from the frozen current buffer (weighted-neighbor target,
// then a one-unit step), written into the scratch buffer, and the buffer
// roles swap once the whole generation is done. Cell evaluations are
// mutually independent, so the result does not depend on iteration order.
func (u *Universe) Tick() {
	for row := 0; row < u.current.height; row++ {
		for col := 0; col < u.current.width; col++ {
			i := u.current.index(row, col)
			target := u.averager.Target(u.current, row, col)
			u.scratch.cells[i] = StepToward(u.current.cells[i], target)
		}
	}
	u.current, u.scratch = u.scratch, u.current
	u.generation++
}

// View returns the current generation's cells in row-major order, length
// Width*Height. The slice is a zero-copy view into the current buffer:
// callers must not write to it, must not assume a stable address across
// ticks, and must treat it as stale after the next Tick.
func (u *Universe) View() []Shade {
	return u.current.Cells()
}

// SetCells overwrites the current generation with the given row-major
// values. Used to load known states for deterministic runs and tests.
func (u *Universe) SetCells(cells []Shade) error {
	if len(cells) != len(u.current.cells) {
		return fmt.Errorf("core: expected %d cells, got %d", len(u.current.cells), len(cells))
	}
	copy(u.current.cells, cells)
	return nil
}

// String renders the current generation in the grid's debug format.
func (u *Universe) String() string {
	return u.current.String()
}
