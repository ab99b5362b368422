package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeights is returned when the cardinal weight does not
	// dominate the diagonal weight, or either is non-positive.
	ErrInvalidWeights = errors.New("core: cardinal weight must be >= diagonal weight >= 1")

	// ErrBadPolicy is returned for an unknown boundary policy.
	ErrBadPolicy = errors.New("core: unknown boundary policy")
)

// BoundaryPolicy controls how neighbors beyond the grid edge are treated.
type BoundaryPolicy string

const (
	// BoundaryExclude drops missing neighbors from both the weighted sum
	// and the denominator, so edge and corner cells average over fewer
	// terms. This is the default.
	BoundaryExclude BoundaryPolicy = "exclude"

	// BoundaryWrap treats the grid as a torus: every cell has all eight
	// neighbors.
	BoundaryWrap BoundaryPolicy = "wrap"
)

// Valid reports whether the policy is one of the known values.
func (p BoundaryPolicy) Valid() bool {
	return p == BoundaryExclude || p == BoundaryWrap
}

// Weights holds the neighbor weighting of the averaging rule. Cardinal
// neighbors (up, down, left, right) count more than diagonal ones.
type Weights struct {
	Cardinal int
	Diagonal int
}

// DefaultWeights is the rule the simulation was designed around:
// cardinal neighbors have double the weight of diagonal neighbors.
var DefaultWeights = Weights{Cardinal: 2, Diagonal: 1}

// Neighbor offsets in (row, col) order.
var (
	cardinalOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalOffsets = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Averager computes the weighted-average target shade of a cell's Moore
// neighborhood in a frozen generation. It is a pure computation and holds
// no per-grid state.
type Averager struct {
	weights Weights
	policy  BoundaryPolicy
}

// NewAverager validates the rule parameters and returns an averager.
func NewAverager(w Weights, policy BoundaryPolicy) (*Averager, error) {
	if w.Diagonal < 1 || w.Cardinal < w.Diagonal {
		return nil, fmt.Errorf("%w: got cardinal=%d diagonal=%d", ErrInvalidWeights, w.Cardinal, w.Diagonal)
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadPolicy, policy)
	}
	return &Averager{weights: w, policy: policy}, nil
}

// Weights returns the averager's neighbor weights.
func (a *Averager) Weights() Weights {
	return a.weights
}

// Policy returns the averager's boundary policy.
func (a *Averager) Policy() BoundaryPolicy {
	return a.policy
}

// Target returns the weighted-average shade of the neighbors of (row, col)
// in g, rounded half away from zero. With zero neighbors (a 1x1 grid under
// the exclude policy) the target is the cell's own shade, so the cell
// never moves. The result is clamped into the valid shade range as a
// defensive invariant; correct weights can never produce an out-of-range
// average.
func (a *Averager) Target(g *Grid, row, col int) Shade {
	sum, total := a.accumulate(g, row, col, cardinalOffsets, a.weights.Cardinal)
	dsum, dtotal := a.accumulate(g, row, col, diagonalOffsets, a.weights.Diagonal)
	sum += dsum
	total += dtotal

	if total == 0 {
		return g.cells[g.index(row, col)]
	}

	// Integer round-half-away-from-zero: round(sum/total) for sum >= 0.
	return ClampShade((2*sum + total) / (2 * total))
}

// accumulate sums weight*shade over one offset group, returning the
// weighted sum and the total weight of the neighbors that exist.
func (a *Averager) accumulate(g *Grid, row, col int, offsets [4][2]int, weight int) (sum, total int) {
	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if a.policy == BoundaryWrap {
			r = (r%g.height + g.height) % g.height
			c = (c%g.width + g.width) % g.width
		} else if !g.InBounds(r, c) {
			continue
		}
		sum += weight * int(g.cells[g.index(r, c)])
		total += weight
	}
	return sum, total
}
