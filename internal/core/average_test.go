package core

import (
	"errors"
	"testing"
)

// mustGrid builds a grid from row-major values, failing the test on error.
func mustGrid(t *testing.T, w, h int, cells []Shade) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	copy(g.Cells(), cells)
	return g
}

func mustAverager(t *testing.T, w Weights, p BoundaryPolicy) *Averager {
	t.Helper()
	a, err := NewAverager(w, p)
	if err != nil {
		t.Fatalf("NewAverager(%+v, %q) failed: %v", w, p, err)
	}
	return a
}

func TestNewAveragerValidation(t *testing.T) {
	testCases := []struct {
		name    string
		weights Weights
		policy  BoundaryPolicy
		wantErr error
	}{
		{"default ok", DefaultWeights, BoundaryExclude, nil},
		{"equal weights ok", Weights{Cardinal: 1, Diagonal: 1}, BoundaryWrap, nil},
		{"zero diagonal", Weights{Cardinal: 2, Diagonal: 0}, BoundaryExclude, ErrInvalidWeights},
		{"diagonal above cardinal", Weights{Cardinal: 1, Diagonal: 2}, BoundaryExclude, ErrInvalidWeights},
		{"negative cardinal", Weights{Cardinal: -2, Diagonal: 1}, BoundaryExclude, ErrInvalidWeights},
		{"unknown policy", DefaultWeights, BoundaryPolicy("pad"), ErrBadPolicy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAverager(tc.weights, tc.policy)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTargetInteriorCell(t *testing.T) {
	// Center of a 3x3: four cardinal neighbors weighted 2, four diagonal
	// neighbors weighted 1.
	g := mustGrid(t, 3, 3, []Shade{
		1, 6, 1,
		5, 5, 5,
		1, 6, 1,
	})
	a := mustAverager(t, DefaultWeights, BoundaryExclude)

	// cardinal sum 6+5+5+6 = 22, diagonal sum 1+1+1+1 = 4
	// (22*2 + 4) / (4*2 + 4) = 48/12 = 4
	if got := a.Target(g, 1, 1); got != 4 {
		t.Errorf("interior target = %d, want 4", got)
	}
}

func TestTargetRoundsHalfAwayFromZero(t *testing.T) {
	// Middle of a 1x3 row has exactly two cardinal neighbors: average of
	// 5 and 6 is 5.5, which rounds up.
	g := mustGrid(t, 3, 1, []Shade{5, 0, 6})
	a := mustAverager(t, DefaultWeights, BoundaryExclude)

	if got := a.Target(g, 0, 1); got != 6 {
		t.Errorf("5.5 should round to 6, got %d", got)
	}
}

func TestTargetCardinalNeighborsDominate(t *testing.T) {
	// High values on cardinal positions, low values on diagonals: the
	// weighted average lands above the plain average.
	g := mustGrid(t, 3, 3, []Shade{
		2, 9, 2,
		8, 5, 9,
		1, 8, 2,
	})
	a := mustAverager(t, DefaultWeights, BoundaryExclude)

	// cardinal sum 9+8+9+8 = 34, diagonal sum 2+2+1+2 = 7
	// weighted: (34*2 + 7) / 12 = 75/12 = 6.25 -> 6
	// unweighted: 41/8 = 5.125 -> 5
	if got := a.Target(g, 1, 1); got != 6 {
		t.Errorf("weighted target = %d, want 6", got)
	}

	unweighted := mustAverager(t, Weights{Cardinal: 1, Diagonal: 1}, BoundaryExclude)
	if got := unweighted.Target(g, 1, 1); got != 5 {
		t.Errorf("unweighted target = %d, want 5", got)
	}
}

func TestTargetEdgeAndCornerExcludeMissingNeighbors(t *testing.T) {
	// Hot center, dark ring.
	g := mustGrid(t, 3, 3, []Shade{
		0, 0, 0,
		0, 15, 0,
		0, 0, 0,
	})
	a := mustAverager(t, DefaultWeights, BoundaryExclude)

	testCases := []struct {
		name     string
		row, col int
		want     Shade
	}{
		// 3 neighbors: two cardinal (0), one diagonal (15).
		// 15 / (2*2 + 1) = 3
		{"corner", 0, 0, 3},
		// 5 neighbors: three cardinal (0, 0, 15), two diagonal (0).
		// 15*2 / (3*2 + 2) = 30/8 = 3.75 -> 4
		{"edge midpoint", 0, 1, 4},
		// 8 neighbors, all 0.
		{"center", 1, 1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Target(g, tc.row, tc.col); got != tc.want {
				t.Errorf("Target(%d, %d) = %d, want %d", tc.row, tc.col, got, tc.want)
			}
		})
	}
}

func TestTargetWrapPolicy(t *testing.T) {
	g := mustGrid(t, 3, 3, []Shade{
		0, 0, 0,
		0, 15, 0,
		0, 0, 0,
	})
	a := mustAverager(t, DefaultWeights, BoundaryWrap)

	// On a torus the corner has all 8 neighbors; the hot center is its
	// single diagonal contribution: 15 / 12 = 1.25 -> 1.
	if got := a.Target(g, 0, 0); got != 1 {
		t.Errorf("wrapped corner target = %d, want 1", got)
	}

	// The center is unaffected by wrapping.
	if got := a.Target(g, 1, 1); got != 0 {
		t.Errorf("wrapped center target = %d, want 0", got)
	}
}

func TestTargetUniformGridIsFixedPoint(t *testing.T) {
	for _, policy := range []BoundaryPolicy{BoundaryExclude, BoundaryWrap} {
		g := mustGrid(t, 4, 4, make([]Shade, 16))
		for i := range g.Cells() {
			g.Cells()[i] = 9
		}
		a := mustAverager(t, DefaultWeights, policy)

		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				if got := a.Target(g, row, col); got != 9 {
					t.Errorf("policy %q: Target(%d, %d) = %d on uniform grid, want 9", policy, row, col, got)
				}
			}
		}
	}
}

func TestStepToward(t *testing.T) {
	testCases := []struct {
		current, target, want Shade
	}{
		{5, 9, 6},
		{5, 6, 6},
		{5, 5, 5},
		{5, 4, 4},
		{5, 0, 4},
		{0, 0, 0},
		{MaxShade, MaxShade, MaxShade},
		{0, MaxShade, 1},
		{MaxShade, 0, 14},
	}

	for _, tc := range testCases {
		if got := StepToward(tc.current, tc.target); got != tc.want {
			t.Errorf("StepToward(%d, %d) = %d, want %d", tc.current, tc.target, got, tc.want)
		}
	}
}
