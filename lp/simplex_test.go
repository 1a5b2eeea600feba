package lp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vesselops/ballastgate/lp"
)

func inf() float64 { return math.Inf(1) }

// TestSolve_SimpleInequality: minimize x subject to x ≥ 3 (written as
// −x ≤ −3). Optimum x=3.
func TestSolve_SimpleInequality(t *testing.T) {
	p := &lp.Problem{
		C:     []float64{1},
		AUb:   mat.NewDense(1, 1, []float64{-1}),
		BUb:   []float64{-3},
		Upper: []float64{inf()},
	}
	res, err := lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.X[0], 1e-9)
	assert.InDelta(t, 3.0, res.Objective, 1e-9)
}

// TestSolve_TwoVarClassic: maximize 3x+5y (minimize −3x−5y) with
// x ≤ 4, 2y ≤ 12, 3x+2y ≤ 18. Classic optimum (2, 6), value 36.
func TestSolve_TwoVarClassic(t *testing.T) {
	p := &lp.Problem{
		C: []float64{-3, -5},
		AUb: mat.NewDense(3, 2, []float64{
			1, 0,
			0, 2,
			3, 2,
		}),
		BUb: []float64{4, 12, 18},
	}
	res, err := lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.X[0], 1e-9)
	assert.InDelta(t, 6.0, res.X[1], 1e-9)
	assert.InDelta(t, -36.0, res.Objective, 1e-9)
}

// TestSolve_Equality: minimize x+y subject to x+y = 5 with y capped at 2.
// Optimum keeps the sum pinned: objective 5.
func TestSolve_Equality(t *testing.T) {
	p := &lp.Problem{
		C:     []float64{1, 1},
		AEq:   mat.NewDense(1, 2, []float64{1, 1}),
		BEq:   []float64{5},
		Upper: []float64{inf(), 2},
	}
	res, err := lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.X[0]+res.X[1], 1e-9)
	assert.InDelta(t, 5.0, res.Objective, 1e-9)
	assert.LessOrEqual(t, res.X[1], 2.0+1e-9)
}

// TestSolve_UpperBoundRespected: the cheapest variable saturates its cap
// before the expensive one moves.
func TestSolve_UpperBoundRespected(t *testing.T) {
	// minimize x + 10y subject to x + y ≥ 8, x ≤ 5.
	p := &lp.Problem{
		C:     []float64{1, 10},
		AUb:   mat.NewDense(1, 2, []float64{-1, -1}),
		BUb:   []float64{-8},
		Upper: []float64{5, inf()},
	}
	res, err := lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.X[0], 1e-9)
	assert.InDelta(t, 3.0, res.X[1], 1e-9)
}

// TestSolve_Infeasible: x ≤ 1 and x ≥ 3 cannot both hold.
func TestSolve_Infeasible(t *testing.T) {
	p := &lp.Problem{
		C: []float64{1},
		AUb: mat.NewDense(2, 1, []float64{
			1,
			-1,
		}),
		BUb: []float64{1, -3},
	}
	_, err := lp.Solve(p, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrInfeasible)
}

// TestSolve_InfeasibleViaBounds: a ≥ requirement beyond the variable cap.
func TestSolve_InfeasibleViaBounds(t *testing.T) {
	p := &lp.Problem{
		C:     []float64{1},
		AUb:   mat.NewDense(1, 1, []float64{-1}),
		BUb:   []float64{-10},
		Upper: []float64{4},
	}
	_, err := lp.Solve(p, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrInfeasible)
}

// TestSolve_Unbounded: minimize −x with no cap on x.
func TestSolve_Unbounded(t *testing.T) {
	p := &lp.Problem{
		C:   []float64{-1, 0},
		AUb: mat.NewDense(1, 2, []float64{0, 1}),
		BUb: []float64{1},
	}
	_, err := lp.Solve(p, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrUnbounded)
}

// TestSolve_NoConstraints: zero rows and non-negative costs ⇒ origin.
func TestSolve_NoConstraints(t *testing.T) {
	res, err := lp.Solve(&lp.Problem{C: []float64{2, 0}}, lp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, res.X)

	_, err = lp.Solve(&lp.Problem{C: []float64{-1}}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrUnbounded)
}

// TestSolve_DimensionErrors rejects shape and finiteness violations.
func TestSolve_DimensionErrors(t *testing.T) {
	_, err := lp.Solve(&lp.Problem{}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrDimensionMismatch)

	_, err = lp.Solve(&lp.Problem{
		C:   []float64{1, 2},
		AUb: mat.NewDense(1, 1, []float64{1}),
		BUb: []float64{1},
	}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrDimensionMismatch)

	_, err = lp.Solve(&lp.Problem{C: []float64{math.NaN()}}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrDimensionMismatch)

	_, err = lp.Solve(&lp.Problem{C: []float64{1}, Upper: []float64{1, 2}}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrDimensionMismatch)

	_, err = lp.Solve(&lp.Problem{C: []float64{1}, Upper: []float64{-1}}, lp.DefaultOptions())
	assert.ErrorIs(t, err, lp.ErrInfeasible, "negative cap conflicts with x ≥ 0")
}

// TestSolve_PenaltySlackPattern mirrors the ballast formulation: a gate row
// with an expensive slack. The solver must close the gap with the cheap
// real variable and leave the slack at zero.
func TestSolve_PenaltySlackPattern(t *testing.T) {
	// minimize x + 1e7·s subject to −0.004x − s ≤ −0.10, x ≤ 100.
	p := &lp.Problem{
		C:     []float64{1, 1e7},
		AUb:   mat.NewDense(1, 2, []float64{-0.004, -1}),
		BUb:   []float64{-0.10},
		Upper: []float64{100, inf()},
	}
	res, err := lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 25.0, res.X[0], 1e-6)
	assert.InDelta(t, 0.0, res.X[1], 1e-9)

	// Shrink the cap below the requirement: the slack must absorb the rest.
	p.Upper[0] = 10
	res, err = lp.Solve(p, lp.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.X[0], 1e-6)
	assert.InDelta(t, 0.10-0.004*10, res.X[1], 1e-6)
}
