// Package lp provides a bounded-variable linear-programming primitive:
//
//	minimize    C·x
//	subject to  AUb·x ≤ BUb
//	            AEq·x = BEq
//	            0 ≤ x ≤ Upper   (Upper[i] = +Inf allowed)
//
// The implementation is a dense two-phase tableau simplex with Bland's
// anti-cycling rule. Finite upper bounds are folded in as inequality rows;
// phase 1 synthesizes a feasible basis via artificial variables, phase 2
// optimizes the caller's objective.
//
// The solver is exact in structure and deterministic: no randomness, no
// time-based behavior, and strictly sentinel errors. Problem sizes in this
// repository are tiny (tens of variables), so the dense tableau is the
// right trade.
//
// Errors (sentinel):
//
//	– ErrDimensionMismatch if matrix/vector shapes disagree or inputs are
//	  not finite where finiteness is required.
//	– ErrInfeasible        if no point satisfies the constraints and bounds.
//	– ErrUnbounded         if the objective decreases without limit.
//	– ErrIterationLimit    if the pivot budget is exhausted.
package lp

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch indicates inconsistent problem shapes or
	// non-finite coefficients.
	ErrDimensionMismatch = errors.New("lp: problem dimensions or coefficients are invalid")

	// ErrInfeasible indicates that no solution satisfies all constraints
	// and variable bounds.
	ErrInfeasible = errors.New("lp: problem is infeasible")

	// ErrUnbounded indicates the objective is unbounded below on the
	// feasible region.
	ErrUnbounded = errors.New("lp: problem is unbounded")

	// ErrIterationLimit indicates the simplex exceeded its pivot budget.
	ErrIterationLimit = errors.New("lp: iteration limit exceeded")
)

// DefaultEps is the numeric tolerance for pivoting and optimality tests.
const DefaultEps = 1e-9

// Problem is a bounded-variable LP in minimization form. Variables are
// implicitly non-negative; Upper may be nil (all +Inf) or hold per-variable
// caps. AUb/AEq may be nil when the corresponding side has no rows.
type Problem struct {
	C     []float64
	AUb   *mat.Dense
	BUb   []float64
	AEq   *mat.Dense
	BEq   []float64
	Upper []float64
}

// Result is a solved LP.
type Result struct {
	// X is the optimal point, length len(Problem.C).
	X []float64

	// Objective is C·X.
	Objective float64

	// Iterations is the total pivot count across both phases.
	Iterations int

	// Phase1Residual is the leftover artificial mass after phase 1; it is
	// ≈ 0 for any feasible problem and reported for diagnostics.
	Phase1Residual float64
}

// Options tunes the solver.
type Options struct {
	// Eps is the pivot/optimality tolerance. Non-positive ⇒ DefaultEps.
	Eps float64

	// MaxIter caps total pivots. Zero ⇒ 200·(rows+cols) of the tableau.
	MaxIter int
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps}
}
