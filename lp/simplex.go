package lp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// row is one sign-normalized standard-form constraint over the original
// variables: coef·x {≤,=} rhs with rhs ≥ 0. negated marks an inequality
// whose sides were flipped (originally negative rhs), which therefore needs
// a surplus column and an artificial instead of a plain slack.
type row struct {
	coef    []float64
	rhs     float64
	eq      bool
	negated bool
}

// Solve runs the two-phase simplex on p. See the package documentation for
// the exact problem form and error semantics.
func Solve(p *Problem, opts Options) (Result, error) {
	eps := opts.Eps
	if eps <= 0 || math.IsNaN(eps) {
		eps = DefaultEps
	}

	n, rows, err := standardForm(p)
	if err != nil {
		return Result{}, err
	}

	// No rows at all: x=0 is optimal unless some cost is negative, in
	// which case that variable is unbounded above.
	if len(rows) == 0 {
		for j, c := range p.C {
			if c < -eps {
				return Result{}, fmt.Errorf("%w: variable %d has negative cost and no bound", ErrUnbounded, j)
			}
		}

		return Result{X: make([]float64, n)}, nil
	}

	numSlack, numArt := 0, 0
	for _, r := range rows {
		if !r.eq {
			numSlack++
		}
		if r.eq || r.negated {
			numArt++
		}
	}

	// Column layout: [0,n) original · slack/surplus · artificial · RHS.
	m := len(rows)
	artStart := n + numSlack
	ncols := artStart + numArt + 1
	rhsCol := ncols - 1

	tab := mat.NewDense(m, ncols, nil)
	basis := make([]int, m)

	slackIdx, artIdx := n, artStart
	for i, r := range rows {
		for j, v := range r.coef {
			tab.Set(i, j, v)
		}
		tab.Set(i, rhsCol, r.rhs)
		switch {
		case r.eq:
			tab.Set(i, artIdx, 1)
			basis[i] = artIdx
			artIdx++
		case r.negated:
			// ≥ after flipping: surplus −1 plus an artificial to start
			// from a feasible basis.
			tab.Set(i, slackIdx, -1)
			slackIdx++
			tab.Set(i, artIdx, 1)
			basis[i] = artIdx
			artIdx++
		default:
			tab.Set(i, slackIdx, 1)
			basis[i] = slackIdx
			slackIdx++
		}
	}

	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = 200 * (m + ncols)
	}

	allowed := make([]bool, rhsCol)
	for j := range allowed {
		allowed[j] = true
	}

	// Phase 1: minimize the artificial mass. Reduced costs are priced
	// against the initial basis (c_B = 1 on artificial rows).
	obj := make([]float64, ncols)
	for i := range rows {
		if basis[i] >= artStart {
			for j := 0; j < ncols; j++ {
				obj[j] -= tab.At(i, j)
			}
		}
	}
	for j := artStart; j < rhsCol; j++ {
		obj[j]++ // c_j = 1 for artificials
	}

	it1, err := iterate(tab, obj, basis, allowed, eps, maxIter)
	if err != nil {
		return Result{}, fmt.Errorf("phase 1: %w", err)
	}
	residual := -obj[rhsCol]
	if residual > math.Max(1e3*eps, 1e-7) {
		return Result{Iterations: it1, Phase1Residual: residual},
			fmt.Errorf("%w: artificial residual %.3e", ErrInfeasible, residual)
	}

	// Drive leftover artificials out of the basis where a real pivot
	// column exists; a row with none is redundant and inert (its real
	// coefficients are all ~0, so later pivots never change it).
	for i := 0; i < m; i++ {
		if basis[i] < artStart {
			continue
		}
		for j := 0; j < artStart; j++ {
			if math.Abs(tab.At(i, j)) > eps {
				pivot(tab, obj, basis, i, j)
				break
			}
		}
	}
	for j := artStart; j < rhsCol; j++ {
		allowed[j] = false
	}

	// Phase 2: the caller's objective, priced against the phase-1 basis.
	for j := range obj {
		obj[j] = 0
	}
	for j := 0; j < n; j++ {
		obj[j] = p.C[j]
	}
	for i, bi := range basis {
		if bi < n && p.C[bi] != 0 {
			cb := p.C[bi]
			for j := 0; j < ncols; j++ {
				obj[j] -= cb * tab.At(i, j)
			}
		}
	}

	it2, err := iterate(tab, obj, basis, allowed, eps, maxIter)
	if err != nil {
		return Result{}, fmt.Errorf("phase 2: %w", err)
	}

	x := make([]float64, n)
	for i, bi := range basis {
		if bi < n {
			v := tab.At(i, rhsCol)
			if v < 0 && v > -math.Max(1e3*eps, 1e-7) {
				v = 0
			}
			x[bi] = v
		}
	}
	objective := 0.0
	for j := 0; j < n; j++ {
		objective += p.C[j] * x[j]
	}

	return Result{
		X:              x,
		Objective:      objective,
		Iterations:     it1 + it2,
		Phase1Residual: math.Max(0, residual),
	}, nil
}

// iterate runs simplex pivots until optimality under Bland's rule.
func iterate(tab *mat.Dense, obj []float64, basis []int, allowed []bool, eps float64, maxIter int) (int, error) {
	m, ncols := tab.Dims()
	rhsCol := ncols - 1

	for it := 0; ; it++ {
		if it >= maxIter {
			return it, ErrIterationLimit
		}

		// Entering variable: the lowest-index allowed column with a
		// negative reduced cost (Bland).
		pc := -1
		for j := 0; j < rhsCol; j++ {
			if allowed[j] && obj[j] < -eps {
				pc = j
				break
			}
		}
		if pc < 0 {
			return it, nil // optimal
		}

		// Leaving variable: minimal ratio; ties broken by the smallest
		// basis index (Bland).
		pr := -1
		best := math.Inf(1)
		for i := 0; i < m; i++ {
			a := tab.At(i, pc)
			if a <= eps {
				continue
			}
			r := tab.At(i, rhsCol) / a
			switch {
			case r < best-eps:
				best, pr = r, i
			case r < best+eps && pr >= 0 && basis[i] < basis[pr]:
				pr = i
			}
		}
		if pr < 0 {
			return it, ErrUnbounded
		}

		pivot(tab, obj, basis, pr, pc)
	}
}

// pivot normalizes row pr on column pc and eliminates pc everywhere else,
// including the objective row.
func pivot(tab *mat.Dense, obj []float64, basis []int, pr, pc int) {
	m, ncols := tab.Dims()

	pv := tab.At(pr, pc)
	for j := 0; j < ncols; j++ {
		tab.Set(pr, j, tab.At(pr, j)/pv)
	}
	for i := 0; i < m; i++ {
		if i == pr {
			continue
		}
		f := tab.At(i, pc)
		if f == 0 {
			continue
		}
		for j := 0; j < ncols; j++ {
			tab.Set(i, j, tab.At(i, j)-f*tab.At(pr, j))
		}
	}
	if f := obj[pc]; f != 0 {
		for j := 0; j < ncols; j++ {
			obj[j] -= f * tab.At(pr, j)
		}
	}
	basis[pr] = pc
}

// standardForm validates p and flattens it into sign-normalized rows over
// the original variables: AUb rows, AEq rows, then one cap row per finite
// upper bound.
func standardForm(p *Problem) (int, []row, error) {
	if p == nil || len(p.C) == 0 {
		return 0, nil, fmt.Errorf("%w: empty objective", ErrDimensionMismatch)
	}
	n := len(p.C)
	for j, c := range p.C {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, nil, fmt.Errorf("%w: C[%d]=%v", ErrDimensionMismatch, j, c)
		}
	}
	if p.Upper != nil && len(p.Upper) != n {
		return 0, nil, fmt.Errorf("%w: len(Upper)=%d, want %d", ErrDimensionMismatch, len(p.Upper), n)
	}

	var rows []row
	appendRows := func(a *mat.Dense, b []float64, eq bool, side string) error {
		if a == nil {
			if len(b) != 0 {
				return fmt.Errorf("%w: %s has rhs but no matrix", ErrDimensionMismatch, side)
			}

			return nil
		}
		r, c := a.Dims()
		if c != n || r != len(b) {
			return fmt.Errorf("%w: %s is %dx%d with %d rhs entries, want %d columns", ErrDimensionMismatch, side, r, c, len(b), n)
		}
		for i := 0; i < r; i++ {
			coef := make([]float64, n)
			for j := 0; j < n; j++ {
				v := a.At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: %s[%d][%d]=%v", ErrDimensionMismatch, side, i, j, v)
				}
				coef[j] = v
			}
			if math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
				return fmt.Errorf("%w: %s rhs[%d]=%v", ErrDimensionMismatch, side, i, b[i])
			}
			rows = append(rows, row{coef: coef, rhs: b[i], eq: eq})
		}

		return nil
	}
	if err := appendRows(p.AUb, p.BUb, false, "AUb"); err != nil {
		return 0, nil, err
	}
	if err := appendRows(p.AEq, p.BEq, true, "AEq"); err != nil {
		return 0, nil, err
	}

	for j, u := range p.Upper {
		if math.IsNaN(u) || math.IsInf(u, -1) {
			return 0, nil, fmt.Errorf("%w: Upper[%d]=%v", ErrDimensionMismatch, j, u)
		}
		if u < 0 {
			return 0, nil, fmt.Errorf("%w: Upper[%d]=%.6g conflicts with x ≥ 0", ErrInfeasible, j, u)
		}
		if math.IsInf(u, 1) {
			continue
		}
		coef := make([]float64, n)
		coef[j] = 1
		rows = append(rows, row{coef: coef, rhs: u})
	}

	// Sign-normalize so every rhs is non-negative; flipped inequalities
	// are flagged for surplus+artificial columns.
	for i := range rows {
		if rows[i].rhs < 0 {
			for j := range rows[i].coef {
				rows[i].coef[j] = -rows[i].coef[j]
			}
			rows[i].rhs = -rows[i].rhs
			if !rows[i].eq {
				rows[i].negated = true
			}
		}
	}

	return n, rows, nil
}
