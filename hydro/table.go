package hydro

import (
	"fmt"
	"math"
	"sort"
)

// Table is an immutable, sorted hydrostatic table supporting piecewise-linear
// interpolation over mean draft.
//
// Queries outside the tabulated envelope clamp to the boundary row rather
// than erroring: physical drafts can transiently exceed the envelope while
// the solver iterates, and the boundary coefficients remain the best
// available estimate there.
type Table struct {
	rows []Row
}

// NewTable validates rows and returns an immutable Table.
//
// Rules:
//   - at least one row (ErrEmptyTable);
//   - strictly increasing Tmean (ErrNonMonotonic);
//   - TPC > 0 and MTC > 0 at every knot (ErrInvalidHydro, wrapped with the
//     offending draft).
//
// The input slice is copied; callers may reuse it.
func NewTable(rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	cp := make([]Row, len(rows))
	copy(cp, rows)
	for i, r := range cp {
		if math.IsNaN(r.Tmean) || math.IsInf(r.Tmean, 0) {
			return nil, fmt.Errorf("%w: row %d has Tmean=%v", ErrBadDraft, i, r.Tmean)
		}
		if i > 0 && r.Tmean <= cp[i-1].Tmean {
			return nil, fmt.Errorf("%w: Tmean=%.4f at row %d follows %.4f", ErrNonMonotonic, r.Tmean, i, cp[i-1].Tmean)
		}
		if !(r.TPC > 0) || !(r.MTC > 0) {
			return nil, fmt.Errorf("%w: TPC=%.4f MTC=%.4f at Tmean=%.4f", ErrInvalidHydro, r.TPC, r.MTC, r.Tmean)
		}
	}

	return &Table{rows: cp}, nil
}

// Span reports the tabulated mean-draft envelope [lo, hi].
func (t *Table) Span() (lo, hi float64) {
	return t.rows[0].Tmean, t.rows[len(t.rows)-1].Tmean
}

// Len reports the number of tabulated rows.
func (t *Table) Len() int { return len(t.rows) }

// At interpolates the hydrostatic coefficients at meanDraft.
//
// Interpolation is piecewise-linear between the two bracketing knots.
// Queries at or beyond either boundary return that boundary row unchanged
// (clamping, never extrapolation). A NaN/Inf query returns ErrBadDraft.
// If an interpolated TPC or MTC is non-positive, At returns ErrInvalidHydro
// with the offending values.
func (t *Table) At(meanDraft float64) (Point, error) {
	if math.IsNaN(meanDraft) || math.IsInf(meanDraft, 0) {
		return Point{}, fmt.Errorf("%w: got %v", ErrBadDraft, meanDraft)
	}

	n := len(t.rows)
	if meanDraft <= t.rows[0].Tmean {
		return pointOf(t.rows[0]), nil
	}
	if meanDraft >= t.rows[n-1].Tmean {
		return pointOf(t.rows[n-1]), nil
	}

	// First knot strictly above the query; its predecessor brackets below.
	hi := sort.Search(n, func(i int) bool { return t.rows[i].Tmean > meanDraft })
	lo := hi - 1
	a, b := t.rows[lo], t.rows[hi]
	f := (meanDraft - a.Tmean) / (b.Tmean - a.Tmean)

	p := Point{
		Tmean: meanDraft,
		TPC:   lerp(a.TPC, b.TPC, f),
		MTC:   lerp(a.MTC, b.MTC, f),
		LCF:   lerp(a.LCF, b.LCF, f),
		LBP:   lerp(a.LBP, b.LBP, f),
	}
	if !(p.TPC > 0) || !(p.MTC > 0) {
		return Point{}, fmt.Errorf("%w: interpolated TPC=%.4f MTC=%.4f at Tmean=%.4f", ErrInvalidHydro, p.TPC, p.MTC, meanDraft)
	}

	return p, nil
}

func pointOf(r Row) Point {
	return Point{Tmean: r.Tmean, TPC: r.TPC, MTC: r.MTC, LCF: r.LCF, LBP: r.LBP}
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }
