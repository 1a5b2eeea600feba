// Package hydro defines the tabulated hydrostatic data model and the
// sentinel errors shared by table loading and interpolation.
//
// A hydrostatic table maps mean draft to the coefficients that govern how a
// vessel responds to weight changes:
//
//	TPC — tons per centimeter immersion (t/cm)
//	MTC — moment to change trim one centimeter (t·m/cm)
//	LCF — longitudinal center of flotation from midship (m, positive aft)
//	LBP — length between perpendiculars (m)
//
// Errors (sentinel):
//
//	– ErrEmptyTable   if a table is built from zero rows.
//	– ErrNonMonotonic if rows are not strictly increasing in mean draft.
//	– ErrInvalidHydro if TPC or MTC is non-positive (tabulated or interpolated).
//	– ErrBadDraft     if an interpolation query is NaN or ±Inf.
package hydro

import "errors"

var (
	// ErrEmptyTable indicates the table was built from zero rows.
	ErrEmptyTable = errors.New("hydro: table must contain at least one row")

	// ErrNonMonotonic indicates rows are not strictly increasing in mean draft.
	ErrNonMonotonic = errors.New("hydro: rows must be strictly increasing in mean draft")

	// ErrInvalidHydro indicates a non-positive TPC or MTC. A table carrying
	// such a row cannot describe a floating vessel and must fail fast.
	ErrInvalidHydro = errors.New("hydro: TPC and MTC must be positive")

	// ErrBadDraft indicates a NaN or infinite interpolation query.
	ErrBadDraft = errors.New("hydro: query draft must be finite")
)

// Row is one tabulated hydrostatic row, keyed by mean draft.
type Row struct {
	Tmean float64 // mean draft, m
	TPC   float64 // tons per centimeter immersion, t/cm
	MTC   float64 // moment to change trim one centimeter, t·m/cm
	LCF   float64 // longitudinal center of flotation from midship, m (positive aft)
	LBP   float64 // length between perpendiculars, m
}

// Point is an interpolated hydrostatic snapshot at a specific mean draft.
// It is derived at solver-evaluation time and never persisted.
//
// Invariant: TPC > 0 and MTC > 0 (enforced by Table.At).
type Point struct {
	Tmean float64
	TPC   float64
	MTC   float64
	LCF   float64
	LBP   float64
}
