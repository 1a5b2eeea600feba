// Package tank defines the ballast-tank value type, its operating modes,
// and the derivation of LP variable bounds from tank state.
//
// Each tank contributes two non-negative variables to the per-stage LP:
// fill (tons added) and discharge (tons removed), with the net movement
// being fill − discharge. Bounded-variable LP solvers want non-negative
// variables, and the split lets priority weighting and pump-time costs
// apply uniformly to both directions.
//
// Errors (sentinel):
//
//	– ErrBadCapacity  if capacity is not positive.
//	– ErrBadBounds    if min/current/max violate min ≤ current ≤ max ≤ capacity
//	                  (with a 5% over-capacity tolerance band on current, which
//	                  downgrades to a data-quality warning at the sequencer).
//	– ErrBadPumpRate  if the pump rate is not positive.
//	– ErrBadMode      if an operating-mode string cannot be parsed.
//	– ErrDuplicateTank if a catalog contains two tanks with the same name.
package tank

import "errors"

var (
	// ErrBadCapacity indicates a non-positive tank capacity.
	ErrBadCapacity = errors.New("tank: capacity must be positive")

	// ErrBadBounds indicates min/current/max outside min ≤ current ≤ max ≤ capacity.
	ErrBadBounds = errors.New("tank: content bounds violate min ≤ current ≤ max ≤ capacity")

	// ErrBadPumpRate indicates a non-positive pump rate.
	ErrBadPumpRate = errors.New("tank: pump rate must be positive")

	// ErrBadMode indicates an unknown operating-mode name.
	ErrBadMode = errors.New("tank: unknown operating mode")

	// ErrDuplicateTank indicates a catalog with two tanks of the same name.
	ErrDuplicateTank = errors.New("tank: duplicate tank name in catalog")
)

// OverCapacityTolerance is the fractional band above nominal capacity that
// validation tolerates (sounding tables routinely exceed nominal capacity by
// a few percent). Content inside the band is a data-quality warning at the
// sequencer; content above it fails validation outright.
const OverCapacityTolerance = 0.05

// Mode is a tank's operating mode for the stage being solved.
type Mode int

const (
	// FillDischarge allows movement in both directions (default).
	FillDischarge Mode = iota

	// FillOnly forbids discharging; the discharge variable gets a zero bound.
	FillOnly

	// DischargeOnly forbids filling; the fill variable gets a zero bound.
	DischargeOnly

	// Fixed keeps the content frozen for the stage (both bounds zero).
	Fixed

	// Blocked marks the tank unavailable entirely (both bounds zero).
	Blocked
)

// String returns the canonical catalog spelling of the mode.
func (m Mode) String() string {
	switch m {
	case FillDischarge:
		return "FILL_DISCHARGE"
	case FillOnly:
		return "FILL_ONLY"
	case DischargeOnly:
		return "DISCHARGE_ONLY"
	case Fixed:
		return "FIXED"
	case Blocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// ParseMode maps a catalog mode string to a Mode. The empty string means
// the column was absent and defaults to FillDischarge.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "FILL_DISCHARGE":
		return FillDischarge, nil
	case "FILL_ONLY":
		return FillOnly, nil
	case "DISCHARGE_ONLY":
		return DischargeOnly, nil
	case "FIXED":
		return Fixed, nil
	case "BLOCKED":
		return Blocked, nil
	default:
		return FillDischarge, ErrBadMode
	}
}

// Restriction limits when a tank may be operated across a stage sequence.
// It is an operability property, distinct from the per-stage Mode: the
// sequencer translates it into mode overrides stage by stage.
type Restriction int

const (
	// RestrictNone places no sequence-level restriction on the tank.
	RestrictNone Restriction = iota

	// RestrictPreBallastOnly allows moving the tank during preparatory
	// stages only; on operational stages the sequencer forces it Fixed.
	RestrictPreBallastOnly
)

// String returns the catalog spelling of the restriction.
func (r Restriction) String() string {
	if r == RestrictPreBallastOnly {
		return "PRE_BALLAST_ONLY"
	}

	return "NONE"
}

// VarBounds are the four non-negative bounds of a tank's two LP variables.
// The lower bounds are always zero; they are carried explicitly because the
// LP contract is stated in terms of all four.
type VarBounds struct {
	FillMin      float64
	FillMax      float64
	DischargeMin float64
	DischargeMax float64
}
