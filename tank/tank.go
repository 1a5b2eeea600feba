package tank

import (
	"fmt"
	"math"
)

// Tank is an immutable ballast-tank snapshot for one solver stage.
//
// PosFromMid is the longitudinal position from midship in meters, positive
// aft by convention. Current, Min, Max and Capacity are in tons. PumpRate is
// t/h. Priority biases the LP objective: higher-priority tanks cost more to
// move, so the solver prefers leaving them alone.
type Tank struct {
	Name       string
	PosFromMid float64
	Current    float64
	Min        float64
	Max        float64
	Capacity   float64
	Mode       Mode
	InUse      bool
	PumpRate   float64
	Priority   float64
}

// Validate checks the structural invariants of the tank.
//
//   - Capacity must be positive.
//   - PumpRate must be positive.
//   - min ≤ current ≤ max ≤ capacity, except that current may exceed max by
//     up to OverCapacityTolerance·capacity (warning band; see OverFill).
func (t Tank) Validate() error {
	if !(t.Capacity > 0) {
		return fmt.Errorf("%w: %q has capacity %.3f t", ErrBadCapacity, t.Name, t.Capacity)
	}
	if !(t.PumpRate > 0) {
		return fmt.Errorf("%w: %q has pump rate %.3f t/h", ErrBadPumpRate, t.Name, t.PumpRate)
	}
	if t.Min < 0 || t.Min > t.Max || t.Max > t.Capacity {
		return fmt.Errorf("%w: %q min=%.3f max=%.3f capacity=%.3f", ErrBadBounds, t.Name, t.Min, t.Max, t.Capacity)
	}
	slack := OverCapacityTolerance * t.Capacity
	if t.Current < t.Min || t.Current > t.Max+slack {
		return fmt.Errorf("%w: %q current=%.3f outside [%.3f, %.3f]", ErrBadBounds, t.Name, t.Current, t.Min, t.Max)
	}

	return nil
}

// OverFill reports how many tons the current content exceeds Max by, zero
// when within bounds. A positive value inside the tolerance band is the
// §data-quality warning condition surfaced by the sequencer.
func (t Tank) OverFill() float64 {
	return math.Max(0, t.Current-t.Max)
}

// Movable reports whether the stage solver may move any water through the
// tank at all.
func (t Tank) Movable() bool {
	return t.InUse && t.Mode != Fixed && t.Mode != Blocked
}

// Bounds derives the four non-negative LP variable bounds from the tank's
// mode and content.
//
//   - Inactive, Fixed or Blocked: all four bounds are zero.
//   - DischargeOnly: fill upper bound forced to zero; discharge upper bound
//     is current − min.
//   - FillOnly: discharge upper bound forced to zero; fill upper bound is
//     max − current.
//   - FillDischarge: fill up to max − current, discharge up to current − min.
//
// Headroom is clamped at zero so a tank inside the over-capacity warning
// band cannot be filled further.
func (t Tank) Bounds() VarBounds {
	if !t.Movable() {
		return VarBounds{}
	}
	fill := math.Max(0, t.Max-t.Current)
	disch := math.Max(0, t.Current-t.Min)
	switch t.Mode {
	case FillOnly:
		disch = 0
	case DischargeOnly:
		fill = 0
	}

	return VarBounds{FillMax: fill, DischargeMax: disch}
}

// WithCurrent returns a copy of the tank holding tons, clamped to [Min, Max].
// This is the carry-forward primitive: applying a solved delta never drives
// a tank outside its allowable content.
func (t Tank) WithCurrent(tons float64) Tank {
	if tons < t.Min {
		tons = t.Min
	}
	if tons > t.Max {
		tons = t.Max
	}
	t.Current = tons

	return t
}

// WithMode returns a copy of the tank operating under m. Used by the
// sequencer's operability overrides (pre-ballast-only tanks become Fixed
// once operational stages begin).
func (t Tank) WithMode(m Mode) Tank {
	t.Mode = m

	return t
}
