package gate

import "math"

// FreeboardMin returns the lesser of the forward and aft freeboards for a
// vessel of moulded depth depthVessel. NaN inputs propagate.
func FreeboardMin(depthVessel, fwd, aft float64) float64 {
	return math.Min(depthVessel-fwd, depthVessel-aft)
}

// UKCEnd is the under-keel clearance at the end of the stage:
//
//	depthRef + tide − draftEnd − squat − safety
//
// Undefined (NaN) if any input is missing — never silently zero.
func UKCEnd(depthRef, tide, draftEnd, squat, safety float64) float64 {
	return depthRef + tide - draftEnd - squat - safety
}

// RequiredTide is the minimum tide height needed to satisfy ukcMin at the
// reference draft, floored at zero:
//
//	max(0, draftRef + squat + safety + ukcMin − depthRef)
//
// It deliberately takes no forecast input: the requirement is a property of
// the vessel and the berth, not of the weather. NaN inputs propagate.
func RequiredTide(depthRef, draftRef, ukcMin, squat, safety float64) float64 {
	return math.Max(0, draftRef+squat+safety+ukcMin-depthRef)
}

// TideMargin compares the forecast against the requirement. This is the
// only place the two quantities meet.
func TideMargin(forecastTide, requiredTide float64) float64 {
	return forecastTide - requiredTide
}

// ClassifyTide grades a tide margin.
//
//	VERIFY  — forecast (or requirement) missing; cannot evaluate.
//	FAIL    — margin < 0.
//	LIMIT   — 0 ≤ margin < tol (tol ≤ 0 falls back to DefaultTideTolerance).
//	OK      — otherwise.
func ClassifyTide(forecastTide, requiredTide, tol float64) Status {
	if math.IsNaN(forecastTide) || math.IsNaN(requiredTide) {
		return StatusVerify
	}
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultTideTolerance
	}
	margin := TideMargin(forecastTide, requiredTide)
	switch {
	case margin < 0:
		return StatusFail
	case margin < tol:
		return StatusLimit
	default:
		return StatusOK
	}
}

// RefDraft resolves the UKC reference draft under policy r.
func RefDraft(r Ref, fwd, aft float64) float64 {
	switch r {
	case RefFwd:
		return fwd
	case RefAft:
		return aft
	case RefMean:
		return (fwd + aft) / 2.0
	default:
		return math.Max(fwd, aft)
	}
}

// Margin reports how far value sits on the safe side of the gate limit
// (positive = satisfied). For a ≤ gate the margin is limit−value, for a
// ≥ gate it is value−limit.
func (g Gate) Margin(value float64) float64 {
	if g.Comparator == GE {
		return value - g.Limit
	}

	return g.Limit - value
}

// Violated reports whether value breaches the gate by more than eps.
func (g Gate) Violated(value, eps float64) bool {
	m := g.Margin(value)

	return !math.IsNaN(m) && m < -eps
}
