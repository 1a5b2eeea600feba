// Package gate defines stability gates — named pass/fail thresholds on
// draft, freeboard, under-keel clearance and trim — and the pure functions
// that evaluate them.
//
// Missing-value policy: every evaluation function propagates NaN. A missing
// input yields an undefined (NaN) result, never a silent zero; callers
// decide how to present "cannot be evaluated" (the sequencer reports it as
// StatusVerify).
//
// The central correctness property of the tide subsystem: forecast tide (a
// prediction) and required tide (a constraint-satisfaction threshold) are
// computed independently and only ever meet inside TideMargin. RequiredTide
// takes no forecast argument by construction.
package gate

import "errors"

var (
	// ErrBadRef indicates an unknown UKC reference-draft policy string.
	ErrBadRef = errors.New("gate: unknown UKC reference policy")

	// ErrBadComparator indicates an unknown comparator string.
	ErrBadComparator = errors.New("gate: unknown comparator")
)

// DefaultTideTolerance is the margin band (m) below which a passing tide
// check is still flagged as LIMIT.
const DefaultTideTolerance = 0.10

// Metric identifies the stability quantity a gate constrains.
type Metric int

const (
	FwdDraft Metric = iota
	AftDraft
	Freeboard
	UKC
	Trim
)

// String returns the report spelling of the metric.
func (m Metric) String() string {
	switch m {
	case FwdDraft:
		return "FWD_DRAFT"
	case AftDraft:
		return "AFT_DRAFT"
	case Freeboard:
		return "FREEBOARD"
	case UKC:
		return "UKC"
	case Trim:
		return "TRIM"
	default:
		return "UNKNOWN"
	}
}

// Comparator is the direction of a gate limit.
type Comparator int

const (
	// LE requires metric ≤ limit.
	LE Comparator = iota
	// GE requires metric ≥ limit.
	GE
)

// ParseComparator maps a gate-table comparator string to a Comparator.
func ParseComparator(s string) (Comparator, error) {
	switch s {
	case "<=", "LE", "MAX":
		return LE, nil
	case ">=", "GE", "MIN":
		return GE, nil
	default:
		return LE, ErrBadComparator
	}
}

// String returns the symbolic spelling of the comparator.
func (c Comparator) String() string {
	if c == GE {
		return ">="
	}

	return "<="
}

// Gate is a named limit on a stability metric. Immutable once loaded;
// evaluated, never mutated.
type Gate struct {
	Name       string
	Metric     Metric
	Comparator Comparator
	Limit      float64
	Unit       string
	Phase      string // applicability, e.g. "critical stages only"; empty = all stages
}

// Status classifies a tide-margin check.
type Status int

const (
	// StatusVerify: the forecast (or the required-tide inputs) are missing;
	// the check cannot be evaluated and needs manual verification.
	StatusVerify Status = iota

	// StatusFail: forecast tide is below the required tide.
	StatusFail

	// StatusLimit: passing, but by less than the tolerance band.
	StatusLimit

	// StatusOK: passing with margin to spare.
	StatusOK
)

// String returns the report spelling of the status.
func (s Status) String() string {
	switch s {
	case StatusFail:
		return "FAIL"
	case StatusLimit:
		return "LIMIT"
	case StatusOK:
		return "OK"
	default:
		return "VERIFY"
	}
}

// Ref selects which draft the UKC check references.
type Ref int

const (
	RefFwd Ref = iota
	RefAft
	RefMean
	RefMax
)

// ParseRef maps a stage-table policy string to a Ref. The empty string
// defaults to RefMax (the conservative choice: deepest end governs).
func ParseRef(s string) (Ref, error) {
	switch s {
	case "", "MAX":
		return RefMax, nil
	case "FWD":
		return RefFwd, nil
	case "AFT":
		return RefAft, nil
	case "MEAN":
		return RefMean, nil
	default:
		return RefMax, ErrBadRef
	}
}

// String returns the stage-table spelling of the policy.
func (r Ref) String() string {
	switch r {
	case RefFwd:
		return "FWD"
	case RefAft:
		return "AFT"
	case RefMean:
		return "MEAN"
	default:
		return "MAX"
	}
}
