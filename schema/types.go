// Package schema normalizes header-keyed input records into the typed
// rows the numeric packages consume. All column-name knowledge lives
// here, in one pass at the input boundary: the hydro, tank and solver
// packages never see a string-keyed record.
//
// Policy: a missing required column is fatal (SchemaError wrapping
// ErrMissingColumn); a missing optional column takes its documented
// default; an unparseable value is a SchemaError carrying the table,
// column and 1-based data-row number.
package schema

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indicates a required column absent from the input.
var ErrMissingColumn = errors.New("schema: required column missing")

// Canonical hydrostatic-table column names.
const (
	ColTmean = "Tmean_m"
	ColTPC   = "TPC_t_per_cm"
	ColMTC   = "MTC_t_m_per_cm"
	ColLCF   = "LCF_m"
	ColLBP   = "LBP_m"
)

// Canonical tank-catalog column names. Min/Max/mode/pump/priority are
// optional with defaults 0 / capacity / FILL_DISCHARGE / 50.0 / 1.0.
const (
	ColTank     = "Tank"
	ColCurrent  = "Current_t"
	ColCapacity = "Capacity_t"
	ColPos      = "x_from_mid_m"
	ColUseFlag  = "use_flag"
	ColMin      = "Min_t"
	ColMax      = "Max_t"
	ColMode     = "mode"
	ColPumpRate = "pump_rate_tph"
	ColPriority = "priority_weight"
)

// Canonical stage-table column names. Everything past Current_AFT_m is
// optional and defaults to "not set" (NaN; UKC_Ref defaults to MAX).
const (
	ColStage        = "Stage"
	ColFwd          = "Current_FWD_m"
	ColAft          = "Current_AFT_m"
	ColForecastTide = "Forecast_Tide_m"
	ColDepthRef     = "DepthRef_m"
	ColSquat        = "Squat_m"
	ColSafety       = "SafetyAllow_m"
	ColFwdMax       = "FWD_MAX_m"
	ColAftMin       = "AFT_MIN_m"
	ColFbMin        = "FB_MIN_m"
	ColUkcMin       = "UKC_MIN_m"
	ColTargetFwd    = "Target_FWD_m"
	ColTargetAft    = "Target_AFT_m"
	ColUkcRef       = "UKC_Ref"
)

// Defaults for optional tank columns.
const (
	DefaultPumpRate = 50.0
	DefaultPriority = 1.0
)

// SchemaError locates one normalization failure. Row is the 1-based data
// row (0 for table-level conditions).
type SchemaError struct {
	Table  string
	Column string
	Row    int
	Reason string
	Err    error
}

// Error renders the full location context.
func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("schema: table %q column %q row %d: %s", e.Table, e.Column, e.Row, e.Reason)
	}

	return fmt.Sprintf("schema: table %q column %q: %s", e.Table, e.Column, e.Reason)
}

// Unwrap exposes the underlying sentinel, if any.
func (e *SchemaError) Unwrap() error { return e.Err }
