package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/vesselops/ballastgate/gate"
	"github.com/vesselops/ballastgate/hydro"
	"github.com/vesselops/ballastgate/solver"
	"github.com/vesselops/ballastgate/tank"
)

// Record is one header-keyed input row. An absent key and an empty value
// are treated alike.
type Record map[string]string

// HydroRows normalizes hydrostatic-table records. Every column is
// required; numeric validity (monotonic drafts, positive TPC/MTC) is the
// hydro package's concern, not the schema's.
func HydroRows(records []Record) ([]hydro.Row, error) {
	rows := make([]hydro.Row, 0, len(records))
	for i, rec := range records {
		p := parser{table: "hydro", row: i + 1, rec: rec}
		r := hydro.Row{
			Tmean: p.required(ColTmean),
			TPC:   p.required(ColTPC),
			MTC:   p.required(ColMTC),
			LCF:   p.required(ColLCF),
			LBP:   p.required(ColLBP),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, r)
	}

	return rows, nil
}

// TankRows normalizes tank-catalog records. Min/Max/mode/pump/priority
// default per the documented scheme; Max defaults to the row's capacity.
func TankRows(records []Record) ([]tank.Tank, error) {
	tanks := make([]tank.Tank, 0, len(records))
	for i, rec := range records {
		p := parser{table: "tanks", row: i + 1, rec: rec}
		t := tank.Tank{
			Name:       p.text(ColTank),
			Current:    p.required(ColCurrent),
			Capacity:   p.required(ColCapacity),
			PosFromMid: p.required(ColPos),
			InUse:      p.flag(ColUseFlag),
			Min:        p.optional(ColMin, 0),
			PumpRate:   p.optional(ColPumpRate, DefaultPumpRate),
			Priority:   p.optional(ColPriority, DefaultPriority),
		}
		t.Max = p.optional(ColMax, t.Capacity)
		t.Mode = p.mode(ColMode)
		if p.err != nil {
			return nil, p.err
		}
		tanks = append(tanks, t)
	}

	return tanks, nil
}

// StageRows normalizes stage-table records into solver stages. Optional
// limits stay NaN; the reference-draft policy defaults to MAX.
func StageRows(records []Record) ([]solver.Stage, error) {
	stages := make([]solver.Stage, 0, len(records))
	for i, rec := range records {
		p := parser{table: "stages", row: i + 1, rec: rec}
		st := solver.NewStage(p.text(ColStage), p.required(ColFwd), p.required(ColAft))

		st.ForecastTide = p.optional(ColForecastTide, math.NaN())
		st.DepthRef = p.optional(ColDepthRef, math.NaN())
		st.Squat = p.optional(ColSquat, math.NaN())
		st.Safety = p.optional(ColSafety, math.NaN())
		st.FwdMax = p.optional(ColFwdMax, math.NaN())
		st.AftMin = p.optional(ColAftMin, math.NaN())
		st.FreeboardMin = p.optional(ColFbMin, math.NaN())
		st.UKCMin = p.optional(ColUkcMin, math.NaN())
		st.TargetFwd = p.optional(ColTargetFwd, math.NaN())
		st.TargetAft = p.optional(ColTargetAft, math.NaN())
		st.UKCRef = p.ref(ColUkcRef)

		if p.err != nil {
			return nil, p.err
		}
		stages = append(stages, st)
	}

	return stages, nil
}

// parser accumulates the first failure while letting a row read linearly.
type parser struct {
	table string
	row   int
	rec   Record
	err   error
}

func (p *parser) fail(col, reason string, sentinel error) {
	if p.err == nil {
		p.err = &SchemaError{Table: p.table, Column: col, Row: p.row, Reason: reason, Err: sentinel}
	}
}

func (p *parser) raw(col string) (string, bool) {
	v, ok := p.rec[col]
	v = strings.TrimSpace(v)

	return v, ok && v != ""
}

func (p *parser) text(col string) string {
	v, ok := p.raw(col)
	if !ok {
		p.fail(col, "required column missing", ErrMissingColumn)
	}

	return v
}

func (p *parser) required(col string) float64 {
	v, ok := p.raw(col)
	if !ok {
		p.fail(col, "required column missing", ErrMissingColumn)

		return math.NaN()
	}

	return p.number(col, v)
}

func (p *parser) optional(col string, def float64) float64 {
	v, ok := p.raw(col)
	if !ok {
		return def
	}

	return p.number(col, v)
}

func (p *parser) number(col, v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, "not a number: "+strconv.Quote(v), nil)

		return math.NaN()
	}

	return f
}

func (p *parser) flag(col string) bool {
	v, ok := p.raw(col)
	if !ok {
		p.fail(col, "required column missing", ErrMissingColumn)

		return false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	default:
		p.fail(col, "not a flag: "+strconv.Quote(v), nil)

		return false
	}
}

func (p *parser) mode(col string) tank.Mode {
	v, _ := p.raw(col)
	m, err := tank.ParseMode(v)
	if err != nil {
		p.fail(col, "unknown mode: "+strconv.Quote(v), err)
	}

	return m
}

func (p *parser) ref(col string) gate.Ref {
	v, _ := p.raw(col)
	r, err := gate.ParseRef(v)
	if err != nil {
		p.fail(col, "unknown reference policy: "+strconv.Quote(v), err)
	}

	return r
}
