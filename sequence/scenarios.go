package sequence

import (
	"sync"

	"github.com/vesselops/ballastgate/hydro"
	"github.com/vesselops/ballastgate/tank"
)

// Scenario is one independent what-if run: its own stages, catalog and
// options. Scenarios share nothing mutable; the hydro table is read-only.
type Scenario struct {
	Name    string
	Stages  []Stage
	Catalog tank.Catalog
	Options Options
}

// ScenarioResult pairs a scenario's report with its terminal error.
type ScenarioResult struct {
	Name   string
	Report *Report
	Err    error
}

// RunScenarios solves the scenarios concurrently, one goroutine each,
// every run on its own deep-copied catalog. The result slice is indexed
// like the input.
func RunScenarios(scenarios []Scenario, table *hydro.Table) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))

	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc Scenario) {
			defer wg.Done()
			rep, err := Run(sc.Stages, sc.Catalog.Clone(), table, sc.Options)
			results[i] = ScenarioResult{Name: sc.Name, Report: rep, Err: err}
		}(i, sc)
	}
	wg.Wait()

	return results
}
