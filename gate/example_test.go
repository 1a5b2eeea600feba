package gate_test

import (
	"fmt"
	"math"

	"github.com/vesselops/ballastgate/gate"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleRequiredTide
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A vessel drawing 2.90 m over a 3.20 m charted depth, with 0.10 m squat,
//	0.10 m safety allowance and a 0.60 m minimum clearance. The required
//	tide is a property of vessel and berth alone; the forecast only enters
//	the comparison afterwards.
func ExampleRequiredTide() {
	required := gate.RequiredTide(3.20, 2.90, 0.60, 0.10, 0.10)
	fmt.Printf("required tide %.2f m\n", required)

	// A forecast exactly on the requirement passes, but inside the
	// tolerance band it is flagged LIMIT rather than OK.
	fmt.Println("forecast 0.50:", gate.ClassifyTide(0.50, required, 0.10))
	fmt.Println("forecast 0.70:", gate.ClassifyTide(0.70, required, 0.10))
	fmt.Println("forecast 0.40:", gate.ClassifyTide(0.40, required, 0.10))

	// A missing forecast can never be graded.
	fmt.Println("no forecast:  ", gate.ClassifyTide(math.NaN(), required, 0.10))
	// Output:
	// required tide 0.50 m
	// forecast 0.50: LIMIT
	// forecast 0.70: OK
	// forecast 0.40: FAIL
	// no forecast:   VERIFY
}
