package hydro_test

import (
	"fmt"

	"github.com/vesselops/ballastgate/hydro"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleTable_At
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A two-row hydrostatic table, queried halfway between the tabulated
//	drafts. Every coefficient interpolates linearly; queries outside the
//	span clamp to the boundary row.
func ExampleTable_At() {
	table, err := hydro.NewTable([]hydro.Row{
		{Tmean: 2.0, TPC: 8.0, MTC: 34.0, LCF: 0.76, LBP: 60.302},
		{Tmean: 3.0, TPC: 9.0, MTC: 36.0, LCF: 0.80, LBP: 60.302},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	p, err := table.At(2.5)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("TPC=%.2f MTC=%.2f LCF=%.2f\n", p.TPC, p.MTC, p.LCF)

	// Below the span: the shallowest row answers.
	p, _ = table.At(1.0)
	fmt.Printf("clamped TPC=%.2f\n", p.TPC)
	// Output:
	// TPC=8.50 MTC=35.00 LCF=0.78
	// clamped TPC=8.00
}
