// Package report renders pipeline results into the feasibility report
// handed to planners, one message per bus plus fleet totals.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/transitlab/busplan/core/battery"
	"github.com/transitlab/busplan/core/overlap"
	"github.com/transitlab/busplan/core/repair"
)

// Stats summarizes the spread of per-vehicle consumption.
type Stats struct {
	MeanConsumedKWh   float64 `json:"mean_consumed_kwh"`
	StdDevConsumedKWh float64 `json:"stddev_consumed_kwh"`
}

// FleetReport is the full outcome of one plan check.
type FleetReport struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Fleet       battery.FleetResult  `json:"fleet"`
	Overlaps    []overlap.Record     `json:"overlaps,omitempty"`
	Repair      *repair.Result       `json:"repair,omitempty"`
	Stats       Stats                `json:"stats"`
}

// New assembles a fleet report with a fresh run identifier.
func New(fleet battery.FleetResult, overlaps []overlap.Record) FleetReport {
	consumed := make([]float64, 0, len(fleet.Vehicles))
	for _, v := range fleet.Vehicles {
		consumed = append(consumed, v.ConsumedKWh)
	}
	var s Stats
	if len(consumed) > 0 {
		s.MeanConsumedKWh = stat.Mean(consumed, nil)
	}
	if len(consumed) > 1 {
		s.StdDevConsumedKWh = stat.StdDev(consumed, nil)
	}
	return FleetReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Fleet:       fleet,
		Overlaps:    overlaps,
		Stats:       s,
	}
}

// Messages renders the per-bus verdicts and fleet totals in the format
// planners are used to reading.
func (r FleetReport) Messages() []string {
	msgs := make([]string, 0, len(r.Fleet.Vehicles)+4)
	for _, v := range r.Fleet.Vehicles {
		if v.Feasible {
			msgs = append(msgs, fmt.Sprintf("Bus plan for bus %s is feasible. Amount of energy used: %.2f kWh", v.Vehicle, v.ConsumedKWh))
		} else {
			msgs = append(msgs, fmt.Sprintf("Bus %s: battery level would drop below the minimum during event %d. Plan is infeasible.", v.Vehicle, v.FailedIndex+1))
		}
	}
	msgs = append(msgs,
		fmt.Sprintf("Total energy used: %.2f kWh", r.Fleet.TotalConsumedKWh),
		fmt.Sprintf("Total charge time: %.2f h", r.Fleet.TotalChargeHours),
		fmt.Sprintf("Total idle time: %.2f h", float64(r.Fleet.TotalIdleSeconds)/3600),
		fmt.Sprintf("Buses used: %d", r.Fleet.VehiclesUsed),
	)
	return msgs
}
