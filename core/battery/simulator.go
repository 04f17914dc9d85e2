package battery

import "github.com/transitlab/busplan/core/model"

// VehicleResult is the outcome of simulating one vehicle's day.
// Infeasibility is a normal terminal state, not an error: FailedIndex
// points at the first event whose projected level would breach the
// minimum, and no later event is simulated.
type VehicleResult struct {
	Vehicle      string  `json:"vehicle"`
	Feasible     bool    `json:"feasible"`
	FailedIndex  int     `json:"failed_index,omitempty"`
	ProjectedKWh float64 `json:"projected_kwh,omitempty"`
	FinalKWh     float64 `json:"final_kwh"`
	ConsumedKWh  float64 `json:"consumed_kwh"`
	IdleSeconds  int     `json:"idle_seconds"`
	ChargeHours  float64 `json:"charge_hours"`
	Events       int     `json:"events"`
}

// FleetResult aggregates per-vehicle outcomes across the plan.
type FleetResult struct {
	Vehicles         []VehicleResult `json:"vehicles"`
	TotalConsumedKWh float64         `json:"total_consumed_kwh"`
	TotalIdleSeconds int             `json:"total_idle_seconds"`
	TotalChargeHours float64         `json:"total_charge_hours"`
	VehiclesUsed     int             `json:"vehicles_used"`
	Infeasible       int             `json:"infeasible"`
}

// SimulateVehicle walks one vehicle's chronologically sorted event list
// from a full battery, deducting each event's energy. The feasibility
// check runs before a delta is committed: a vehicle is infeasible at
// the first event for which level - delta would drop under the minimum,
// and the walk stops there.
func SimulateVehicle(vehicle string, events []model.Event, cfg Config) VehicleResult {
	events = append([]model.Event(nil), events...)
	model.SortByStart(events)

	res := VehicleResult{Vehicle: vehicle, Feasible: true, Events: len(events)}
	level := cfg.MaxLevelKWh()
	minLevel := cfg.MinLevelKWh()

	for i, ev := range events {
		delta := ev.EnergyKWh
		if level-delta < minLevel {
			res.Feasible = false
			res.FailedIndex = i
			res.ProjectedKWh = level - delta
			break
		}
		level -= delta

		if delta > 0 {
			res.ConsumedKWh += delta
		} else {
			res.ChargeHours += -delta / cfg.ChargeRateKW
		}
		if ev.Activity == model.ActivityIdle {
			res.IdleSeconds += ev.DurationSeconds()
		}
	}
	res.FinalKWh = level
	return res
}

// Simulate runs the battery walk for every vehicle and sums the fleet
// aggregates. Vehicles are processed in group order so results are
// deterministic.
func Simulate(groups model.ByVehicle, cfg Config) FleetResult {
	fleet := FleetResult{VehiclesUsed: len(groups.Vehicles())}
	for _, vehicle := range groups.Vehicles() {
		vr := SimulateVehicle(vehicle, groups.Events(vehicle), cfg)
		fleet.Vehicles = append(fleet.Vehicles, vr)
		fleet.TotalConsumedKWh += vr.ConsumedKWh
		fleet.TotalIdleSeconds += vr.IdleSeconds
		fleet.TotalChargeHours += vr.ChargeHours
		if !vr.Feasible {
			fleet.Infeasible++
		}
	}
	return fleet
}
