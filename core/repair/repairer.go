// Package repair patches infeasible bus plans by inserting synthetic
// charging events wherever the projected battery level would breach the
// minimum threshold.
//
// Two policy decisions are fixed here and pinned by tests: the breach
// check uses the level before the current event's energy is applied,
// identical to the simulator's rule, and a charge that cannot be carved
// out of preceding idle time is backdated from the current event's
// start, with an optional post-pass shifting later events forward to
// restore contiguity.
package repair

import (
	"math"

	"github.com/transitlab/busplan/core/battery"
	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/timeline"
)

// VehicleOutcome reports what repair did to one vehicle.
type VehicleOutcome struct {
	Vehicle  string `json:"vehicle"`
	Inserted int    `json:"inserted"`
	// Repaired is false when the vehicle still fails verification
	// after insertion, meaning the schedule lacks the slack to charge.
	Repaired bool `json:"repaired"`
}

// Result summarizes a repair run. Unrepairable vehicles are reported,
// never fatal: the rest of the fleet is still patched.
type Result struct {
	Outcomes     []VehicleOutcome `json:"outcomes"`
	Inserted     int              `json:"inserted"`
	Unrepairable int              `json:"unrepairable"`
}

// Repair walks every vehicle's gap-filled timeline and inserts charging
// events so the plan verifies feasible, where the schedule allows it.
// The input grouping is not mutated.
func Repair(groups model.ByVehicle, battCfg battery.Config, cfg Config) (model.ByVehicle, Result) {
	var (
		all []model.Event
		res Result
	)
	for _, vehicle := range groups.Vehicles() {
		events, inserted := repairVehicle(vehicle, groups.Events(vehicle), battCfg, cfg)
		if cfg.OverlapPolicy != PolicyReport {
			events = shiftContiguous(events)
		}
		verify := battery.SimulateVehicle(vehicle, events, battCfg)
		res.Outcomes = append(res.Outcomes, VehicleOutcome{
			Vehicle:  vehicle,
			Inserted: inserted,
			Repaired: verify.Feasible,
		})
		res.Inserted += inserted
		if !verify.Feasible {
			res.Unrepairable++
		}
		all = append(all, events...)
	}
	return model.GroupByVehicle(all), res
}

func repairVehicle(vehicle string, events []model.Event, battCfg battery.Config, cfg Config) ([]model.Event, int) {
	events = append([]model.Event(nil), events...)
	model.SortByStart(events)

	out := make([]model.Event, 0, len(events))
	level := battCfg.MaxLevelKWh()
	minLevel := battCfg.MinLevelKWh()
	inserted := 0

	for _, ev := range events {
		if level-ev.EnergyKWh < minLevel {
			chargeNeeded := battCfg.MaxLevelKWh() - level
			durSec := chargeDurationSeconds(chargeNeeded, battCfg.ChargeRateKW, cfg.MinChargeSeconds)
			out = insertCharge(out, vehicle, ev.StartSeconds, durSec, battCfg, cfg)
			inserted++
			level = battCfg.MaxLevelKWh()
		}
		out = append(out, ev)
		level -= ev.EnergyKWh
	}
	return out, inserted
}

func chargeDurationSeconds(neededKWh, rateKW float64, floorSec int) int {
	sec := int(math.Ceil(neededKWh / rateKW * 3600))
	if sec < floorSec {
		sec = floorSec
	}
	return sec
}

// insertCharge places a charging event of durSec ending at nextStart.
// When the last appended event is a synthetic idle, the charge is
// carved out of its tail so no overlap is introduced; an idle shorter
// than the charge is consumed whole. Either way the full duration is
// kept, and a backdated charge overlaps whatever precedes it until the
// shift pass restores order.
func insertCharge(out []model.Event, vehicle string, nextStart, durSec int, battCfg battery.Config, cfg Config) []model.Event {
	start := nextStart - durSec
	if n := len(out); n > 0 && out[n-1].Synthetic && out[n-1].Activity == model.ActivityIdle {
		idle := &out[n-1]
		if idle.StartSeconds >= start {
			// Idle shorter than the charge: consume it entirely and keep
			// the full duration, so the inserted energy matches the walk's
			// reset to a full battery. The backdated charge overlaps what
			// precedes the idle until the shift pass restores order.
			out = out[:n-1]
		} else {
			idle.EndSeconds = start
			idle.EndClock = timeline.FormatClock(start)
			idle.EnergyKWh = idle.EnergyKWh * float64(idle.DurationSeconds()) / float64(idle.DurationSeconds()+durSec)
		}
	}
	durHours := float64(durSec) / 3600
	return append(out, model.Event{
		Vehicle:       vehicle,
		Activity:      model.ActivityCharging,
		StartClock:    timeline.FormatClock(start),
		EndClock:      timeline.FormatClock(start + durSec),
		StartSeconds:  start,
		EndSeconds:    start + durSec,
		StartLocation: cfg.ChargeLocation,
		EndLocation:   cfg.ChargeLocation,
		EnergyKWh:     -durHours * battCfg.ChargeRateKW,
		Synthetic:     true,
	})
}

// shiftContiguous pushes events forward by the amount they overlap the
// previous event, preserving durations, so insertion never leaves two
// activities running at once.
func shiftContiguous(events []model.Event) []model.Event {
	model.SortByStart(events)
	for i := 1; i < len(events); i++ {
		if prev := events[i-1]; events[i].StartSeconds < prev.EndSeconds {
			shift := prev.EndSeconds - events[i].StartSeconds
			events[i].StartSeconds += shift
			events[i].EndSeconds += shift
			events[i].StartClock = timeline.FormatClock(events[i].StartSeconds)
			events[i].EndClock = timeline.FormatClock(events[i].EndSeconds)
		}
	}
	return events
}
