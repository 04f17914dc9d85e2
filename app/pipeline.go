// Package app wires the pipeline stages together: normalize, fill
// gaps, detect overlaps, simulate the batteries and optionally repair
// the plan. Commands and HTTP handlers both drive this package.
package app

import (
	"time"

	"github.com/transitlab/busplan/config"
	"github.com/transitlab/busplan/core/battery"
	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/overlap"
	"github.com/transitlab/busplan/core/repair"
	"github.com/transitlab/busplan/core/report"
	"github.com/transitlab/busplan/core/timeline"
	"github.com/transitlab/busplan/infra/logger"
	"github.com/transitlab/busplan/infra/metrics"
)

// Pipeline runs plan checks with a fixed configuration.
type Pipeline struct {
	cfg  *config.Config
	log  logger.Logger
	sink metrics.MetricsSink
}

// New creates a pipeline. A nil logger or sink defaults to no-ops.
func New(cfg *config.Config, log logger.Logger, sink metrics.MetricsSink) *Pipeline {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Pipeline{cfg: cfg, log: log, sink: sink}
}

// CheckResult carries everything one plan check produced.
type CheckResult struct {
	// Groups is the normalized, gap-filled plan per vehicle.
	Groups model.ByVehicle
	// Diagnostics merges input-boundary and normalization findings.
	Diagnostics []model.Diagnostic
	Overlaps    []overlap.Record
	Report      report.FleetReport
}

// Check runs the read-only pipeline over parsed plan rows. Input
// diagnostics from the boundary are merged with normalization ones.
func (p *Pipeline) Check(events []model.Event, diags []model.Diagnostic) CheckResult {
	norm, ndiags := timeline.Normalize(events, p.cfg.Timeline)
	diags = append(append([]model.Diagnostic(nil), diags...), ndiags...)

	filled := timeline.FillGaps(model.GroupByVehicle(norm), p.cfg.Timeline)
	overlaps := overlap.Detect(filled)
	fleet := battery.Simulate(filled, p.cfg.Battery)
	rep := report.New(fleet, overlaps)

	p.record(rep, filled)
	p.log.Infof("plan check %s: %d vehicles, %d infeasible, %d overlapping pairs, %.1f kWh",
		rep.RunID, fleet.VehiclesUsed, fleet.Infeasible, len(overlaps), fleet.TotalConsumedKWh)

	return CheckResult{
		Groups:      filled,
		Diagnostics: diags,
		Overlaps:    overlaps,
		Report:      rep,
	}
}

// RepairResult extends a check with the patched plan.
type RepairResult struct {
	CheckResult
	// Repaired is the plan with synthetic charging events inserted.
	Repaired model.ByVehicle
	Outcome  repair.Result
	// Verified is the simulation of the repaired plan.
	Verified battery.FleetResult
}

// Repair runs the full pipeline, patches infeasible vehicles and
// verifies the result with a second simulation pass.
func (p *Pipeline) Repair(events []model.Event, diags []model.Diagnostic) RepairResult {
	check := p.Check(events, diags)

	repaired, outcome := repair.Repair(check.Groups, p.cfg.Battery, p.cfg.Repair)
	verified := battery.Simulate(repaired, p.cfg.Battery)
	check.Report.Repair = &outcome

	if rec, ok := p.sink.(metrics.RepairRecorder); ok {
		if err := rec.RecordRepair(metrics.RepairEvent{
			RunID:        check.Report.RunID,
			Inserted:     outcome.Inserted,
			Unrepairable: outcome.Unrepairable,
			Time:         time.Now().UTC(),
		}); err != nil {
			p.log.Warnf("record repair metrics: %v", err)
		}
	}
	p.log.Infof("plan repair %s: %d charges inserted, %d vehicles unrepairable",
		check.Report.RunID, outcome.Inserted, outcome.Unrepairable)

	return RepairResult{
		CheckResult: check,
		Repaired:    repaired,
		Outcome:     outcome,
		Verified:    verified,
	}
}

func (p *Pipeline) record(rep report.FleetReport, groups model.ByVehicle) {
	now := time.Now().UTC()
	events := 0
	for _, v := range groups.Vehicles() {
		events += len(groups.Events(v))
	}
	if err := p.sink.RecordPlanCheck(metrics.PlanCheckEvent{
		RunID:            rep.RunID,
		Vehicles:         rep.Fleet.VehiclesUsed,
		Events:           events,
		Overlaps:         len(rep.Overlaps),
		Infeasible:       rep.Fleet.Infeasible,
		TotalConsumedKWh: rep.Fleet.TotalConsumedKWh,
		Time:             now,
	}); err != nil {
		p.log.Warnf("record plan check metrics: %v", err)
	}
	if rec, ok := p.sink.(metrics.VehicleResultRecorder); ok {
		for _, v := range rep.Fleet.Vehicles {
			if err := rec.RecordVehicleResult(metrics.VehicleResultEvent{
				RunID:       rep.RunID,
				Vehicle:     v.Vehicle,
				Feasible:    v.Feasible,
				ConsumedKWh: v.ConsumedKWh,
				Time:        now,
			}); err != nil {
				p.log.Warnf("record vehicle metrics: %v", err)
				break
			}
		}
	}
}
