// Package metrics records plan-check outcomes for observability. Sinks
// implement the base MetricsSink interface; richer recorders are
// optional and discovered via type assertion.
package metrics

import (
	"fmt"
	"time"
)

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Validate checks mandatory fields for enabled sinks.
func (c Config) Validate() error {
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("influx_url is required when the influx sink is enabled")
	}
	return nil
}

// PlanCheckEvent summarizes one full pipeline run.
type PlanCheckEvent struct {
	RunID            string
	Vehicles         int
	Events           int
	Overlaps         int
	Infeasible       int
	TotalConsumedKWh float64
	Time             time.Time
}

// MetricsSink records plan-check summaries.
type MetricsSink interface {
	RecordPlanCheck(ev PlanCheckEvent) error
}

// VehicleResultEvent is one vehicle's simulation outcome.
type VehicleResultEvent struct {
	RunID       string
	Vehicle     string
	Feasible    bool
	ConsumedKWh float64
	Time        time.Time
}

// VehicleResultRecorder records per-vehicle outcomes.
type VehicleResultRecorder interface {
	RecordVehicleResult(ev VehicleResultEvent) error
}

// RepairEvent summarizes a plan-repair pass.
type RepairEvent struct {
	RunID        string
	Inserted     int
	Unrepairable int
	Time         time.Time
}

// RepairRecorder records repair passes.
type RepairRecorder interface {
	RecordRepair(ev RepairEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanCheck(PlanCheckEvent) error         { return nil }
func (NopSink) RecordVehicleResult(VehicleResultEvent) error { return nil }
func (NopSink) RecordRepair(RepairEvent) error               { return nil }
