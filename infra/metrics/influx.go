package metrics

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/transitlab/busplan/infra/logger"
)

// InfluxSink writes plan-check events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg Config) *InfluxSink {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing metrics backend never
// blocks a plan check.
func NewInfluxSinkWithFallback(cfg Config) MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordPlanCheck writes the run summary as a single point.
func (s *InfluxSink) RecordPlanCheck(ev PlanCheckEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_check").
		AddTag("run_id", ev.RunID).
		AddTag("feasible", strconv.FormatBool(ev.Infeasible == 0)).
		AddField("vehicles", ev.Vehicles).
		AddField("events", ev.Events).
		AddField("overlaps", ev.Overlaps).
		AddField("infeasible", ev.Infeasible).
		AddField("total_consumed_kwh", ev.TotalConsumedKWh).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordVehicleResult writes one vehicle's verdict.
func (s *InfluxSink) RecordVehicleResult(ev VehicleResultEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_result").
		AddTag("run_id", ev.RunID).
		AddTag("vehicle", ev.Vehicle).
		AddTag("feasible", strconv.FormatBool(ev.Feasible)).
		AddField("consumed_kwh", ev.ConsumedKWh).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRepair writes a repair-pass summary.
func (s *InfluxSink) RecordRepair(ev RepairEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_repair").
		AddTag("run_id", ev.RunID).
		AddField("inserted", ev.Inserted).
		AddField("unrepairable", ev.Unrepairable).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}
