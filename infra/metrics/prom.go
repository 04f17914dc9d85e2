package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records plan-check outcomes in Prometheus metrics.
type PromSink struct {
	checks       *prometheus.CounterVec
	inserted     prometheus.Counter
	unrepairable prometheus.Counter
	infeasible   prometheus.Gauge
	overlaps     prometheus.Gauge
	energy       prometheus.Gauge
	consumption  *prometheus.HistogramVec
}

// NewPromSink registers plan metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusAddr.
func NewPromSink(cfg Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "busplan_checks_total",
		Help: "Total number of plan checks run",
	}, []string{"feasible"})
	inserted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "busplan_charges_inserted_total",
		Help: "Total number of charging events inserted by plan repair",
	})
	unrepairable := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "busplan_unrepairable_vehicles_total",
		Help: "Total number of vehicles repair could not make feasible",
	})
	infeasible := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "busplan_infeasible_vehicles",
		Help: "Infeasible vehicles in the last checked plan",
	})
	overlaps := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "busplan_overlapping_pairs",
		Help: "Overlapping event pairs in the last checked plan",
	})
	energy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "busplan_fleet_energy_kwh",
		Help: "Total energy consumed by the fleet in the last checked plan",
	})
	consumption := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "busplan_vehicle_consumed_kwh",
		Help:    "Per-vehicle energy consumption distribution",
		Buckets: prometheus.LinearBuckets(0, 50, 10),
	}, []string{"feasible"})

	if err := reg.Register(checks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			checks = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(inserted); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			inserted = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unrepairable); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unrepairable = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(infeasible); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			infeasible = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(overlaps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			overlaps = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(energy); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			energy = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(consumption); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			consumption = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		checks:       checks,
		inserted:     inserted,
		unrepairable: unrepairable,
		infeasible:   infeasible,
		overlaps:     overlaps,
		energy:       energy,
		consumption:  consumption,
	}, nil
}

// RecordPlanCheck updates the per-run gauges and the check counter.
func (s *PromSink) RecordPlanCheck(ev PlanCheckEvent) error {
	s.checks.WithLabelValues(strconv.FormatBool(ev.Infeasible == 0)).Inc()
	s.infeasible.Set(float64(ev.Infeasible))
	s.overlaps.Set(float64(ev.Overlaps))
	s.energy.Set(ev.TotalConsumedKWh)
	return nil
}

// RecordVehicleResult observes one vehicle's consumption.
func (s *PromSink) RecordVehicleResult(ev VehicleResultEvent) error {
	s.consumption.WithLabelValues(strconv.FormatBool(ev.Feasible)).Observe(ev.ConsumedKWh)
	return nil
}

// RecordRepair counts inserted charges and unrepairable vehicles.
func (s *PromSink) RecordRepair(ev RepairEvent) error {
	s.inserted.Add(float64(ev.Inserted))
	s.unrepairable.Add(float64(ev.Unrepairable))
	return nil
}
