package metrics

// MultiSink fans events out to multiple sinks. Optional recorders are
// forwarded only to sinks that implement them.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanCheck forwards the run summary to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordPlanCheck(ev PlanCheckEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanCheck(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordVehicleResult forwards vehicle verdicts.
func (m *MultiSink) RecordVehicleResult(ev VehicleResultEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(VehicleResultRecorder); ok {
			if err := rec.RecordVehicleResult(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRepair forwards repair summaries.
func (m *MultiSink) RecordRepair(ev RepairEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RepairRecorder); ok {
			if err := rec.RecordRepair(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
