package app

import "github.com/transitlab/busplan/infra/metrics"

// BuildSink assembles the configured metrics sinks. With nothing
// enabled a NopSink is returned so callers never branch on nil.
func BuildSink(cfg metrics.Config) (metrics.MetricsSink, error) {
	var sinks []metrics.MetricsSink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg))
	}
	switch len(sinks) {
	case 0:
		return metrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}
