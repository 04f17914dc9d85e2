package timeline

import "github.com/transitlab/busplan/core/model"

// FillGaps inserts synthetic idle events into every strictly-positive
// gap between consecutive events of the same vehicle, so each vehicle's
// sorted timeline is contiguous. Idle energy is the configured idle
// power over the gap duration; idle events are anchored at the depot.
// The input groups are not mutated; a new grouping is returned.
func FillGaps(groups model.ByVehicle, cfg Config) model.ByVehicle {
	var filled []model.Event
	for _, vehicle := range groups.Vehicles() {
		events := append([]model.Event(nil), groups.Events(vehicle)...)
		model.SortByStart(events)

		prevEnd := -1
		for _, ev := range events {
			if prevEnd >= 0 && ev.StartSeconds > prevEnd {
				filled = append(filled, idleEvent(vehicle, prevEnd, ev.StartSeconds, cfg))
			}
			if ev.EndSeconds > ev.StartSeconds {
				filled = append(filled, ev)
			}
			if ev.EndSeconds > prevEnd {
				prevEnd = ev.EndSeconds
			}
		}
	}
	return model.GroupByVehicle(filled)
}

func idleEvent(vehicle string, start, end int, cfg Config) model.Event {
	gapHours := float64(end-start) / 3600
	return model.Event{
		Vehicle:       vehicle,
		Activity:      model.ActivityIdle,
		StartClock:    FormatClock(start),
		EndClock:      FormatClock(end),
		StartSeconds:  start,
		EndSeconds:    end,
		StartLocation: cfg.DepotLocation,
		EndLocation:   cfg.DepotLocation,
		EnergyKWh:     cfg.IdlePowerKW * gapHours,
		Synthetic:     true,
	}
}
