// Package overlap finds conflicting assignments: pairs of events for
// the same vehicle whose time intervals intersect.
package overlap

import "github.com/transitlab/busplan/core/model"

// Record describes one overlapping pair within a vehicle's timeline.
// Indices refer to positions in the vehicle's sorted event list.
type Record struct {
	Vehicle string      `json:"vehicle"`
	IndexA  int         `json:"index_a"`
	IndexB  int         `json:"index_b"`
	EventA  model.Event `json:"event_a"`
	EventB  model.Event `json:"event_b"`
}

// Detect returns every overlapping event pair per vehicle, in vehicle
// order and then in discovery order (ascending first index, then
// second). Intervals are half-open, so back-to-back events do not
// conflict. The pairwise scan is quadratic per vehicle, which is fine
// for the tens of events a bus runs in a day.
func Detect(groups model.ByVehicle) []Record {
	var records []Record
	for _, vehicle := range groups.Vehicles() {
		events := append([]model.Event(nil), groups.Events(vehicle)...)
		model.SortByStart(events)
		for i := 0; i < len(events); i++ {
			for j := i + 1; j < len(events); j++ {
				if events[i].Overlaps(events[j]) {
					records = append(records, Record{
						Vehicle: vehicle,
						IndexA:  i,
						IndexB:  j,
						EventA:  events[i],
						EventB:  events[j],
					})
				}
			}
		}
	}
	return records
}
