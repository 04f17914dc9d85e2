// Package timetable checks a bus plan against the published timetable:
// every service trip must depart at a time the timetable lists.
package timetable

import (
	"github.com/transitlab/busplan/core/model"
)

// Mismatch is a service trip whose departure has no timetable entry.
type Mismatch struct {
	Vehicle      string `json:"vehicle"`
	StartClock   string `json:"start_time"`
	StartSeconds int    `json:"start_seconds"`
	Line         string `json:"line,omitempty"`
}

// Compare matches every service-trip departure in the plan against the
// timetable's departure seconds (since midnight, unshifted). Night
// continuations are folded back onto the calendar day before matching,
// since published timetables carry plain clock times.
func Compare(events []model.Event, departureSeconds []int) []Mismatch {
	known := make(map[int]struct{}, len(departureSeconds))
	for _, s := range departureSeconds {
		known[s%model.SecondsPerDay] = struct{}{}
	}

	var mismatches []Mismatch
	for _, ev := range events {
		if ev.Activity != model.ActivityServiceTrip {
			continue
		}
		if _, ok := known[ev.StartSeconds%model.SecondsPerDay]; !ok {
			mismatches = append(mismatches, Mismatch{
				Vehicle:      ev.Vehicle,
				StartClock:   ev.StartClock,
				StartSeconds: ev.StartSeconds,
				Line:         ev.Line,
			})
		}
	}
	return mismatches
}
