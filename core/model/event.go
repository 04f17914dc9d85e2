package model

import "sort"

// Activity values observed in operational schedules. The set is open:
// source files may carry operator-specific tags which are passed through
// untouched. Idle and charging are the only synthetic activities.
const (
	ActivityServiceTrip = "service trip"
	ActivityDeadhead    = "deadhead"
	ActivityMaterial    = "material trip"
	ActivityIdle        = "idle"
	ActivityCharging    = "charging"
)

// SecondsPerDay is the length of a calendar day on the extended timeline.
const SecondsPerDay = 24 * 3600

// Event is one row of a bus operating schedule. StartSeconds and
// EndSeconds are offsets from the reference midnight on an extended
// timeline that may exceed a day for night continuations.
type Event struct {
	Vehicle       string  `json:"vehicle"`
	Activity      string  `json:"activity"`
	Line          string  `json:"line,omitempty"`
	StartClock    string  `json:"start_time"`
	EndClock      string  `json:"end_time"`
	StartSeconds  int     `json:"start_seconds"`
	EndSeconds    int     `json:"end_seconds"`
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	EnergyKWh     float64 `json:"energy_kwh"`
	// Synthetic marks events inserted by gap filling or plan repair,
	// as opposed to rows present in the source schedule.
	Synthetic bool `json:"synthetic,omitempty"`
	// SourceRow is the 1-based row in the source file including the
	// header, zero for synthetic events. Carried for diagnostics only.
	SourceRow int `json:"-"`
}

// DurationSeconds returns the event length on the extended timeline.
func (e Event) DurationSeconds() int { return e.EndSeconds - e.StartSeconds }

// DurationHours returns the event length in hours, for energy-rate math.
func (e Event) DurationHours() float64 { return float64(e.DurationSeconds()) / 3600 }

// Overlaps reports whether two half-open intervals [start, end)
// intersect. Back-to-back events, where one ends exactly when the next
// starts, do not overlap.
func (e Event) Overlaps(other Event) bool {
	return e.StartSeconds < other.EndSeconds && other.StartSeconds < e.EndSeconds
}

// SortByStart orders events ascending by start, then end, in place.
// The sort is stable so equal intervals keep their source order.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartSeconds != events[j].StartSeconds {
			return events[i].StartSeconds < events[j].StartSeconds
		}
		return events[i].EndSeconds < events[j].EndSeconds
	})
}

// ByVehicle groups events per vehicle, preserving each vehicle's source
// row order. Vehicles returns identifiers in first-seen order so report
// output is deterministic.
type ByVehicle struct {
	order  []string
	groups map[string][]Event
}

// GroupByVehicle splits a flat event list into per-vehicle timelines.
func GroupByVehicle(events []Event) ByVehicle {
	g := ByVehicle{groups: make(map[string][]Event)}
	for _, ev := range events {
		if _, ok := g.groups[ev.Vehicle]; !ok {
			g.order = append(g.order, ev.Vehicle)
		}
		g.groups[ev.Vehicle] = append(g.groups[ev.Vehicle], ev)
	}
	return g
}

// Vehicles returns the vehicle identifiers in first-seen order.
func (g ByVehicle) Vehicles() []string { return g.order }

// Events returns the event list for one vehicle.
func (g ByVehicle) Events(vehicle string) []Event { return g.groups[vehicle] }

// Flatten concatenates all groups back into a single list, vehicle by
// vehicle in first-seen order.
func (g ByVehicle) Flatten() []Event {
	var out []Event
	for _, v := range g.order {
		out = append(out, g.groups[v]...)
	}
	return out
}
