// Package export serializes pipeline output for downstream consumers:
// the plan table back in its tabular schema, and reports as JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/report"
	"github.com/transitlab/busplan/core/timeline"
)

var planHeader = []string{
	"bus", "activity", "line", "start time", "end time",
	"start location", "end location", "energy consumption",
	"start_seconds", "end_seconds", "start_shifted", "end_shifted",
}

// WritePlanCSV writes events in the tabular plan schema, with the
// extended-timeline seconds and the display-shifted columns appended
// for chart renderers.
func WritePlanCSV(w io.Writer, events []model.Event, cfg timeline.Config) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(planHeader); err != nil {
		return err
	}
	for _, ev := range events {
		rec := []string{
			ev.Vehicle,
			ev.Activity,
			ev.Line,
			timeline.FormatClock(ev.StartSeconds),
			timeline.FormatClock(ev.EndSeconds),
			ev.StartLocation,
			ev.EndLocation,
			strconv.FormatFloat(ev.EnergyKWh, 'f', -1, 64),
			strconv.Itoa(ev.StartSeconds),
			strconv.Itoa(ev.EndSeconds),
			strconv.Itoa(timeline.ShiftForDisplay(ev.StartSeconds, cfg)),
			strconv.Itoa(timeline.ShiftForDisplay(ev.EndSeconds, cfg)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlanJSON writes the event table to w in JSON format.
func WritePlanJSON(w io.Writer, events []model.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

// WriteReportJSON writes a fleet report to w in JSON format.
func WriteReportJSON(w io.Writer, r report.FleetReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DisplayOrder returns events reordered for chart rendering: buses that
// finish within the calendar day first, night buses after, each block
// sorted by vehicle identifier.
func DisplayOrder(groups model.ByVehicle) []model.Event {
	var day, night []string
	for _, vehicle := range groups.Vehicles() {
		maxEnd := 0
		for _, ev := range groups.Events(vehicle) {
			if ev.EndSeconds > maxEnd {
				maxEnd = ev.EndSeconds
			}
		}
		if maxEnd > model.SecondsPerDay {
			night = append(night, vehicle)
		} else {
			day = append(day, vehicle)
		}
	}
	sort.Strings(day)
	sort.Strings(night)

	var out []model.Event
	for _, vehicle := range append(day, night...) {
		out = append(out, groups.Events(vehicle)...)
	}
	return out
}
