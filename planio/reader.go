package planio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/timeline"
)

// ReadPlan parses a CSV plan table into events. Row diagnostics use
// 1-based file positions including the header, so row 2 is the first
// data row. A malformed row is excluded and reported; the rest of the
// plan proceeds. Missing energy values are treated as zero and flagged.
func ReadPlan(r io.Reader) ([]model.Event, []model.Diagnostic, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read plan header: %w", err)
	}
	sch, err := newSchema(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		events []model.Event
		diags  []model.Diagnostic
	)
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Row: row, Reason: fmt.Sprintf("unreadable row: %v", err), Severity: model.SeverityError,
			})
			continue
		}

		ev := model.Event{
			Vehicle:       sch.field(record, ColBus),
			Activity:      strings.ToLower(sch.field(record, ColActivity)),
			Line:          sch.field(record, ColLine),
			StartClock:    sch.field(record, ColStartTime),
			EndClock:      sch.field(record, ColEndTime),
			StartLocation: sch.field(record, ColStartLocation),
			EndLocation:   sch.field(record, ColEndLocation),
			SourceRow:     row,
		}

		// Missing-data report: every required field except energy,
		// which has its own zero-with-flag handling below.
		missing := false
		for _, col := range []string{ColBus, ColStartTime, ColEndTime, ColActivity} {
			if sch.field(record, col) == "" {
				diags = append(diags, model.Diagnostic{
					Row: row, Field: col, Reason: "missing value", Severity: model.SeverityError,
				})
				missing = true
			}
		}
		if missing {
			continue
		}
		for _, col := range []string{ColStartLocation, ColEndLocation} {
			if sch.field(record, col) == "" {
				diags = append(diags, model.Diagnostic{
					Row: row, Field: col, Reason: "missing value", Severity: model.SeverityWarning,
				})
			}
		}

		switch raw := sch.field(record, ColEnergy); raw {
		case "":
			diags = append(diags, model.Diagnostic{
				Row: row, Field: ColEnergy,
				Reason: "missing energy consumption, assuming 0 kWh", Severity: model.SeverityWarning,
			})
		default:
			kwh, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil {
				diags = append(diags, model.Diagnostic{
					Row: row, Field: ColEnergy,
					Reason: fmt.Sprintf("invalid energy value %q", raw), Severity: model.SeverityError,
				})
				continue
			}
			ev.EnergyKWh = kwh
		}

		events = append(events, ev)
	}
	return events, diags, nil
}

// ReadTimetable parses a published timetable CSV with a departure_time
// column (HH:MM or HH:MM:SS) into departure seconds since midnight.
func ReadTimetable(r io.Reader) ([]int, []model.Diagnostic, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read timetable header: %w", err)
	}
	col := -1
	for i, c := range header {
		if strings.ToLower(strings.TrimSpace(c)) == "departure_time" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, fmt.Errorf("timetable is missing the departure_time column")
	}

	var (
		departures []int
		diags      []model.Diagnostic
	)
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil || col >= len(record) {
			diags = append(diags, model.Diagnostic{
				Row: row, Field: "departure_time", Reason: "unreadable row", Severity: model.SeverityError,
			})
			continue
		}
		sec, err := timeline.ParseClock(record[col])
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Row: row, Field: "departure_time", Reason: err.Error(), Severity: model.SeverityError,
			})
			continue
		}
		departures = append(departures, sec)
	}
	return departures, diags, nil
}
