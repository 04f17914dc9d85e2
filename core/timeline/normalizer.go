package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/transitlab/busplan/core/model"
)

// ParseClock converts a wall-clock string to seconds since midnight.
// Accepted forms are HH:MM:SS and HH:MM.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
		}
		fields[i] = v
	}
	h, m, sec := fields[0], fields[1], fields[2]
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*3600 + m*60 + sec, nil
}

// FormatClock renders extended-timeline seconds back as HH:MM:SS,
// folding times past midnight back into the calendar day.
func FormatClock(seconds int) string {
	seconds %= model.SecondsPerDay
	if seconds < 0 {
		seconds += model.SecondsPerDay
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Normalize parses each event's clock times onto the extended
// operating-day timeline. Trips whose end precedes their start cross
// midnight and get a day added to the end; departures inside the night
// window are continuations of the previous operating day and shift a
// full day forward. Rows with unparseable times or zero duration are
// excluded and reported as diagnostics; the rest of the plan proceeds.
func Normalize(events []model.Event, cfg Config) ([]model.Event, []model.Diagnostic) {
	out := make([]model.Event, 0, len(events))
	var diags []model.Diagnostic

	for _, ev := range events {
		start, err := ParseClock(ev.StartClock)
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Row: ev.SourceRow, Field: "start time",
				Reason: err.Error(), Severity: model.SeverityError,
			})
			continue
		}
		end, err := ParseClock(ev.EndClock)
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Row: ev.SourceRow, Field: "end time",
				Reason: err.Error(), Severity: model.SeverityError,
			})
			continue
		}

		if end < start {
			end += model.SecondsPerDay
		}
		if start >= 0 && start < cfg.NightWindowEndSeconds {
			start += model.SecondsPerDay
			end += model.SecondsPerDay
		}

		if end <= start {
			diags = append(diags, model.Diagnostic{
				Row:      ev.SourceRow,
				Reason:   "zero-duration event dropped",
				Severity: model.SeverityWarning,
			})
			continue
		}

		ev.StartSeconds = start
		ev.EndSeconds = end
		out = append(out, ev)
	}
	return out, diags
}

// ShiftForDisplay maps extended-timeline seconds onto the display axis
// that starts at the operating-day start. Values before the shift wrap
// around to the end of the axis.
func ShiftForDisplay(seconds int, cfg Config) int {
	shifted := seconds - cfg.DayStartShiftSeconds
	if shifted < 0 {
		shifted += model.SecondsPerDay
	}
	return shifted
}
