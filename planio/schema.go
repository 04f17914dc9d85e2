// Package planio reads tabular bus plans into typed events. The schema
// is validated up front: a file missing a required column is rejected,
// while per-row problems exclude only the affected row and surface as
// diagnostics.
package planio

import (
	"fmt"
	"strings"
)

// Column names of the plan table, case-normalized.
const (
	ColBus           = "bus"
	ColStartTime     = "start time"
	ColEndTime       = "end time"
	ColActivity      = "activity"
	ColStartLocation = "start location"
	ColEndLocation   = "end location"
	ColEnergy        = "energy consumption"
	ColLine          = "line"
)

var requiredColumns = []string{
	ColBus, ColStartTime, ColEndTime, ColActivity,
	ColStartLocation, ColEndLocation, ColEnergy,
}

// schema maps normalized column names to their position in the header.
type schema map[string]int

func newSchema(header []string) (schema, error) {
	s := make(schema, len(header))
	for i, col := range header {
		s[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("plan table is missing required columns: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

// field returns the trimmed cell for col, or "" when the column is
// absent or the record is short.
func (s schema) field(record []string, col string) string {
	idx, ok := s[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
