package model

// Severity classifies a diagnostic record.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic describes a data quality finding at the input boundary or
// during normalization. Row numbers are 1-based positions in the source
// file including the header row, matching what an operator sees in a
// spreadsheet.
type Diagnostic struct {
	Row      int      `json:"row"`
	Field    string   `json:"field,omitempty"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
}
