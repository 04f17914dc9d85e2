package repair

import "fmt"

// Overlap policies for charges that do not fit in existing idle time.
const (
	// PolicyShift pushes later events forward to restore contiguity.
	PolicyShift = "shift"
	// PolicyReport leaves the introduced overlaps in place for the
	// overlap detector to surface.
	PolicyReport = "report"
)

// Config tunes charging insertion. The charger power itself comes from
// the battery configuration; this controls placement policy.
type Config struct {
	// MinChargeSeconds is the floor on any inserted charging session.
	// Depot practice is that a bus does not plug in for less.
	MinChargeSeconds int `json:"min_charge_seconds"`
	// OverlapPolicy selects what happens when an inserted charge could
	// not be carved out of idle time: "shift" or "report".
	OverlapPolicy string `json:"overlap_policy"`
	// ChargeLocation is the placeholder location for synthetic
	// charging events.
	ChargeLocation string `json:"charge_location"`
}

// SetDefaults applies depot charging practice.
func (c *Config) SetDefaults() {
	if c.MinChargeSeconds == 0 {
		c.MinChargeSeconds = 15 * 60
	}
	if c.OverlapPolicy == "" {
		c.OverlapPolicy = PolicyShift
	}
	if c.ChargeLocation == "" {
		c.ChargeLocation = "EHVGAR"
	}
}

// Validate checks the charge floor and policy are usable.
func (c Config) Validate() error {
	if c.MinChargeSeconds < 0 {
		return fmt.Errorf("min_charge_seconds must not be negative, got %d", c.MinChargeSeconds)
	}
	if c.OverlapPolicy != PolicyShift && c.OverlapPolicy != PolicyReport {
		return fmt.Errorf("unknown overlap policy %q", c.OverlapPolicy)
	}
	return nil
}
