package timeline

import "fmt"

// Config defines the operating-day timeline parameters. The night
// window and day-start shift are schedule policy, not structure, so
// they are loaded from configuration rather than hardcoded.
type Config struct {
	// NightWindowEndSeconds closes the window [0, end) after midnight
	// in which a departure is treated as a continuation of the previous
	// operating day and shifted a full day forward.
	NightWindowEndSeconds int `json:"night_window_end_seconds"`
	// DayStartShiftSeconds is subtracted from the extended timeline for
	// display, so the rendered axis runs from the operating-day start
	// (04:00 through 02:00 the next day by default).
	DayStartShiftSeconds int `json:"day_start_shift_seconds"`
	// IdlePowerKW is the parasitic draw attributed to an idle bus.
	IdlePowerKW float64 `json:"idle_power_kw"`
	// DepotLocation is the placeholder location for synthetic idle
	// events.
	DepotLocation string `json:"depot_location"`
}

// SetDefaults applies the operating-day policy used by the planning team.
func (c *Config) SetDefaults() {
	if c.NightWindowEndSeconds == 0 {
		c.NightWindowEndSeconds = 2 * 3600
	}
	if c.DayStartShiftSeconds == 0 {
		c.DayStartShiftSeconds = 4 * 3600
	}
	if c.IdlePowerKW == 0 {
		c.IdlePowerKW = 5
	}
	if c.DepotLocation == "" {
		c.DepotLocation = "EHVBST"
	}
}

// Validate checks the configured windows are sane.
func (c Config) Validate() error {
	if c.NightWindowEndSeconds < 0 || c.NightWindowEndSeconds >= 24*3600 {
		return fmt.Errorf("night_window_end_seconds must be within a day, got %d", c.NightWindowEndSeconds)
	}
	if c.DayStartShiftSeconds < 0 || c.DayStartShiftSeconds >= 24*3600 {
		return fmt.Errorf("day_start_shift_seconds must be within a day, got %d", c.DayStartShiftSeconds)
	}
	if c.IdlePowerKW < 0 {
		return fmt.Errorf("idle_power_kw must not be negative, got %g", c.IdlePowerKW)
	}
	return nil
}
