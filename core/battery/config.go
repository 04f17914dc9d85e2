package battery

import "fmt"

// Config defines the battery model shared by simulation and plan
// repair. Usable charge is bounded by the min and max fractions of the
// nominal capacity; the charge rate is the depot charger power.
type Config struct {
	CapacityKWh  float64 `json:"capacity_kwh"`
	MinFraction  float64 `json:"min_fraction"`
	MaxFraction  float64 `json:"max_fraction"`
	ChargeRateKW float64 `json:"charge_rate_kw"`
}

// SetDefaults applies the fleet's standard battery parameters.
func (c *Config) SetDefaults() {
	if c.CapacityKWh == 0 {
		c.CapacityKWh = 255
	}
	if c.MinFraction == 0 {
		c.MinFraction = 0.10
	}
	if c.MaxFraction == 0 {
		c.MaxFraction = 0.90
	}
	if c.ChargeRateKW == 0 {
		c.ChargeRateKW = 450
	}
}

// Validate checks the battery bounds are usable.
func (c Config) Validate() error {
	if c.CapacityKWh <= 0 {
		return fmt.Errorf("capacity_kwh must be positive, got %g", c.CapacityKWh)
	}
	if c.MinFraction < 0 || c.MaxFraction > 1 || c.MinFraction >= c.MaxFraction {
		return fmt.Errorf("battery fractions must satisfy 0 <= min < max <= 1, got min=%g max=%g", c.MinFraction, c.MaxFraction)
	}
	if c.ChargeRateKW <= 0 {
		return fmt.Errorf("charge_rate_kw must be positive, got %g", c.ChargeRateKW)
	}
	return nil
}

// MinLevelKWh is the lowest state of charge a vehicle may reach.
func (c Config) MinLevelKWh() float64 { return c.MinFraction * c.CapacityKWh }

// MaxLevelKWh is the state of charge a vehicle leaves the depot with.
func (c Config) MaxLevelKWh() float64 { return c.MaxFraction * c.CapacityKWh }
