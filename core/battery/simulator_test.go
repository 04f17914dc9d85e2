package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitlab/busplan/core/model"
)

func defaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

func trip(start, end int, kwh float64) model.Event {
	return model.Event{
		Vehicle:      "1",
		Activity:     model.ActivityServiceTrip,
		StartSeconds: start,
		EndSeconds:   end,
		EnergyKWh:    kwh,
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := defaultConfig()
	assert.InDelta(t, 25.5, cfg.MinLevelKWh(), 1e-9)
	assert.InDelta(t, 229.5, cfg.MaxLevelKWh(), 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinFraction = 0.95
	assert.Error(t, cfg.Validate())
	cfg = defaultConfig()
	cfg.CapacityKWh = -1
	assert.Error(t, cfg.Validate())
}

func TestSimulateVehicleFeasible(t *testing.T) {
	events := []model.Event{
		trip(0, 3600, 30),
		trip(3600, 7200, 30),
		trip(7200, 10800, 30),
	}
	res := SimulateVehicle("1", events, defaultConfig())
	assert.True(t, res.Feasible)
	assert.InDelta(t, 90, res.ConsumedKWh, 1e-9)
	assert.InDelta(t, 229.5-90, res.FinalKWh, 1e-9)
	assert.Equal(t, 3, res.Events)
}

func TestSimulateVehicleInfeasibleStopsAtEvent(t *testing.T) {
	events := []model.Event{
		trip(0, 3600, 210),
		trip(3600, 7200, 10),
	}
	res := SimulateVehicle("1", events, defaultConfig())
	require.False(t, res.Feasible)
	// 229.5 - 210 = 19.5, below the 25.5 minimum: the check fires
	// before the delta is committed and nothing after it is simulated.
	assert.Equal(t, 0, res.FailedIndex)
	assert.InDelta(t, 19.5, res.ProjectedKWh, 1e-9)
	assert.InDelta(t, 0, res.ConsumedKWh, 1e-9)
	assert.InDelta(t, 229.5, res.FinalKWh, 1e-9)
}

func TestSimulateVehicleChargeAndIdleAccounting(t *testing.T) {
	cfg := defaultConfig()
	events := []model.Event{
		trip(0, 3600, 100),
		{Vehicle: "1", Activity: model.ActivityCharging, StartSeconds: 3600, EndSeconds: 4500, EnergyKWh: -112.5},
		{Vehicle: "1", Activity: model.ActivityIdle, StartSeconds: 4500, EndSeconds: 8100, EnergyKWh: 5},
	}
	res := SimulateVehicle("1", events, cfg)
	require.True(t, res.Feasible)
	assert.InDelta(t, 105, res.ConsumedKWh, 1e-9)
	// 112.5 kWh back at 450 kW is a quarter hour.
	assert.InDelta(t, 0.25, res.ChargeHours, 1e-9)
	assert.Equal(t, 3600, res.IdleSeconds)
}

func TestSimulateVehicleSortsInput(t *testing.T) {
	events := []model.Event{
		trip(3600, 7200, 210),
		trip(0, 3600, 10),
	}
	res := SimulateVehicle("1", events, defaultConfig())
	require.False(t, res.Feasible)
	// The large trip runs second chronologically.
	assert.Equal(t, 1, res.FailedIndex)
}

func TestSimulateFleetAggregates(t *testing.T) {
	events := []model.Event{
		trip(0, 3600, 40),
		{Vehicle: "2", Activity: model.ActivityServiceTrip, StartSeconds: 0, EndSeconds: 3600, EnergyKWh: 210},
		{Vehicle: "3", Activity: model.ActivityIdle, StartSeconds: 0, EndSeconds: 1800, EnergyKWh: 2.5},
	}
	fleet := Simulate(model.GroupByVehicle(events), defaultConfig())
	assert.Equal(t, 3, fleet.VehiclesUsed)
	assert.Equal(t, 1, fleet.Infeasible)
	assert.InDelta(t, 42.5, fleet.TotalConsumedKWh, 1e-9)
	assert.Equal(t, 1800, fleet.TotalIdleSeconds)
	require.Len(t, fleet.Vehicles, 3)
	assert.False(t, fleet.Vehicles[1].Feasible)
}
