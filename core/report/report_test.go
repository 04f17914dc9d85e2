package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitlab/busplan/core/battery"
)

func fleetResult() battery.FleetResult {
	return battery.FleetResult{
		Vehicles: []battery.VehicleResult{
			{Vehicle: "1", Feasible: true, ConsumedKWh: 90},
			{Vehicle: "2", Feasible: false, FailedIndex: 3, ConsumedKWh: 120},
		},
		TotalConsumedKWh: 210,
		TotalIdleSeconds: 5400,
		TotalChargeHours: 0.5,
		VehiclesUsed:     2,
		Infeasible:       1,
	}
}

func TestNewAssignsRunID(t *testing.T) {
	a := New(fleetResult(), nil)
	b := New(fleetResult(), nil)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.False(t, a.GeneratedAt.IsZero())
}

func TestStats(t *testing.T) {
	r := New(fleetResult(), nil)
	assert.InDelta(t, 105, r.Stats.MeanConsumedKWh, 1e-9)
	assert.Greater(t, r.Stats.StdDevConsumedKWh, 0.0)

	empty := New(battery.FleetResult{}, nil)
	assert.Zero(t, empty.Stats.MeanConsumedKWh)
	assert.Zero(t, empty.Stats.StdDevConsumedKWh)
}

func TestMessages(t *testing.T) {
	r := New(fleetResult(), nil)
	msgs := r.Messages()
	require.Len(t, msgs, 6)
	assert.Equal(t, "Bus plan for bus 1 is feasible. Amount of energy used: 90.00 kWh", msgs[0])
	assert.Contains(t, msgs[1], "Bus 2")
	assert.Contains(t, msgs[1], "event 4")
	assert.Contains(t, msgs[1], "infeasible")
	assert.Contains(t, msgs[2], "210.00 kWh")
	assert.Contains(t, msgs[3], "0.50 h")
	assert.Contains(t, msgs[4], "1.50 h")
	assert.True(t, strings.HasSuffix(msgs[5], "2"))
}
