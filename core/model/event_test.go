package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsHalfOpen(t *testing.T) {
	a := Event{StartSeconds: 0, EndSeconds: 3600}
	b := Event{StartSeconds: 3600, EndSeconds: 7200}
	c := Event{StartSeconds: 3000, EndSeconds: 4000}

	assert.False(t, a.Overlaps(b), "touching intervals do not overlap")
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
	assert.True(t, a.Overlaps(a))
}

func TestSortByStartStable(t *testing.T) {
	events := []Event{
		{Vehicle: "a", StartSeconds: 100, EndSeconds: 300},
		{Vehicle: "b", StartSeconds: 100, EndSeconds: 200},
		{Vehicle: "c", StartSeconds: 50, EndSeconds: 60},
		{Vehicle: "d", StartSeconds: 100, EndSeconds: 300},
	}
	SortByStart(events)
	assert.Equal(t, "c", events[0].Vehicle)
	assert.Equal(t, "b", events[1].Vehicle)
	// Equal intervals keep source order.
	assert.Equal(t, "a", events[2].Vehicle)
	assert.Equal(t, "d", events[3].Vehicle)
}

func TestGroupByVehicle(t *testing.T) {
	events := []Event{
		{Vehicle: "2", StartSeconds: 0},
		{Vehicle: "1", StartSeconds: 10},
		{Vehicle: "2", StartSeconds: 20},
	}
	g := GroupByVehicle(events)

	assert.Equal(t, []string{"2", "1"}, g.Vehicles())
	require.Len(t, g.Events("2"), 2)
	require.Len(t, g.Events("1"), 1)
	assert.Empty(t, g.Events("missing"))

	flat := g.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "2", flat[0].Vehicle)
	assert.Equal(t, "2", flat[1].Vehicle)
	assert.Equal(t, "1", flat[2].Vehicle)
}

func TestDurations(t *testing.T) {
	e := Event{StartSeconds: 3600, EndSeconds: 5400}
	assert.Equal(t, 1800, e.DurationSeconds())
	assert.InDelta(t, 0.5, e.DurationHours(), 1e-9)
}
