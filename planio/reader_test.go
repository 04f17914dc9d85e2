package planio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitlab/busplan/core/model"
)

const samplePlan = `line,bus,start time,end time,activity,start location,end location,energy consumption
400,1,06:00:00,06:45:00,service trip,EHVBST,EHVAPT,12.5
400,1,06:45:00,07:00:00,deadhead,EHVAPT,EHVBST,3.2
401,2,23:30:00,00:15:00,service trip,EHVBST,EHVAPT,11.0
`

func TestReadPlan(t *testing.T) {
	events, diags, err := ReadPlan(strings.NewReader(samplePlan))
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, events, 3)

	assert.Equal(t, "1", events[0].Vehicle)
	assert.Equal(t, model.ActivityServiceTrip, events[0].Activity)
	assert.Equal(t, "400", events[0].Line)
	assert.Equal(t, "06:00:00", events[0].StartClock)
	assert.Equal(t, "EHVAPT", events[0].EndLocation)
	assert.InDelta(t, 12.5, events[0].EnergyKWh, 1e-9)
	assert.Equal(t, 2, events[0].SourceRow)
	assert.Equal(t, 4, events[2].SourceRow)
}

func TestReadPlanHeaderCaseInsensitive(t *testing.T) {
	data := "Bus,Start Time,End Time,Activity,Start Location,End Location,Energy Consumption\n" +
		"7,08:00:00,09:00:00,service trip,A,B,10\n"
	events, _, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "7", events[0].Vehicle)
}

func TestReadPlanMissingColumnFatal(t *testing.T) {
	data := "bus,start time,activity\n1,06:00:00,service trip\n"
	_, _, err := ReadPlan(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end time")
	assert.Contains(t, err.Error(), "energy consumption")
}

func TestReadPlanMissingEnergyFlaggedAsZero(t *testing.T) {
	data := "bus,start time,end time,activity,start location,end location,energy consumption\n" +
		"1,06:00:00,07:00:00,service trip,A,B,\n"
	events, diags, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Zero(t, events[0].EnergyKWh)
	require.Len(t, diags, 1)
	assert.Equal(t, ColEnergy, diags[0].Field)
	assert.Equal(t, model.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Row)
}

func TestReadPlanInvalidEnergyExcludesRow(t *testing.T) {
	data := "bus,start time,end time,activity,start location,end location,energy consumption\n" +
		"1,06:00:00,07:00:00,service trip,A,B,lots\n" +
		"1,07:00:00,08:00:00,service trip,B,A,9.5\n"
	events, diags, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].SourceRow)
	require.Len(t, diags, 1)
	assert.Equal(t, model.SeverityError, diags[0].Severity)
}

func TestReadPlanDecimalComma(t *testing.T) {
	data := "bus,start time,end time,activity,start location,end location,energy consumption\n" +
		"1,06:00:00,07:00:00,service trip,A,B,\"12,5\"\n"
	events, _, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.InDelta(t, 12.5, events[0].EnergyKWh, 1e-9)
}

func TestReadPlanMissingRequiredFieldExcludesRow(t *testing.T) {
	data := "bus,start time,end time,activity,start location,end location,energy consumption\n" +
		",06:00:00,07:00:00,service trip,A,B,10\n"
	events, diags, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, events)
	require.Len(t, diags, 1)
	assert.Equal(t, ColBus, diags[0].Field)
}

func TestReadPlanMissingLocationIsWarningOnly(t *testing.T) {
	data := "bus,start time,end time,activity,start location,end location,energy consumption\n" +
		"1,06:00:00,07:00:00,service trip,,B,10\n"
	events, diags, err := ReadPlan(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, events, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, model.SeverityWarning, diags[0].Severity)
}

func TestReadTimetable(t *testing.T) {
	data := "line,departure_time\n400,06:00\n400,06:15\n401,23:30\n"
	departures, diags, err := ReadTimetable(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []int{6 * 3600, 6*3600 + 900, 23*3600 + 1800}, departures)
}

func TestReadTimetableMissingColumn(t *testing.T) {
	data := "line,time\n400,06:00\n"
	_, _, err := ReadTimetable(strings.NewReader(data))
	assert.Error(t, err)
}

func TestReadTimetableBadRowReported(t *testing.T) {
	data := "departure_time\nnot a time\n07:00\n"
	departures, diags, err := ReadTimetable(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []int{7 * 3600}, departures)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Row)
}
