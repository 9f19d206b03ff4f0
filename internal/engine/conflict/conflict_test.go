package conflict_test

import (
	"testing"
	"time"

	"roombooking/internal/engine/conflict"
	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}

	return t
}

func span(day, from, to string) interval.Interval {
	return interval.Interval{Start: at(day, from), End: at(day, to)}
}

func TestDetect_TouchingIsNotConflict(t *testing.T) {
	existing := []conflict.Existing{{
		ReservationID: "res-1",
		RoomID:        "R",
		Interval:      span("2024-06-03", "10:00", "11:00"),
		State:         lifecycle.Accepted,
	}}

	report := conflict.Detect("R", []interval.Interval{
		span("2024-06-03", "10:30", "11:30"),
		span("2024-06-03", "11:00", "12:00"),
	}, existing)

	require.Len(t, report, 2)
	require.True(t, report[0].HasConflicts())
	assert.Equal(t, existing, report[0].Conflicts)
	assert.False(t, report[1].HasConflicts())
	assert.Equal(t, 1, report.Total())
}

func TestDetect_FiltersRoomAndState(t *testing.T) {
	candidate := span("2024-06-03", "10:00", "11:00")
	existing := []conflict.Existing{
		{ReservationID: "other-room", RoomID: "S", Interval: candidate, State: lifecycle.Accepted},
		{ReservationID: "rejected", RoomID: "R", Interval: candidate, State: lifecycle.Rejected},
		{ReservationID: "cancelled", RoomID: "R", Interval: candidate, State: lifecycle.Cancelled},
		{ReservationID: "pending", RoomID: "R", Interval: candidate, State: lifecycle.Pending},
	}

	report := conflict.Detect("R", []interval.Interval{candidate}, existing)

	require.Len(t, report[0].Conflicts, 1)
	assert.Equal(t, "pending", report[0].Conflicts[0].ReservationID)
	assert.Equal(t, lifecycle.Pending, report[0].Conflicts[0].State)
}

func TestDetect_ReportsEveryOverlap(t *testing.T) {
	existing := []conflict.Existing{
		{ReservationID: "late", RoomID: "R", Interval: span("2024-06-03", "11:30", "12:30"), State: lifecycle.Accepted},
		{ReservationID: "early", RoomID: "R", Interval: span("2024-06-03", "09:00", "10:15"), State: lifecycle.Accepted},
		{ReservationID: "long", RoomID: "R", Interval: interval.Interval{Start: at("2024-06-01", "08:00"), End: at("2024-06-05", "08:00")}, State: lifecycle.Pending},
		{ReservationID: "after", RoomID: "R", Interval: span("2024-06-03", "12:00", "13:00"), State: lifecycle.Accepted},
	}

	report := conflict.Detect("R", []interval.Interval{span("2024-06-03", "10:00", "12:00")}, existing)

	ids := make([]string, 0)
	for _, c := range report[0].Conflicts {
		ids = append(ids, c.ReservationID)
	}

	assert.Equal(t, []string{"long", "early", "late"}, ids)
}

func TestDetect_Empty(t *testing.T) {
	report := conflict.Detect("R", []interval.Interval{span("2024-06-03", "10:00", "11:00")}, nil)

	assert.Len(t, report, 1)
	assert.Zero(t, report.Total())
	assert.Empty(t, conflict.Detect("R", nil, nil))
}
