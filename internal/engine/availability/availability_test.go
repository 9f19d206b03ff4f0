package availability_test

import (
	"context"
	"testing"
	"time"

	"roombooking/config"
	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/interval"
	"roombooking/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

func at(day, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}

	return t
}

func occ(day, from, to string) interval.Interval {
	return interval.Interval{Start: at(day, from), End: at(day, to)}
}

func across(fromDay, fromClock, toDay, toClock string) interval.Interval {
	return interval.Interval{Start: at(fromDay, fromClock), End: at(toDay, toClock)}
}

func weekday(d time.Weekday) *time.Weekday { return &d }

func officeHours() []availability.Window {
	windows := make([]availability.Window, 0, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		windows = append(windows, availability.Window{
			Weekday: weekday(d),
			Start:   interval.MustClock("09:00"),
			End:     interval.MustClock("18:00"),
		})
	}

	return windows
}

func policy(t *testing.T, name string) permissions.Policy {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Admins = []string{"root"}

	p, err := permissions.Resolve(name, cfg)
	require.NoError(t, err)

	return p
}

func TestCheck_BookableHours(t *testing.T) {
	checker := availability.NewChecker(policy(t, "owner"), availability.Options{}, fixedNow)
	room := availability.Room{ID: "r-1", BookableHours: officeHours()}

	tests := []struct {
		name     string
		occ      interval.Interval
		expected []availability.Violation
	}{
		{name: "saturday", occ: occ("2024-06-08", "10:00", "11:00"), expected: []availability.Violation{availability.OutsideBookableHours}},
		{name: "monday inside", occ: occ("2024-06-03", "10:00", "11:00")},
		{name: "exact window", occ: occ("2024-06-03", "09:00", "18:00")},
		{name: "runs past closing", occ: occ("2024-06-03", "17:30", "18:30"), expected: []availability.Violation{availability.OutsideBookableHours}},
		{name: "starts before opening", occ: occ("2024-06-03", "08:00", "09:30"), expected: []availability.Violation{availability.OutsideBookableHours}},
		{name: "spans nights and a weekend", occ: across("2024-06-07", "09:00", "2024-06-10", "17:00"), expected: []availability.Violation{availability.OutsideBookableHours}},
		{name: "spans one night", occ: across("2024-06-03", "10:00", "2024-06-04", "11:00"), expected: []availability.Violation{availability.OutsideBookableHours}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := checker.Check(context.Background(), room, nil, "bea", []interval.Interval{tt.occ})

			require.Len(t, report, 1)
			assert.Equal(t, tt.occ, report[0].Occurrence)
			assert.Equal(t, tt.expected, report[0].Violations)
		})
	}
}

func TestCheck_AnyWeekdayWindowAndNoWindows(t *testing.T) {
	checker := availability.NewChecker(nil, availability.Options{}, fixedNow)
	saturday := occ("2024-06-08", "10:00", "11:00")

	anyDay := availability.Room{BookableHours: []availability.Window{{Start: interval.MustClock("07:00"), End: interval.MustClock("12:00")}}}
	assert.True(t, checker.Check(context.Background(), anyDay, nil, "bea", []interval.Interval{saturday}).Clean())

	open := availability.Room{}
	assert.True(t, checker.Check(context.Background(), open, nil, "bea", []interval.Interval{occ("2024-06-09", "02:00", "23:00")}).Clean())
	assert.True(t, checker.Check(context.Background(), open, nil, "bea", []interval.Interval{across("2024-06-07", "09:00", "2024-06-10", "17:00")}).Clean())
}

func TestCheck_MultiDayOccurrence(t *testing.T) {
	ten := 10
	checker := availability.NewChecker(nil, availability.Options{}, fixedNow)
	room := availability.Room{ID: "r-1", BookableHours: officeHours(), BookingLimitDays: &ten}

	report := checker.Check(context.Background(), room, nil, "bea", []interval.Interval{across("2024-06-07", "09:00", "2024-09-30", "17:00")})

	require.Len(t, report, 1)
	assert.Equal(t, []availability.Violation{availability.OutsideBookableHours, availability.BeyondBookingLimit}, report[0].Violations)
}

func TestCheck_Blockings(t *testing.T) {
	room := availability.Room{ID: "r-1", Owner: "olga"}
	blockings := []availability.Blocking{{
		ID:                "b-1",
		StartDate:         at("2024-06-10", "00:00"),
		EndDate:           at("2024-06-11", "00:00"),
		AllowedPrincipals: []string{"vip"},
	}}
	occurrences := []interval.Interval{
		occ("2024-06-09", "10:00", "11:00"),
		occ("2024-06-10", "10:00", "11:00"),
		occ("2024-06-11", "23:00", "23:30"),
		occ("2024-06-12", "00:00", "01:00"),
	}

	tests := []struct {
		name      string
		requester string
		blocked   []bool
	}{
		{name: "regular user", requester: "bea", blocked: []bool{false, true, true, false}},
		{name: "allowed principal", requester: "vip", blocked: []bool{false, false, false, false}},
		{name: "room owner overrides", requester: "olga", blocked: []bool{false, false, false, false}},
		{name: "admin overrides", requester: "root", blocked: []bool{false, false, false, false}},
	}

	checker := availability.NewChecker(policy(t, "owner"), availability.Options{}, fixedNow)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := checker.Check(context.Background(), room, blockings, tt.requester, occurrences)

			for i, res := range report {
				assert.Equal(t, tt.blocked[i], !res.Clean(), "occurrence %d", i)

				if tt.blocked[i] {
					assert.Equal(t, []availability.Violation{availability.RoomBlocked}, res.Violations)
					assert.Equal(t, []string{"b-1"}, res.BlockedBy)
				}
			}
		})
	}
}

func TestCheck_NonBookablePeriodIsHard(t *testing.T) {
	room := availability.Room{
		ID:          "r-1",
		Owner:       "olga",
		NonBookable: []interval.Interval{{Start: at("2024-06-10", "12:00"), End: at("2024-06-10", "14:00")}},
	}
	checker := availability.NewChecker(policy(t, "owner"), availability.Options{}, fixedNow)

	report := checker.Check(context.Background(), room, nil, "olga", []interval.Interval{
		occ("2024-06-10", "11:00", "12:00"),
		occ("2024-06-10", "13:00", "15:00"),
	})

	assert.True(t, report[0].Clean())
	assert.Equal(t, []availability.Violation{availability.RoomBlocked}, report[1].Violations)
	assert.Empty(t, report[1].BlockedBy)
}

func TestCheck_BookingLimit(t *testing.T) {
	ten := 10
	zero := 0

	tests := []struct {
		name         string
		roomLimit    *int
		defaultLimit int
		occ          interval.Interval
		beyond       bool
	}{
		{name: "room limit last day", roomLimit: &ten, occ: occ("2024-06-11", "10:00", "11:00")},
		{name: "room limit exceeded", roomLimit: &ten, occ: occ("2024-06-12", "10:00", "11:00"), beyond: true},
		{name: "starts inside and ends beyond", roomLimit: &ten, occ: across("2024-06-10", "10:00", "2024-06-12", "11:00"), beyond: true},
		{name: "ends at midnight after the last day", roomLimit: &ten, occ: across("2024-06-11", "22:00", "2024-06-12", "00:00")},
		{name: "default limit exceeded", defaultLimit: 5, occ: occ("2024-06-07", "10:00", "11:00"), beyond: true},
		{name: "room zero means unlimited", roomLimit: &zero, defaultLimit: 5, occ: occ("2025-06-07", "10:00", "11:00")},
		{name: "no limit", occ: occ("2030-01-01", "10:00", "11:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := availability.NewChecker(nil, availability.Options{DefaultLimitDays: tt.defaultLimit}, fixedNow)
			room := availability.Room{ID: "r-1", BookingLimitDays: tt.roomLimit}

			report := checker.Check(context.Background(), room, nil, "bea", []interval.Interval{tt.occ})

			if tt.beyond {
				assert.Equal(t, []availability.Violation{availability.BeyondBookingLimit}, report[0].Violations)
			} else {
				assert.True(t, report[0].Clean())
			}
		})
	}
}

func TestCheck_InThePast(t *testing.T) {
	past := occ("2024-05-31", "10:00", "11:00")

	strict := availability.NewChecker(nil, availability.Options{}, fixedNow)
	assert.Equal(t, []availability.Violation{availability.InThePast}, strict.Check(context.Background(), availability.Room{}, nil, "bea", []interval.Interval{past})[0].Violations)

	lenient := availability.NewChecker(nil, availability.Options{AllowPast: true}, fixedNow)
	assert.True(t, lenient.Check(context.Background(), availability.Room{}, nil, "bea", []interval.Interval{past}).Clean())
}

func TestCheck_Idempotent(t *testing.T) {
	room := availability.Room{ID: "r-1", BookableHours: officeHours()}
	blockings := []availability.Blocking{{ID: "b-1", StartDate: at("2024-06-05", "00:00"), EndDate: at("2024-06-05", "00:00")}}
	occurrences := []interval.Interval{
		occ("2024-06-03", "10:00", "11:00"),
		occ("2024-06-05", "10:00", "11:00"),
		occ("2024-06-08", "10:00", "11:00"),
	}
	checker := availability.NewChecker(policy(t, "owner"), availability.Options{}, fixedNow)

	first := checker.Check(context.Background(), room, blockings, "bea", occurrences)
	second := checker.Check(context.Background(), room, blockings, "bea", occurrences)

	assert.Equal(t, first, second)
	assert.False(t, first.Clean())
	assert.Equal(t, map[availability.Violation]int{availability.RoomBlocked: 1, availability.OutsideBookableHours: 1}, first.Counts())
}
