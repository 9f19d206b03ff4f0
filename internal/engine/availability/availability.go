// Package availability classifies candidate occurrences against a room's
// constraints. It never mutates anything.
package availability

import (
	"context"
	"slices"
	"time"

	"roombooking/internal/engine/interval"
	"roombooking/permissions"
)

type Violation string

const (
	OutsideBookableHours Violation = "outside_bookable_hours"
	RoomBlocked          Violation = "room_blocked"
	BeyondBookingLimit   Violation = "beyond_booking_limit"
	InThePast            Violation = "in_the_past"
)

// Window is a bookable-hours window. A nil Weekday applies to every day.
type Window struct {
	Weekday *time.Weekday
	Start   interval.Clock
	End     interval.Clock
}

func (w Window) appliesTo(day time.Weekday) bool {
	return w.Weekday == nil || *w.Weekday == day
}

// Room is the read-only view of a room needed for the check.
type Room struct {
	ID               string
	Owner            string
	BookableHours    []Window
	NonBookable      []interval.Interval
	BookingLimitDays *int
}

// Blocking is an accepted blocking of the room over whole days. Only the
// calendar dates of StartDate and EndDate are used.
type Blocking struct {
	ID                string
	StartDate         time.Time
	EndDate           time.Time
	Reason            string
	AllowedPrincipals []string
}

func (b Blocking) span(loc *time.Location) interval.Interval {
	return interval.WholeDays(onDate(b.StartDate, loc), onDate(b.EndDate, loc))
}

func onDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

type Result struct {
	Occurrence interval.Interval
	Violations []Violation
	// BlockedBy holds the ids of blockings that were not overridden.
	BlockedBy []string
}

func (r Result) Clean() bool {
	return len(r.Violations) == 0
}

// Report is index aligned with the checked occurrences.
type Report []Result

func (r Report) Clean() bool {
	for _, res := range r {
		if !res.Clean() {
			return false
		}
	}

	return true
}

// Counts tallies violations by kind.
func (r Report) Counts() map[Violation]int {
	counts := map[Violation]int{}

	for _, res := range r {
		for _, v := range res.Violations {
			counts[v]++
		}
	}

	return counts
}

type Options struct {
	DefaultLimitDays int
	AllowPast        bool
}

type Checker struct {
	policy permissions.Policy
	opts   Options
	now    func() time.Time
}

func NewChecker(policy permissions.Policy, opts Options, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}

	return &Checker{policy: policy, opts: opts, now: now}
}

// Check evaluates every occurrence independently so a recurring request can
// partially succeed.
func (c *Checker) Check(ctx context.Context, room Room, blockings []Blocking, requester string, occurrences []interval.Interval) Report {
	report := make(Report, len(occurrences))
	now := c.now()
	overridable := c.canOverride(ctx, room, requester)

	for i, occ := range occurrences {
		res := Result{Occurrence: occ}

		if !c.opts.AllowPast && occ.Start.Before(now) {
			res.Violations = append(res.Violations, InThePast)
		}

		if !withinBookableHours(room.BookableHours, occ) {
			res.Violations = append(res.Violations, OutsideBookableHours)
		}

		blocked := false

		for _, period := range room.NonBookable {
			if period.Overlaps(occ) {
				blocked = true

				break
			}
		}

		for _, b := range blockings {
			if !b.span(occ.Start.Location()).Overlaps(occ) {
				continue
			}

			if overridable || slices.Contains(b.AllowedPrincipals, requester) {
				continue
			}

			blocked = true
			res.BlockedBy = append(res.BlockedBy, b.ID)
		}

		if blocked {
			res.Violations = append(res.Violations, RoomBlocked)
		}

		if c.beyondLimit(room, occ, now) {
			res.Violations = append(res.Violations, BeyondBookingLimit)
		}

		report[i] = res
	}

	return report
}

func (c *Checker) canOverride(ctx context.Context, room Room, requester string) bool {
	if c.policy == nil {
		return false
	}

	return c.policy.CanOverride(ctx, requester, permissions.Subject{RoomID: room.ID, RoomOwner: room.Owner})
}

// withinBookableHours requires every calendar day the occurrence touches to
// have a window holding that day's part of it.
func withinBookableHours(windows []Window, occ interval.Interval) bool {
	if len(windows) == 0 {
		return true
	}

	for day := occ.Day(); day.Before(occ.End); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		part := interval.Interval{Start: occ.Start, End: occ.End}

		if part.Start.Before(day) {
			part.Start = day
		}

		if part.End.After(next) {
			part.End = next
		}

		if !coveredOn(windows, day, part) {
			return false
		}
	}

	return true
}

func coveredOn(windows []Window, day time.Time, part interval.Interval) bool {
	for _, w := range windows {
		if w.appliesTo(day.Weekday()) && interval.Span(day, w.Start, w.End).Contains(part) {
			return true
		}
	}

	return false
}

func (c *Checker) beyondLimit(room Room, occ interval.Interval, now time.Time) bool {
	limit := c.opts.DefaultLimitDays
	if room.BookingLimitDays != nil {
		limit = *room.BookingLimitDays
	}

	if limit <= 0 {
		return false
	}

	last := interval.DateOf(now.In(occ.Start.Location())).AddDate(0, 0, limit)

	return lastDay(occ).After(last)
}

// lastDay is the last calendar date the occurrence occupies. An end at
// midnight does not occupy the following day.
func lastDay(occ interval.Interval) time.Time {
	end := interval.DateOf(occ.End)
	if end.Equal(occ.End) && end.After(occ.Day()) {
		return end.AddDate(0, 0, -1)
	}

	return end
}
