// Package conflict finds overlaps between candidate occurrences and the
// occurrences already booked in a room.
package conflict

import (
	"slices"

	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/lifecycle"
)

// Existing is an occurrence already stored for some room.
type Existing struct {
	ReservationID string            `json:"reservation_id"`
	RoomID        string            `json:"room_id"`
	Interval      interval.Interval `json:"interval"`
	State         lifecycle.State   `json:"state"`
}

type Result struct {
	Candidate interval.Interval
	Conflicts []Existing
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Report is index aligned with the candidates.
type Report []Result

func (r Report) Total() int {
	total := 0

	for _, res := range r {
		if res.HasConflicts() {
			total++
		}
	}

	return total
}

// Detect reports, per candidate, every active occurrence of roomID it
// overlaps. Occurrences of other rooms and inactive ones are ignored.
func Detect(roomID string, candidates []interval.Interval, existing []Existing) Report {
	relevant := make([]Existing, 0, len(existing))

	for _, e := range existing {
		if e.RoomID == roomID && e.State.Active() && e.Interval.Valid() {
			relevant = append(relevant, e)
		}
	}

	slices.SortStableFunc(relevant, func(a, b Existing) int {
		return a.Interval.Start.Compare(b.Interval.Start)
	})

	report := make(Report, len(candidates))

	for i, candidate := range candidates {
		res := Result{Candidate: candidate}

		for _, e := range relevant {
			if !e.Interval.Start.Before(candidate.End) {
				break
			}

			if interval.Overlaps(candidate, e.Interval) {
				res.Conflicts = append(res.Conflicts, e)
			}
		}

		report[i] = res
	}

	return report
}
