package model

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/conflict"
	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/lifecycle"
	"roombooking/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	OccurrenceTable  = "reservation_occurrences"
	OccurrenceEntity = "reservation_occurrence"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldState           = "state"
	FieldReservationID   = "reservation_id"
	FieldStartDT         = "start_dt"
	FieldEndDT           = "end_dt"
	FieldRejectionReason = "rejection_reason"
)

type Reservation struct {
	ID             string                     `db:"id"              json:"id"`
	RoomID         string                     `db:"room_id"         json:"room_id"`
	RepeatKind     string                     `db:"repeat_kind"     json:"repeat_kind"`
	RepeatInterval int                        `db:"repeat_interval" json:"repeat_interval"`
	Weekdays       pq.Int64Array              `db:"weekdays"        json:"weekdays"`
	StartDT        time.Time                  `db:"start_dt"        json:"start_dt"`
	EndDT          time.Time                  `db:"end_dt"          json:"end_dt"`
	BookedFor      string                     `db:"booked_for"      json:"booked_for"`
	Reason         string                     `db:"reason"          json:"reason"`
	State          lifecycle.ReservationState `db:"state"           json:"state"`
	model.Metadata
}

// Occurrence is keyed by (ReservationID, StartDT).
type Occurrence struct {
	ReservationID   string          `db:"reservation_id"   json:"reservation_id"`
	RoomID          string          `db:"room_id"          json:"room_id"`
	StartDT         time.Time       `db:"start_dt"         json:"start_dt"`
	EndDT           time.Time       `db:"end_dt"           json:"end_dt"`
	State           lifecycle.State `db:"state"            json:"state"`
	RejectionReason string          `db:"rejection_reason" json:"rejection_reason"`
	ModifiedAt      time.Time       `db:"modified_at"      json:"modified_at"`
	ModifiedBy      string          `db:"modified_by"      json:"modified_by"`
}

func (o Occurrence) Interval() interval.Interval {
	return interval.Interval{Start: o.StartDT, End: o.EndDT}
}

func (o Occurrence) Lifecycle() lifecycle.Occurrence {
	return lifecycle.Occurrence{Interval: o.Interval(), State: o.State, RejectionReason: o.RejectionReason}
}

// Apply copies the state held by l back onto o.
func (o *Occurrence) Apply(l lifecycle.Occurrence, user string, at time.Time) {
	o.State = l.State
	o.RejectionReason = l.RejectionReason
	o.ModifiedBy = user
	o.ModifiedAt = at
}

func (o Occurrence) Existing() conflict.Existing {
	return conflict.Existing{
		ReservationID: o.ReservationID,
		RoomID:        o.RoomID,
		Interval:      o.Interval(),
		State:         o.State,
	}
}

func States(occurrences []Occurrence) []lifecycle.State {
	states := make([]lifecycle.State, len(occurrences))
	for i, o := range occurrences {
		states[i] = o.State
	}

	return states
}

// Outcome is the decision taken for one candidate occurrence.
type Outcome struct {
	Occurrence interval.Interval        `json:"occurrence"`
	State      lifecycle.State          `json:"state"`
	Reason     string                   `json:"reason,omitempty"`
	Violations []availability.Violation `json:"violations,omitempty"`
	Conflicts  []conflict.Existing      `json:"conflicts,omitempty"`
}

func (o Outcome) Bookable() bool {
	return o.State.Active()
}

// PartialFailure is returned when nothing was persisted because no
// occurrence, or in strict mode not every occurrence, could be booked.
type PartialFailure struct {
	Outcomes []Outcome `json:"outcomes"`
}

func (p *PartialFailure) Error() string {
	failed := make([]string, 0, len(p.Outcomes))

	for _, o := range p.Outcomes {
		if !o.Bookable() {
			failed = append(failed, fmt.Sprintf("%s: %s", o.Occurrence.Start.Format(time.DateOnly), o.Reason))
		}
	}

	return fmt.Sprintf("%d of %d occurrences cannot be booked: %s", len(failed), len(p.Outcomes), strings.Join(failed, ", "))
}

func (p *PartialFailure) HTTPStatus() int {
	return http.StatusConflict
}

// EventPayload is the body of every reservation outbox event.
type EventPayload struct {
	ReservationID string   `json:"reservation_id"`
	RoomID        string   `json:"room_id"`
	BookedFor     string   `json:"booked_for"`
	State         string   `json:"state"`
	Dates         []string `json:"dates,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	By            string   `json:"by"`
}
