package model

import (
	"time"

	"roombooking/internal/engine/availability"
	"roombooking/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "blockings"
	EntityName = "blocking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldState           = "state"
	FieldRejectionReason = "rejection_reason"
)

type State string

const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
)

// Blocking covers whole days from StartDate to EndDate inclusive.
type Blocking struct {
	ID                string         `db:"id"                 json:"id"`
	RoomID            string         `db:"room_id"            json:"room_id"`
	StartDate         time.Time      `db:"start_date"         json:"start_date"`
	EndDate           time.Time      `db:"end_date"           json:"end_date"`
	Reason            string         `db:"reason"             json:"reason"`
	State             State          `db:"state"              json:"state"`
	RejectionReason   string         `db:"rejection_reason"   json:"rejection_reason"`
	AllowedPrincipals pq.StringArray `db:"allowed_principals" json:"allowed_principals"`
	model.Metadata
}

func (b Blocking) Availability() availability.Blocking {
	return availability.Blocking{
		ID:                b.ID,
		StartDate:         b.StartDate,
		EndDate:           b.EndDate,
		Reason:            b.Reason,
		AllowedPrincipals: b.AllowedPrincipals,
	}
}
