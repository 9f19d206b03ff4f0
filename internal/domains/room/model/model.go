package model

import (
	"time"

	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/interval"
	"roombooking/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldName             = "name"
	FieldLocation         = "location"
	FieldCapacity         = "capacity"
	FieldActive           = "active"
	FieldAutoAccept       = "auto_accept"
	FieldBookingLimitDays = "booking_limit_days"
	FieldOwner            = "owner"
)

const (
	BookableHoursTable  = "room_bookable_hours"
	BookableHoursEntity = "room_bookable_hours"

	NonBookableTable  = "room_nonbookable_periods"
	NonBookableEntity = "room_nonbookable_period"

	FieldRoomID  = "room_id"
	FieldStartDT = "start_dt"
	FieldEndDT   = "end_dt"
)

type Room struct {
	ID               string `db:"id"                 json:"id"`
	Name             string `db:"name"               json:"name"`
	Location         string `db:"location"           json:"location"`
	Capacity         int    `db:"capacity"           json:"capacity"`
	Active           bool   `db:"active"             json:"active"`
	AutoAccept       bool   `db:"auto_accept"        json:"auto_accept"`
	BookingLimitDays *int   `db:"booking_limit_days" json:"booking_limit_days"`
	Owner            string `db:"owner"              json:"owner"`
	model.Metadata
}

// BookableHours is one window; a nil Weekday (0 = Sunday) applies to every day.
type BookableHours struct {
	ID        string         `db:"id"         json:"id"`
	RoomID    string         `db:"room_id"    json:"room_id"`
	Weekday   *int           `db:"weekday"    json:"weekday"`
	StartTime interval.Clock `db:"start_time" json:"start_time"`
	EndTime   interval.Clock `db:"end_time"   json:"end_time"`
}

type NonBookablePeriod struct {
	ID      string    `db:"id"       json:"id"`
	RoomID  string    `db:"room_id"  json:"room_id"`
	StartDT time.Time `db:"start_dt" json:"start_dt"`
	EndDT   time.Time `db:"end_dt"   json:"end_dt"`
}

// Aggregate is a room with everything that constrains its bookings.
type Aggregate struct {
	Room               Room                `json:"room"`
	BookableHours      []BookableHours     `json:"bookable_hours"`
	NonBookablePeriods []NonBookablePeriod `json:"nonbookable_periods"`
}

func (a Aggregate) Availability() availability.Room {
	windows := make([]availability.Window, 0, len(a.BookableHours))

	for _, h := range a.BookableHours {
		w := availability.Window{Start: h.StartTime, End: h.EndTime}

		if h.Weekday != nil {
			day := time.Weekday(*h.Weekday)
			w.Weekday = &day
		}

		windows = append(windows, w)
	}

	periods := make([]interval.Interval, 0, len(a.NonBookablePeriods))
	for _, p := range a.NonBookablePeriods {
		periods = append(periods, interval.Interval{Start: p.StartDT, End: p.EndDT})
	}

	return availability.Room{
		ID:               a.Room.ID,
		Owner:            a.Room.Owner,
		BookableHours:    windows,
		NonBookable:      periods,
		BookingLimitDays: a.Room.BookingLimitDays,
	}
}
