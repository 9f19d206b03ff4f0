package dto

import (
	"fmt"
	"slices"
	"time"

	"roombooking/internal/domains/reservation/model"
	"roombooking/internal/engine/availability"
	"roombooking/internal/engine/interval"
	"roombooking/internal/engine/recurrence"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	"roombooking/shared/timezone"
)

type CreateReservationRequest struct {
	RoomID    string `json:"room_id"    validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02,datefrom=StartDate"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04,timeafter=StartTime"`
	Repeat    string `json:"repeat"     validate:"required,oneof=none daily weekly monthly"`
	Interval  int    `json:"interval"   validate:"omitempty,min=1,max=52"`
	Weekdays  []int  `json:"weekdays"   validate:"omitempty,unique,dive,min=0,max=6"`
	BookedFor string `json:"booked_for" validate:"omitempty,max=255"`
	Reason    string `json:"reason"     validate:"required,max=500"`
	// Strict refuses the whole request when any occurrence cannot be booked.
	Strict bool `json:"strict"`
}

// ToRecurrence builds the expansion request with dates and times read in loc.
func (c *CreateReservationRequest) ToRecurrence(loc *time.Location) (recurrence.Request, error) {
	start, err := time.ParseInLocation(constant.DayFormat, c.StartDate, loc)
	if err != nil {
		return recurrence.Request{}, fmt.Errorf("%w: start_date: %w", recurrence.ErrInvalidRequest, err)
	}

	end, err := time.ParseInLocation(constant.DayFormat, c.EndDate, loc)
	if err != nil {
		return recurrence.Request{}, fmt.Errorf("%w: end_date: %w", recurrence.ErrInvalidRequest, err)
	}

	startTime, err := interval.ParseClock(c.StartTime)
	if err != nil {
		return recurrence.Request{}, fmt.Errorf("%w: start_time: %w", recurrence.ErrInvalidRequest, err)
	}

	endTime, err := interval.ParseClock(c.EndTime)
	if err != nil {
		return recurrence.Request{}, fmt.Errorf("%w: end_time: %w", recurrence.ErrInvalidRequest, err)
	}

	weekdays := make([]time.Weekday, len(c.Weekdays))
	for i, d := range c.Weekdays {
		weekdays[i] = time.Weekday(d)
	}

	return recurrence.Request{
		StartDate: start,
		EndDate:   end,
		Kind:      recurrence.Kind(c.Repeat),
		Interval:  c.Interval,
		Weekdays:  weekdays,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  loc,
	}, nil
}

func (c *CreateReservationRequest) WeekdayValues() []int64 {
	out := make([]int64, len(c.Weekdays))
	for i, d := range c.Weekdays {
		out[i] = int64(d)
	}

	slices.Sort(out)

	return out
}

// OccurrenceSelector picks occurrences by calendar date. Empty means every
// occurrence the transition applies to.
type OccurrenceSelector struct {
	Dates []string `json:"dates" validate:"omitempty,unique,dive,datetime=2006-01-02"`
}

type ApproveRequest struct {
	OccurrenceSelector
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
	OccurrenceSelector
}

type CancelRequest struct {
	OccurrenceSelector
}

type CalendarRequest struct {
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	From     string `json:"from"      validate:"required,datetime=2006-01-02"`
	To       string `json:"to"        validate:"required,datetime=2006-01-02,datefrom=From"`
	Inactive bool   `json:"inactive"`
}

// Window is [From 00:00, To+1 00:00) in loc.
func (c *CalendarRequest) Window(loc *time.Location) (interval.Interval, error) {
	from, err := time.ParseInLocation(constant.DayFormat, c.From, loc)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("from: %w", err)
	}

	to, err := time.ParseInLocation(constant.DayFormat, c.To, loc)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("to: %w", err)
	}

	return interval.WholeDays(from, to), nil
}

type ConflictResponse struct {
	ReservationID string `json:"reservation_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	State         string `json:"state"`
}

type OccurrenceResponse struct {
	Date            string             `json:"date"`
	Start           string             `json:"start"`
	End             string             `json:"end"`
	State           string             `json:"state"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	Violations      []string           `json:"violations,omitempty"`
	Conflicts       []ConflictResponse `json:"conflicts,omitempty"`
}

func (o *OccurrenceResponse) FromModel(m model.Occurrence) {
	o.Date = timezone.Format(m.StartDT, constant.DayFormat)
	o.Start = timezone.Format(m.StartDT, constant.DateFormat)
	o.End = timezone.Format(m.EndDT, constant.DateFormat)
	o.State = string(m.State)
	o.RejectionReason = m.RejectionReason
}

func (o *OccurrenceResponse) FromOutcome(m model.Outcome) {
	o.Date = timezone.Format(m.Occurrence.Start, constant.DayFormat)
	o.Start = timezone.Format(m.Occurrence.Start, constant.DateFormat)
	o.End = timezone.Format(m.Occurrence.End, constant.DateFormat)
	o.State = string(m.State)
	o.RejectionReason = m.Reason
	o.Violations = violationNames(m.Violations)

	o.Conflicts = make([]ConflictResponse, len(m.Conflicts))
	for i, c := range m.Conflicts {
		o.Conflicts[i] = ConflictResponse{
			ReservationID: c.ReservationID,
			Start:         timezone.Format(c.Interval.Start, constant.DateFormat),
			End:           timezone.Format(c.Interval.End, constant.DateFormat),
			State:         string(c.State),
		}
	}
}

func violationNames(vs []availability.Violation) []string {
	if len(vs) == 0 {
		return nil
	}

	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}

	return out
}

type ReservationResponse struct {
	ID             string               `json:"id"`
	RoomID         string               `json:"room_id"`
	Repeat         string               `json:"repeat"`
	RepeatInterval int                  `json:"repeat_interval"`
	Weekdays       []int64              `json:"weekdays,omitempty"`
	Start          string               `json:"start"`
	End            string               `json:"end"`
	BookedFor      string               `json:"booked_for"`
	Reason         string               `json:"reason"`
	State          string               `json:"state"`
	Occurrences    []OccurrenceResponse `json:"occurrences"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation, occurrences []model.Occurrence) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.Repeat = m.RepeatKind
	r.RepeatInterval = m.RepeatInterval
	r.Weekdays = m.Weekdays
	r.Start = timezone.Format(m.StartDT, constant.DateFormat)
	r.End = timezone.Format(m.EndDT, constant.DateFormat)
	r.BookedFor = m.BookedFor
	r.Reason = m.Reason
	r.State = string(m.State)
	r.Metadata.FromModel(m.Metadata)

	r.Occurrences = make([]OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		r.Occurrences[i].FromModel(o)
	}
}

// WithOutcomes replaces the occurrence list with the creation decisions.
func (r *ReservationResponse) WithOutcomes(outcomes []model.Outcome) {
	r.Occurrences = make([]OccurrenceResponse, len(outcomes))
	for i, o := range outcomes {
		r.Occurrences[i].FromOutcome(o)
	}
}

type CalendarEntry struct {
	ReservationID string `json:"reservation_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	State         string `json:"state"`
}

type CalendarResponse struct {
	RoomID  string          `json:"room_id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Entries []CalendarEntry `json:"entries"`
}

func (c *CalendarResponse) FromModels(occurrences []model.Occurrence) {
	c.Entries = make([]CalendarEntry, len(occurrences))
	for i, o := range occurrences {
		c.Entries[i] = CalendarEntry{
			ReservationID: o.ReservationID,
			Start:         timezone.Format(o.StartDT, constant.DateFormat),
			End:           timezone.Format(o.EndDT, constant.DateFormat),
			State:         string(o.State),
		}
	}
}
