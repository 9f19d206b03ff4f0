package service

import (
	"fmt"
	"strings"

	reservationModel "roombooking/internal/domains/reservation/model"
	roomModel "roombooking/internal/domains/room/model"
	"roombooking/internal/engine/lifecycle"

	ical "github.com/arran4/golang-ical"
)

const icalStampFormat = "20060102T150405Z"

// buildCalendar renders the active occurrences of a reservation as one VEVENT each.
func buildCalendar(product string, room roomModel.Room, reservation reservationModel.Reservation, occurrences []reservationModel.Occurrence) (*ical.Calendar, int) {
	cal := ical.NewCalendarFor(product)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(fmt.Sprintf("%s: %s", room.Name, reservation.Reason))

	where := room.Name
	if room.Location != "" {
		where = room.Name + ", " + room.Location
	}

	events := 0

	for _, o := range occurrences {
		if !o.State.Active() {
			continue
		}

		uid := fmt.Sprintf("%s-%s@%s", reservation.ID, o.StartDT.UTC().Format(icalStampFormat), strings.ToLower(product))

		event := cal.AddEvent(uid)
		event.SetDtStampTime(o.ModifiedAt)
		event.SetStartAt(o.StartDT)
		event.SetEndAt(o.EndDT)
		event.SetSummary(reservation.Reason)
		event.SetLocation(where)
		event.SetDescription("Booked for " + reservation.BookedFor)
		event.SetStatus(eventStatus(o.State))

		events++
	}

	return cal, events
}

func eventStatus(state lifecycle.State) ical.ObjectStatus {
	if state == lifecycle.Accepted {
		return ical.ObjectStatusConfirmed
	}

	return ical.ObjectStatusTentative
}
