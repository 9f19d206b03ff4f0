package service

import (
	"bytes"
	"fmt"

	reservationModel "roombooking/internal/domains/reservation/model"
	"roombooking/shared/constant"
	"roombooking/shared/timezone"

	"github.com/xuri/excelize/v2"
)

const scheduleSheet = "Schedule"

var scheduleHeader = []any{"Date", "Start", "End", "Reservation", "Booked for", "Reason", "State", "Rejection reason"}

// buildSchedule writes one row per occurrence. Reservation details missing
// from reservations leave their columns empty.
func buildSchedule(occurrences []reservationModel.Occurrence, reservations map[string]reservationModel.Reservation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, scheduleHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	last, _ := excelize.CoordinatesToCellName(len(scheduleHeader), 1)
	if err := f.SetCellStyle(scheduleSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, o := range occurrences {
		r := reservations[o.ReservationID]

		row := []any{
			timezone.Format(o.StartDT, constant.DayFormat),
			timezone.Format(o.StartDT, constant.TimeOfDayFormat),
			timezone.Format(o.EndDT, constant.TimeOfDayFormat),
			o.ReservationID,
			r.BookedFor,
			r.Reason,
			string(o.State),
			o.RejectionReason,
		}

		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.AutoFilter(scheduleSheet, "A1:"+last, nil); err != nil {
		return nil, fmt.Errorf("auto filter: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	if err := f.SetSheetRow(scheduleSheet, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	return nil
}
