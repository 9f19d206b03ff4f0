package dto

import (
	"fmt"
	"time"

	"roombooking/internal/engine/interval"
	"roombooking/shared/constant"
)

type RoomScheduleRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
	From   string `json:"from"    validate:"required,datetime=2006-01-02"`
	To     string `json:"to"      validate:"required,datetime=2006-01-02,datefrom=From"`
}

// Window is [From 00:00, To+1 00:00) in loc.
func (r *RoomScheduleRequest) Window(loc *time.Location) (interval.Interval, error) {
	from, err := time.ParseInLocation(constant.DayFormat, r.From, loc)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("from: %w", err)
	}

	to, err := time.ParseInLocation(constant.DayFormat, r.To, loc)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("to: %w", err)
	}

	return interval.WholeDays(from, to), nil
}

type ExportResponse struct {
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Entries     int    `json:"entries"`
}
