package dto

import (
	"fmt"
	"time"

	"roombooking/internal/domains/room/model"
	"roombooking/internal/engine/interval"
	"roombooking/shared"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	gModel "roombooking/shared/model"
	"roombooking/shared/timezone"

	"github.com/google/uuid"
)

type BookableHoursRequest struct {
	Weekday   *int   `json:"weekday"    validate:"omitempty,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04,timeafter=StartTime"`
}

func (b *BookableHoursRequest) ToModel(roomID string) (model.BookableHours, error) {
	start, err := interval.ParseClock(b.StartTime)
	if err != nil {
		return model.BookableHours{}, fmt.Errorf("start_time: %w", err)
	}

	end, err := interval.ParseClock(b.EndTime)
	if err != nil {
		return model.BookableHours{}, fmt.Errorf("end_time: %w", err)
	}

	return model.BookableHours{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Weekday:   b.Weekday,
		StartTime: start,
		EndTime:   end,
	}, nil
}

type CreateRoomRequest struct {
	Name             string                 `json:"name"               validate:"required,max=100"`
	Location         string                 `json:"location"           validate:"omitempty,max=100"`
	Capacity         int                    `json:"capacity"           validate:"omitempty,min=0"`
	Active           *bool                  `json:"active"             validate:"omitempty"`
	AutoAccept       bool                   `json:"auto_accept"`
	BookingLimitDays *int                   `json:"booking_limit_days" validate:"omitempty,min=0"`
	Owner            string                 `json:"owner"              validate:"omitempty,max=255"`
	BookableHours    []BookableHoursRequest `json:"bookable_hours"     validate:"omitempty,dive"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	owner := c.Owner
	if owner == constant.Empty {
		owner = user
	}

	now := timezone.Now()

	return model.Room{
		ID:               uuid.NewString(),
		Name:             c.Name,
		Location:         c.Location,
		Capacity:         c.Capacity,
		Active:           active,
		AutoAccept:       c.AutoAccept,
		BookingLimitDays: c.BookingLimitDays,
		Owner:            owner,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func HoursToModels(roomID string, reqs []BookableHoursRequest) ([]model.BookableHours, error) {
	hours := make([]model.BookableHours, 0, len(reqs))

	for i := range reqs {
		h, err := reqs[i].ToModel(roomID)
		if err != nil {
			return nil, err
		}

		hours = append(hours, h)
	}

	return hours, nil
}

type UpdateRoomRequest struct {
	Name             string `db:"name"               json:"name"               validate:"omitempty,max=100"`
	Location         string `db:"location"           json:"location"           validate:"omitempty,max=100"`
	Capacity         *int   `db:"capacity"           json:"capacity"           validate:"omitempty,min=0"`
	Active           *bool  `db:"active"             json:"active"             validate:"omitempty"`
	AutoAccept       *bool  `db:"auto_accept"        json:"auto_accept"        validate:"omitempty"`
	BookingLimitDays *int   `db:"booking_limit_days" json:"booking_limit_days" validate:"omitempty,min=0"`
	Owner            string `db:"owner"              json:"owner"              validate:"omitempty,max=255"`
}

type SetBookableHoursRequest struct {
	Hours []BookableHoursRequest `json:"hours" validate:"dive"`
}

type NonBookablePeriodRequest struct {
	StartDT time.Time `json:"start_dt" validate:"required"`
	EndDT   time.Time `json:"end_dt"   validate:"required,gtfield=StartDT"`
}

func (n *NonBookablePeriodRequest) ToModel(roomID string) model.NonBookablePeriod {
	return model.NonBookablePeriod{
		ID:      uuid.NewString(),
		RoomID:  roomID,
		StartDT: n.StartDT,
		EndDT:   n.EndDT,
	}
}

type BookableHoursResponse struct {
	Weekday   *int   `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type NonBookablePeriodResponse struct {
	ID      string `json:"id"`
	StartDT string `json:"start_dt"`
	EndDT   string `json:"end_dt"`
}

type RoomResponse struct {
	ID                 string                      `json:"id"`
	Name               string                      `json:"name"`
	Location           string                      `json:"location"`
	Capacity           int                         `json:"capacity"`
	Active             bool                        `json:"active"`
	AutoAccept         bool                        `json:"auto_accept"`
	BookingLimitDays   *int                        `json:"booking_limit_days,omitempty"`
	Owner              string                      `json:"owner"`
	BookableHours      []BookableHoursResponse     `json:"bookable_hours,omitempty"`
	NonBookablePeriods []NonBookablePeriodResponse `json:"nonbookable_periods,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.AutoAccept = model.AutoAccept
	r.BookingLimitDays = model.BookingLimitDays
	r.Owner = model.Owner
	r.Metadata.FromModel(model.Metadata)
}

func (r *RoomResponse) FromAggregate(agg model.Aggregate) {
	r.FromModel(agg.Room)

	r.BookableHours = make([]BookableHoursResponse, len(agg.BookableHours))
	for i, h := range agg.BookableHours {
		r.BookableHours[i] = BookableHoursResponse{
			Weekday:   h.Weekday,
			StartTime: h.StartTime.String(),
			EndTime:   h.EndTime.String(),
		}
	}

	r.NonBookablePeriods = make([]NonBookablePeriodResponse, len(agg.NonBookablePeriods))
	for i, p := range agg.NonBookablePeriods {
		r.NonBookablePeriods[i] = NonBookablePeriodResponse{
			ID:      p.ID,
			StartDT: timezone.Format(p.StartDT, constant.DateFormat),
			EndDT:   timezone.Format(p.EndDT, constant.DateFormat),
		}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
