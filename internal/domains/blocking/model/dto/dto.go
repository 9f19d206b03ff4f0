package dto

import (
	"fmt"
	"time"

	"roombooking/internal/domains/blocking/model"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	gModel "roombooking/shared/model"
	"roombooking/shared/timezone"

	"github.com/google/uuid"
)

type CreateBlockingRequest struct {
	RoomID            string   `json:"room_id"            validate:"required,uuid"`
	StartDate         string   `json:"start_date"         validate:"required,datetime=2006-01-02"`
	EndDate           string   `json:"end_date"           validate:"required,datetime=2006-01-02,datefrom=StartDate"`
	Reason            string   `json:"reason"             validate:"required,max=500"`
	AllowedPrincipals []string `json:"allowed_principals" validate:"omitempty,unique,dive,required"`
}

// ToModel keeps the dates as UTC midnights so they map onto DATE columns unchanged.
func (c *CreateBlockingRequest) ToModel(user string, state model.State) (model.Blocking, error) {
	start, err := time.Parse(constant.DayFormat, c.StartDate)
	if err != nil {
		return model.Blocking{}, fmt.Errorf("start_date: %w", err)
	}

	end, err := time.Parse(constant.DayFormat, c.EndDate)
	if err != nil {
		return model.Blocking{}, fmt.Errorf("end_date: %w", err)
	}

	if end.Before(start) {
		return model.Blocking{}, fmt.Errorf("end_date %s is before start_date %s", c.EndDate, c.StartDate)
	}

	principals := c.AllowedPrincipals
	if principals == nil {
		principals = []string{}
	}

	now := timezone.Now()

	return model.Blocking{
		ID:                uuid.NewString(),
		RoomID:            c.RoomID,
		StartDate:         start,
		EndDate:           end,
		Reason:            c.Reason,
		State:             state,
		AllowedPrincipals: principals,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RejectBlockingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type BlockingResponse struct {
	ID                string   `json:"id"`
	RoomID            string   `json:"room_id"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Reason            string   `json:"reason"`
	State             string   `json:"state"`
	RejectionReason   string   `json:"rejection_reason,omitempty"`
	AllowedPrincipals []string `json:"allowed_principals"`
	gDto.Metadata
}

func (r *BlockingResponse) FromModel(m model.Blocking) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.StartDate = m.StartDate.Format(constant.DayFormat)
	r.EndDate = m.EndDate.Format(constant.DayFormat)
	r.Reason = m.Reason
	r.State = string(m.State)
	r.RejectionReason = m.RejectionReason
	r.AllowedPrincipals = m.AllowedPrincipals
	r.Metadata.FromModel(m.Metadata)
}
