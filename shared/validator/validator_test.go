package validator_test

import (
	"net/http"
	"testing"

	"roombooking/shared/failure"
	"roombooking/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04,timeafter=StartTime"`
}

type bookingForm struct {
	RoomID    string   `json:"room_id"    validate:"required,uuid"`
	Repeat    string   `json:"repeat"     validate:"required,oneof=none daily weekly monthly"`
	StartDate string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date"   validate:"required,datetime=2006-01-02,datefrom=StartDate"`
	Window    window   `json:"window"`
	Weekdays  []int    `json:"weekdays"   validate:"omitempty,unique,dive,min=0,max=6"`
	Windows   []window `json:"windows"    validate:"omitempty,dive"`
}

func validForm() bookingForm {
	return bookingForm{
		RoomID:    "2b1b8f0e-3c8a-4a55-9d7e-0b7d8c1f2a10",
		Repeat:    "weekly",
		StartDate: "2024-03-04",
		EndDate:   "2024-03-15",
		Window:    window{StartTime: "09:00", EndTime: "10:00"},
		Weekdays:  []int{1, 3},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *bookingForm)
		wantErr string
	}{
		{name: "valid form", mutate: func(_ *bookingForm) {}},
		{name: "single day range", mutate: func(f *bookingForm) { f.EndDate = f.StartDate }},
		{name: "missing room", mutate: func(f *bookingForm) { f.RoomID = "" }, wantErr: "room_id is required"},
		{name: "unknown repeat", mutate: func(f *bookingForm) { f.Repeat = "yearly" }, wantErr: "repeat must be one of none daily weekly monthly"},
		{name: "malformed date", mutate: func(f *bookingForm) { f.StartDate = "04/03/2024" }, wantErr: "start_date must match the layout 2006-01-02"},
		{name: "end before start", mutate: func(f *bookingForm) { f.EndDate = "2024-03-01" }, wantErr: "end_date must not be before start_date"},
		{
			name:    "nested end time equal start time",
			mutate:  func(f *bookingForm) { f.Window.EndTime = "09:00" },
			wantErr: "window.end_time must be after start_time",
		},
		{
			name:    "window inside a slice",
			mutate:  func(f *bookingForm) { f.Windows = []window{{StartTime: "11:00", EndTime: "10:00"}} },
			wantErr: "windows[0].end_time must be after start_time",
		},
		{name: "weekday out of range", mutate: func(f *bookingForm) { f.Weekdays = []int{7} }, wantErr: "weekdays[0] must be at most 6"},
		{name: "duplicate weekdays", mutate: func(f *bookingForm) { f.Weekdays = []int{1, 1} }, wantErr: "weekdays must not contain duplicates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_ReportsEveryViolation(t *testing.T) {
	form := validForm()
	form.RoomID = ""
	form.Repeat = ""

	err := validator.ValidateStruct(&form)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "room_id is required; repeat is required")
}
