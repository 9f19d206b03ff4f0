package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"roombooking/config"
	"roombooking/infras/otel"
	"roombooking/infras/s3"
	"roombooking/internal/domains/export/model/dto"
	reservationModel "roombooking/internal/domains/reservation/model"
	reservationRepo "roombooking/internal/domains/reservation/repository"
	roomService "roombooking/internal/domains/room/service"
	"roombooking/shared"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	"roombooking/shared/failure"
	"roombooking/shared/timezone"
	"roombooking/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	calendarDirectory = "exports/calendars"
	scheduleDirectory = "exports/schedules"

	contentTypeCalendar = constant.ContentTypeCalendar + "; charset=utf-8"
	contentTypeSchedule = constant.ContentTypeXLSX
)

type Export interface {
	// ReservationCalendar uploads an iCalendar with the active occurrences of a reservation.
	ReservationCalendar(ctx context.Context, id string) (dto.ExportResponse, error)
	// RoomSchedule uploads a workbook with every occurrence of a room in the window.
	RoomSchedule(ctx context.Context, req dto.RoomScheduleRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	reservations reservationRepo.Reservation
	rooms        roomService.Room
	storage      s3.S3
	cfg          *config.Config
	otel         otel.Otel
}

func New(reservations reservationRepo.Reservation, rooms roomService.Room, storage s3.S3, cfg *config.Config, otel otel.Otel) Export {
	return &serviceImpl{
		reservations: reservations,
		rooms:        rooms,
		storage:      storage,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) ReservationCalendar(ctx context.Context, id string) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".export.ReservationCalendar")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.reservations.Get(ctx, shared.FilterByID(id, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get reservation for export")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	room, err := s.rooms.Aggregate(ctx, reservation.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	occurrences, err := s.reservations.Occurrences(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get occurrences for export")

		return res, fmt.Errorf("failed to get occurrences: %w", err)
	}

	cal, events := buildCalendar(s.cfg.App.Name, room.Room, reservation, occurrences)
	if events == 0 {
		return res, failure.Conflict("reservation has no active occurrence to export") //nolint:wrapcheck
	}

	res = dto.ExportResponse{
		FileName:    fmt.Sprintf("%s-%d.ics", id, timezone.Now().Unix()),
		ContentType: contentTypeCalendar,
		Entries:     events,
	}

	res.URL, err = s.storage.Upload(ctx, calendarDirectory, res.FileName, res.ContentType, []byte(cal.Serialize()))
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to upload calendar")

		return dto.ExportResponse{}, fmt.Errorf("failed to upload calendar: %w", err)
	}

	log.Info().Str("reservation", id).Int("events", events).Str("url", res.URL).Msg("calendar exported")

	return res, nil
}

func (s *serviceImpl) RoomSchedule(ctx context.Context, req dto.RoomScheduleRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".export.RoomSchedule")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	window, err := req.Window(timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if _, err = s.rooms.Aggregate(ctx, req.RoomID); err != nil {
		return res, err //nolint:wrapcheck
	}

	occurrences, err := s.reservations.OccurrencesInRange(ctx, req.RoomID, window.Start, window.End)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to load schedule")

		return res, fmt.Errorf("failed to load schedule: %w", err)
	}

	reservations, err := s.reservationsOf(ctx, occurrences)
	if err != nil {
		return res, err
	}

	data, err := buildSchedule(occurrences, reservations)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to build schedule")

		return res, fmt.Errorf("failed to build schedule: %w", err)
	}

	res = dto.ExportResponse{
		FileName:    fmt.Sprintf("%s_%s_%s.xlsx", req.RoomID, req.From, req.To),
		ContentType: contentTypeSchedule,
		Entries:     len(occurrences),
	}

	res.URL, err = s.storage.Upload(ctx, scheduleDirectory, res.FileName, res.ContentType, data)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to upload schedule")

		return dto.ExportResponse{}, fmt.Errorf("failed to upload schedule: %w", err)
	}

	log.Info().Str("room", req.RoomID).Int("rows", len(occurrences)).Str("url", res.URL).Msg("schedule exported")

	return res, nil
}

func (s *serviceImpl) reservationsOf(ctx context.Context, occurrences []reservationModel.Occurrence) (map[string]reservationModel.Reservation, error) {
	out := map[string]reservationModel.Reservation{}
	if len(occurrences) == 0 {
		return out, nil
	}

	var ids []string

	for _, o := range occurrences {
		if _, ok := out[o.ReservationID]; !ok {
			out[o.ReservationID] = reservationModel.Reservation{}
			ids = append(ids, o.ReservationID)
		}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: reservationModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: reservationModel.TableName},
		},
	}

	list, err := s.reservations.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load reservations for schedule")

		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	for _, r := range list {
		out[r.ID] = r
	}

	return out, nil
}
