package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"roombooking/config"
	"roombooking/infras/otel"
	"roombooking/internal/domains/blocking/model"
	"roombooking/internal/domains/blocking/model/dto"
	"roombooking/internal/domains/blocking/repository"
	roomService "roombooking/internal/domains/room/service"
	"roombooking/internal/engine/availability"
	"roombooking/permissions"
	"roombooking/shared"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	"roombooking/shared/failure"
	"roombooking/shared/timezone"
	"roombooking/shared/validator"

	"github.com/rs/zerolog/log"
)

type Blocking interface {
	Create(ctx context.Context, req dto.CreateBlockingRequest) (dto.BlockingResponse, error)
	Get(ctx context.Context, id string) (dto.BlockingResponse, error)
	ListForRoom(ctx context.Context, roomID string) ([]dto.BlockingResponse, error)
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, req dto.RejectBlockingRequest) error
	ActiveForRoom(ctx context.Context, roomID string, from, to time.Time) ([]availability.Blocking, error)
}

type serviceImpl struct {
	repo   repository.Blocking
	rooms  roomService.Room
	policy permissions.Policy
	cfg    *config.Config
	otel   otel.Otel
}

func New(repo repository.Blocking, rooms roomService.Room, policy permissions.Policy, cfg *config.Config, otel otel.Otel) Blocking {
	return &serviceImpl{
		repo:   repo,
		rooms:  rooms,
		policy: policy,
		cfg:    cfg,
		otel:   otel,
	}
}

// Create stores a blocking. It is accepted right away when the creator may
// moderate the room and waits for a moderator otherwise.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockingRequest) (res dto.BlockingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.rooms.Aggregate(ctx, req.RoomID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	state := model.StatePending
	if s.policy.CanModerate(ctx, user, permissions.Subject{RoomID: room.Room.ID, RoomOwner: room.Room.Owner}) {
		state = model.StateAccepted
	}

	blocking, err := req.ToModel(user, state)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, blocking); err != nil {
		log.Error().Err(err).Msg("failed to create blocking")

		return res, fmt.Errorf("failed to create blocking: %w", err)
	}

	log.Info().Str("blocking", blocking.ID).Str("room", blocking.RoomID).Str("state", string(state)).Msg("blocking created")

	res.FromModel(blocking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlockingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	blocking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(blocking)

	return res, nil
}

func (s *serviceImpl) ListForRoom(ctx context.Context, roomID string) (res []dto.BlockingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.ListForRoom")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: "ASC"}

	models, err := s.repo.GetAll(ctx, params, shared.FilterByID(roomID, model.FieldRoomID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to list blockings")

		return nil, fmt.Errorf("failed to list blockings: %w", err)
	}

	res = make([]dto.BlockingResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res, nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.Accept")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.moderate(ctx, id, model.StateAccepted, constant.Empty)
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBlockingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	return s.moderate(ctx, id, model.StateRejected, req.Reason)
}

func (s *serviceImpl) moderate(ctx context.Context, id string, to model.State, reason string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	blocking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	room, err := s.rooms.Aggregate(ctx, blocking.RoomID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !s.policy.CanModerate(ctx, user, permissions.Subject{RoomID: room.Room.ID, RoomOwner: room.Room.Owner}) {
		return failure.Forbidden("not allowed to moderate blockings of this room") //nolint:wrapcheck
	}

	if blocking.State != model.StatePending {
		return failure.Conflict(fmt.Sprintf("blocking is %s, not pending", blocking.State)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldState:           to,
		model.FieldRejectionReason: reason,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("blocking", id).Msg("failed to update blocking")

		return fmt.Errorf("failed to update blocking: %w", err)
	}

	log.Info().Str("blocking", id).Str("state", string(to)).Str("by", user).Msg("blocking moderated")

	return nil
}

func (s *serviceImpl) ActiveForRoom(ctx context.Context, roomID string, from, to time.Time) (res []availability.Blocking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blocking.ActiveForRoom")
	defer scope.End()
	defer scope.TraceIfError(&err)

	models, err := s.repo.ActiveForRoom(ctx, roomID, dateOnly(from), dateOnly(to))
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to load active blockings")

		return nil, fmt.Errorf("failed to load active blockings: %w", err)
	}

	res = make([]availability.Blocking, len(models))
	for i, m := range models {
		res[i] = m.Availability()
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Blocking, error) {
	blocking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("blocking", id).Msg("failed to get blocking")

		return blocking, fmt.Errorf("failed to get blocking: %w", err)
	}

	if blocking.ID == constant.Empty {
		return blocking, failure.NotFound("blocking not found") //nolint:wrapcheck
	}

	return blocking, nil
}

// dateOnly maps t to the UTC midnight of its calendar date, the form DATE columns are compared in.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
