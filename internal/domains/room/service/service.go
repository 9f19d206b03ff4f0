package service

import (
	"context"
	"fmt"

	"roombooking/config"
	"roombooking/infras/otel"
	"roombooking/internal/domains/room/model"
	"roombooking/internal/domains/room/model/dto"
	"roombooking/internal/domains/room/repository"
	"roombooking/shared"
	"roombooking/shared/cache"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	"roombooking/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllRoom    = "room:gets"
	cacheCountRoom     = "room:count"
	cacheRoomAggregate = "room:aggregate"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	SetBookableHours(ctx context.Context, id string, req dto.SetBookableHoursRequest) error
	AddNonBookablePeriod(ctx context.Context, id string, req dto.NonBookablePeriodRequest) (string, error)
	// Aggregate loads the room with its windows and non-bookable periods.
	Aggregate(ctx context.Context, id string) (model.Aggregate, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user)

	hours, err := dto.HoursToModels(room.ID, req.BookableHours)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.repo.CreateWithHours(ctx, room, hours); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromAggregate(model.Aggregate{Room: room, BookableHours: hours})

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllRoom, cacheCountRoom)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	agg, err := s.Aggregate(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromAggregate(agg)

	return res, nil
}

func (s *serviceImpl) Aggregate(ctx context.Context, id string) (res model.Aggregate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Aggregate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheRoomAggregate, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room aggregate")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	hours, err := s.repo.GetBookableHours(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to get bookable hours")

		return res, fmt.Errorf("failed to get bookable hours: %w", err)
	}

	periods, err := s.repo.GetNonBookablePeriods(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to get non-bookable periods")

		return res, fmt.Errorf("failed to get non-bookable periods: %w", err)
	}

	res = model.Aggregate{Room: room, BookableHours: hours, NonBookablePeriods: periods}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room aggregate to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetBookableHours(ctx context.Context, id string, req dto.SetBookableHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.SetBookableHours")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	hours, err := dto.HoursToModels(id, req.Hours)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.repo.ReplaceBookableHours(ctx, id, hours); err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to set bookable hours")

		return fmt.Errorf("failed to set bookable hours: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddNonBookablePeriod(ctx context.Context, id string, req dto.NonBookablePeriodRequest) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.AddNonBookablePeriod")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !req.StartDT.Before(req.EndDT) {
		return res, failure.BadRequestFromString("end_dt must be after start_dt") //nolint:wrapcheck
	}

	if err = s.mustExist(ctx, id); err != nil {
		return res, err
	}

	period := req.ToModel(id)

	if err = s.repo.InsertNonBookablePeriod(ctx, period); err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to add non-bookable period")

		return res, fmt.Errorf("failed to add non-bookable period: %w", err)
	}

	s.invalidate(ctx, id)

	return period.ID, nil
}

func (s *serviceImpl) mustExist(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheRoomAggregate, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room aggregate cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom, cacheCountRoom)
	}()
}
