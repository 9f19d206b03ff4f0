package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	"roombooking/internal/domains/room/model"
	"roombooking/shared"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	gRepo "roombooking/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	CreateWithHours(ctx context.Context, room model.Room, hours []model.BookableHours) error
	GetBookableHours(ctx context.Context, roomID string) ([]model.BookableHours, error)
	ReplaceBookableHours(ctx context.Context, roomID string, hours []model.BookableHours) error
	GetNonBookablePeriods(ctx context.Context, roomID string) ([]model.NonBookablePeriod, error)
	InsertNonBookablePeriod(ctx context.Context, period model.NonBookablePeriod) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	hours   gRepo.Repository[model.BookableHours]
	periods gRepo.Repository[model.NonBookablePeriod]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		hours:      gRepo.NewRepository[model.BookableHours](model.BookableHoursEntity, model.BookableHoursTable, model.FieldID, db, otel),
		periods:    gRepo.NewRepository[model.NonBookablePeriod](model.NonBookableEntity, model.NonBookableTable, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) CreateWithHours(ctx context.Context, room model.Room, hours []model.BookableHours) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CreateWithHours")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, room); err != nil {
			return err
		}

		return r.hours.InsertBulkTx(ctx, tx, hours)
	})
	if err != nil {
		return fmt.Errorf("failed to create room with hours: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetBookableHours(ctx context.Context, roomID string) ([]model.BookableHours, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetBookableHours")
	defer scope.End()

	params := gDto.QueryParams{SortBy: "start_time", SortDir: "ASC"}

	return r.hours.GetAll(ctx, params, shared.FilterByID(roomID, model.FieldRoomID, model.BookableHoursTable)) //nolint:wrapcheck
}

// ReplaceBookableHours swaps the whole window set of a room atomically.
func (r *repositoryImpl) ReplaceBookableHours(ctx context.Context, roomID string, hours []model.BookableHours) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ReplaceBookableHours")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.hours.DeleteTx(ctx, tx, shared.FilterByID(roomID, model.FieldRoomID, model.BookableHoursTable)); err != nil {
			return err
		}

		return r.hours.InsertBulkTx(ctx, tx, hours)
	})
	if err != nil {
		return fmt.Errorf("failed to replace bookable hours: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetNonBookablePeriods(ctx context.Context, roomID string) ([]model.NonBookablePeriod, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetNonBookablePeriods")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldStartDT, SortDir: "ASC"}

	return r.periods.GetAll(ctx, params, shared.FilterByID(roomID, model.FieldRoomID, model.NonBookableTable)) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertNonBookablePeriod(ctx context.Context, period model.NonBookablePeriod) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.InsertNonBookablePeriod")
	defer scope.End()

	return r.periods.Insert(ctx, period) //nolint:wrapcheck
}
