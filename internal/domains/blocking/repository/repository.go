package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	"roombooking/internal/domains/blocking/model"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	gRepo "roombooking/shared/repository"
)

type Blocking interface {
	Insert(ctx context.Context, model model.Blocking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Blocking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Blocking, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// ActiveForRoom returns accepted blockings of the room touching [from, to].
	ActiveForRoom(ctx context.Context, roomID string, from, to time.Time) ([]model.Blocking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Blocking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Blocking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Blocking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) ActiveForRoom(ctx context.Context, roomID string, from, to time.Time) ([]model.Blocking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".blocking.ActiveForRoom")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldState, Value: model.StateAccepted, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "window_to", Field: model.FieldStartDate, Value: to, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{ArgName: "window_from", Field: model.FieldEndDate, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: "ASC"}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
