package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"roombooking/config"
	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	outboxModel "roombooking/internal/domains/outbox/model"
	outboxRepo "roombooking/internal/domains/outbox/repository"
	"roombooking/internal/domains/reservation/model"
	"roombooking/internal/engine/lifecycle"
	"roombooking/shared"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	gRepo "roombooking/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	queryRoomLock    = "SELECT pg_advisory_xact_lock(hashtext($1))"
	queryLockTimeout = "SET LOCAL lock_timeout = %d"
)

type Reservation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Occurrences(ctx context.Context, reservationID string) ([]model.Occurrence, error)
	// OccurrencesInRange reads without locking. An empty states list means every state.
	OccurrencesInRange(ctx context.Context, roomID string, from, to time.Time, states ...lifecycle.State) ([]model.Occurrence, error)
	PendingStartedBefore(ctx context.Context, before time.Time, limit int) ([]model.Occurrence, error)
	// WithRoomLock runs fn in a transaction holding the room's write lock.
	WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error
}

// Tx is the view of the store inside WithRoomLock.
type Tx interface {
	GetReservation(ctx context.Context, id string) (model.Reservation, error)
	Occurrences(ctx context.Context, reservationID string) ([]model.Occurrence, error)
	ActiveOccurrences(ctx context.Context, roomID string, from, to time.Time) ([]model.Occurrence, error)
	InsertReservation(ctx context.Context, reservation model.Reservation, occurrences []model.Occurrence) error
	UpdateOccurrences(ctx context.Context, occurrences []model.Occurrence) error
	UpdateReservationState(ctx context.Context, id string, state lifecycle.ReservationState, user string, at time.Time) error
	AddOutboxEvents(ctx context.Context, events ...outboxModel.Event) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	occurrences gRepo.Repository[model.Occurrence]
	outbox      outboxRepo.Outbox
	db          *postgres.Connection
	cfg         *config.Config
	otel        otel.Otel
}

func New(db *postgres.Connection, outbox outboxRepo.Outbox, cfg *config.Config, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		occurrences: gRepo.NewRepository[model.Occurrence](model.OccurrenceEntity, model.OccurrenceTable, model.FieldReservationID, db, otel),
		outbox:      outbox,
		db:          db,
		cfg:         cfg,
		otel:        otel,
	}
}

var byStart = gDto.QueryParams{SortBy: model.FieldStartDT, SortDir: "ASC"}

func byReservation(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldReservationID, model.OccurrenceTable)
}

func overlapping(roomID string, from, to time.Time, states []lifecycle.State) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.OccurrenceTable},
		gDto.Filter{ArgName: "window_end", Field: model.FieldStartDT, Value: to, Operator: gDto.FilterOperatorLess, Table: model.OccurrenceTable},
		gDto.Filter{ArgName: "window_start", Field: model.FieldEndDT, Value: from, Operator: gDto.FilterOperatorGreater, Table: model.OccurrenceTable},
	}

	if len(states) > 0 {
		values := make([]string, len(states))
		for i, s := range states {
			values[i] = string(s)
		}

		filters = append(filters, gDto.Filter{ArgName: "wanted_state", Field: model.FieldState, Value: values, Operator: gDto.FilterOperatorIn, Table: model.OccurrenceTable})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func (r *repositoryImpl) Occurrences(ctx context.Context, reservationID string) ([]model.Occurrence, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Occurrences")
	defer scope.End()

	return r.occurrences.GetAll(ctx, byStart, byReservation(reservationID)) //nolint:wrapcheck
}

func (r *repositoryImpl) OccurrencesInRange(ctx context.Context, roomID string, from, to time.Time, states ...lifecycle.State) ([]model.Occurrence, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.OccurrencesInRange")
	defer scope.End()

	return r.occurrences.GetAll(ctx, byStart, overlapping(roomID, from, to, states)) //nolint:wrapcheck
}

func (r *repositoryImpl) PendingStartedBefore(ctx context.Context, before time.Time, limit int) ([]model.Occurrence, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.PendingStartedBefore")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldState, Value: lifecycle.Pending, Operator: gDto.FilterOperatorEq, Table: model.OccurrenceTable},
			gDto.Filter{ArgName: "before", Field: model.FieldStartDT, Value: before, Operator: gDto.FilterOperatorLess, Table: model.OccurrenceTable},
		},
	}

	params := byStart
	params.Limit = limit

	return r.occurrences.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.WithRoomLock")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("room.id", roomID)

	return r.db.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		if timeout := r.cfg.DB.Postgres.LockTimeoutMS; timeout > 0 {
			if _, err := sqltx.ExecContext(ctx, fmt.Sprintf(queryLockTimeout, timeout)); err != nil {
				return fmt.Errorf("failed to set lock timeout: %w", err)
			}
		}

		if _, err := sqltx.ExecContext(ctx, queryRoomLock, roomID); err != nil {
			return fmt.Errorf("failed to lock room %s: %w", roomID, err)
		}

		return fn(&txImpl{repo: r, tx: sqltx})
	})
}

type txImpl struct {
	repo *repositoryImpl
	tx   *sqlx.Tx
}

func (t *txImpl) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	return t.repo.GetForUpdateTx(ctx, t.tx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (t *txImpl) Occurrences(ctx context.Context, reservationID string) ([]model.Occurrence, error) {
	return t.repo.occurrences.GetAllTx(ctx, t.tx, byStart, byReservation(reservationID)) //nolint:wrapcheck
}

func (t *txImpl) ActiveOccurrences(ctx context.Context, roomID string, from, to time.Time) ([]model.Occurrence, error) {
	return t.repo.occurrences.GetAllTx(ctx, t.tx, byStart, overlapping(roomID, from, to, []lifecycle.State{lifecycle.Pending, lifecycle.Accepted})) //nolint:wrapcheck
}

func (t *txImpl) InsertReservation(ctx context.Context, reservation model.Reservation, occurrences []model.Occurrence) error {
	if err := t.repo.InsertTx(ctx, t.tx, reservation); err != nil {
		return err //nolint:wrapcheck
	}

	return t.repo.occurrences.InsertBulkTx(ctx, t.tx, occurrences) //nolint:wrapcheck
}

func (t *txImpl) UpdateOccurrences(ctx context.Context, occurrences []model.Occurrence) error {
	for _, o := range occurrences {
		fields := map[string]any{
			model.FieldState:           o.State,
			model.FieldRejectionReason: o.RejectionReason,
			constant.FieldModifiedAt:   o.ModifiedAt,
			constant.FieldModifiedBy:   o.ModifiedBy,
		}

		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{ArgName: "key_reservation", Field: model.FieldReservationID, Value: o.ReservationID, Operator: gDto.FilterOperatorEq, Table: model.OccurrenceTable},
				gDto.Filter{ArgName: "key_start", Field: model.FieldStartDT, Value: o.StartDT, Operator: gDto.FilterOperatorEq, Table: model.OccurrenceTable},
			},
		}

		if err := t.repo.occurrences.UpdateTx(ctx, t.tx, fields, filter); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (t *txImpl) UpdateReservationState(ctx context.Context, id string, state lifecycle.ReservationState, user string, at time.Time) error {
	fields := map[string]any{
		model.FieldState:         state,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: user,
	}

	return t.repo.UpdateTx(ctx, t.tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (t *txImpl) AddOutboxEvents(ctx context.Context, events ...outboxModel.Event) error {
	return t.repo.outbox.InsertTx(ctx, t.tx, events...) //nolint:wrapcheck
}
