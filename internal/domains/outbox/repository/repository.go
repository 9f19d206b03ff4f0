package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	"roombooking/internal/domains/outbox/model"
	"roombooking/shared/constant"
	gDto "roombooking/shared/dto"
	"roombooking/shared/logger"
	gRepo "roombooking/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	queryInsert = `INSERT INTO outbox_events (aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES (:aggregate_type, :aggregate_id, :event_type, :payload, :created_at)`

	queryLockBatch = `SELECT id, aggregate_type, aggregate_id, event_type, payload, attempts, last_error, created_at, published_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`

	queryMarkPublished = `UPDATE outbox_events SET published_at = NOW() WHERE id = ANY($1)`
	queryMarkFailed    = `UPDATE outbox_events SET attempts = attempts + 1, last_error = $2 WHERE id = ANY($1)`
)

// PublishFunc delivers a batch. Returning an error keeps the batch unpublished.
type PublishFunc func(ctx context.Context, events []model.Event) error

type Outbox interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, events ...model.Event) error
	// ProcessBatch locks up to limit unpublished events, hands them to publish
	// and marks them published when it succeeds. Rows locked by another relay
	// are skipped.
	ProcessBatch(ctx context.Context, limit int, publish PublishFunc) (int, error)
	Backlog(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	events gRepo.Repository[model.Event]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Outbox {
	return &repositoryImpl{
		events: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:     db,
		otel:   otel,
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, events ...model.Event) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".outbox.InsertTx")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(events) == 0 {
		return nil
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryInsert)

	if _, err = sqltx.NamedExecContext(ctx, queryInsert, events); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to insert outbox events: %w", err)
	}

	return nil
}

func (r *repositoryImpl) ProcessBatch(ctx context.Context, limit int, publish PublishFunc) (processed int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".outbox.ProcessBatch")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var publishErr error

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var events []model.Event

		if err := tx.SelectContext(ctx, &events, queryLockBatch, limit); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock outbox batch: %w", err)
		}

		if len(events) == 0 {
			return nil
		}

		ids := make([]int64, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}

		if publishErr = publish(ctx, events); publishErr != nil {
			// the attempt is recorded and committed; the rows stay unpublished
			if _, err := tx.ExecContext(ctx, queryMarkFailed, pq.Array(ids), publishErr.Error()); err != nil {
				return fmt.Errorf("failed to record outbox attempt: %w", err)
			}

			return nil
		}

		if _, err := tx.ExecContext(ctx, queryMarkPublished, pq.Array(ids)); err != nil {
			return fmt.Errorf("failed to mark outbox events published: %w", err)
		}

		processed = len(events)

		return nil
	})
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if publishErr != nil {
		return 0, fmt.Errorf("failed to publish outbox batch: %w", publishErr)
	}

	return processed, nil
}

func (r *repositoryImpl) Backlog(ctx context.Context) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".outbox.Backlog")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPublishedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	return r.events.Count(ctx, filter) //nolint:wrapcheck
}
