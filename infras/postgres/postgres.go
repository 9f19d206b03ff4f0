package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"roombooking/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Error codes that mean a concurrent writer won the race and the whole
// operation may be retried.
const (
	ErrCodeSerializationFailure = "40001"
	ErrCodeDeadlockDetected     = "40P01"
	ErrCodeLockNotAvailable     = "55P03"
	ErrCodeExclusionViolation   = "23P01"
	ErrCodeUniqueViolation      = "23505"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  open("read", cfg.DB.Postgres.Read, cfg),
		Write: open("write", cfg.DB.Postgres.Write, cfg),
	}
}

// WithTx runs fn inside a write transaction. The transaction is committed when
// fn returns nil and rolled back otherwise.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(tx)
}

// IsRaceError reports whether err comes from a concurrent transaction holding
// or having written the rows we needed.
func IsRaceError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case ErrCodeSerializationFailure, ErrCodeDeadlockDetected, ErrCodeLockNotAvailable,
		ErrCodeExclusionViolation, ErrCodeUniqueViolation:
		return true
	}

	return false
}

func open(name string, node config.PostgresNode, cfg *config.Config) *sqlx.DB {
	dsn := node.DSN(cfg.DB.Postgres.Prefix, nil)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	logger := log.With().
		Str("name", name).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("dbName", cfg.DB.Postgres.Prefix+node.Name).
		Logger()

	for attempt := 1; attempt <= max(cfg.DB.Postgres.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			logger.Info().Msg("connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("failed connecting to database, retrying")
		time.Sleep(wait)
	}

	logger.Fatal().Msg("giving up connecting to database")

	return nil
}
