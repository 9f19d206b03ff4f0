package config_test

import (
	"net/url"
	"testing"

	"roombooking/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresNode_DSN(t *testing.T) {
	node := config.PostgresNode{
		Host:     "db.internal",
		Port:     "5432",
		Username: "booking",
		Password: "p@ss/word",
		Name:     "rooms",
		SSLMode:  "require",
	}

	dsn := node.DSN("test_", url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/test_rooms", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/Zurich")
	t.Setenv("APP_ADMINS", "alice,bob")
	t.Setenv("BOOKING_DEFAULT_LIMIT_DAYS", "30")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Europe/Zurich", cfg.App.Timezone)
	assert.Equal(t, []string{"alice", "bob"}, cfg.App.Admins)
	assert.Equal(t, 30, cfg.Booking.DefaultLimitDays)
	assert.Equal(t, 5000, cfg.Booking.MaxOccurrences)
	assert.Equal(t, "primary", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, "@every 5s", cfg.Outbox.Schedule)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BOOKING_MAX_OCCURRENCES", "0")
	t.Setenv("OUTBOX_BATCH_SIZE", "-1")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOOKING_MAX_OCCURRENCES must be positive")
	assert.Contains(t, err.Error(), "OUTBOX_BATCH_SIZE must be positive")

	t.Setenv("BOOKING_MAX_OCCURRENCES", "many")

	_, err = config.Load()
	assert.Error(t, err)
}
