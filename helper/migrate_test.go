package helper

import (
	"net/url"
	"testing"

	"roombooking/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_UnknownAction(t *testing.T) {
	err := Runner(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "ci_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write = config.PostgresNode{
		Host: "localhost", Port: "5432", Username: "booking", Password: "secret", Name: "rooms", SSLMode: "disable",
	}

	parsed, err := url.Parse(connectionString(cfg))
	require.NoError(t, err)

	assert.Equal(t, "/ci_rooms", parsed.Path)
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}
