package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresNode describes one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// DSN renders a postgres URL for the node. prefix is prepended to the
// database name and params are appended to the query string.
func (n PostgresNode) DSN(prefix string, params url.Values) string {
	query := url.Values{"sslmode": {n.SSLMode}}
	for key, values := range params {
		query[key] = values
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + prefix + n.Name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Shutdown struct {
			GracePeriodSeconds int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string   `envconfig:"NAME" default:"roombooking"`
		Timezone string   `envconfig:"TIMEZONE"`
		Policy   string   `envconfig:"POLICY" default:"owner"`
		Admins   []string `envconfig:"ADMINS"`
	} `envconfig:"APP"`

	Booking struct {
		MaxOccurrences   int    `envconfig:"MAX_OCCURRENCES" default:"5000"`
		DefaultLimitDays int    `envconfig:"DEFAULT_LIMIT_DAYS"`
		AllowPast        bool   `envconfig:"ALLOW_PAST"`
		ExpirySchedule   string `envconfig:"EXPIRY_SCHEDULE" default:"@every 10m"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY" default:"3"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			LockTimeoutMS  int          `envconfig:"LOCK_TIMEOUT_MS" default:"5000"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		Topic   string   `envconfig:"TOPIC" default:"roombooking.reservations"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Outbox struct {
		Schedule      string  `envconfig:"SCHEDULE" default:"@every 5s"`
		BatchSize     int     `envconfig:"BATCH_SIZE" default:"100"`
		RatePerSecond float64 `envconfig:"RATE_PER_SECOND" default:"50"`
	} `envconfig:"OUTBOX"`

	Metrics struct {
		Port      string `envconfig:"PORT" default:"9090"`
		Namespace string `envconfig:"NAMESPACE" default:"roombooking"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// Check rejects settings the engine cannot run with.
func (c *Config) Check() error {
	var errs []error

	if c.Booking.MaxOccurrences <= 0 {
		errs = append(errs, errors.New("BOOKING_MAX_OCCURRENCES must be positive"))
	}

	if c.Booking.DefaultLimitDays < 0 {
		errs = append(errs, errors.New("BOOKING_DEFAULT_LIMIT_DAYS must not be negative"))
	}

	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}

	if c.Outbox.RatePerSecond <= 0 {
		errs = append(errs, errors.New("OUTBOX_RATE_PER_SECOND must be positive"))
	}

	return errors.Join(errs...)
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using process environment")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Init loads the process-wide configuration once.
func Init() error {
	once.Do(func() {
		conf, loadErr = Load()
		if loadErr == nil {
			log.Info().Str("app", conf.App.Name).Msg("configuration loaded")
		}
	})

	return loadErr
}

// Get returns the process-wide configuration, loading it on first use.
// A configuration that fails to load is fatal.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}
