package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"roombooking/config"
	"roombooking/infras/otel"
	outboxService "roombooking/internal/domains/outbox/service"
	reservationService "roombooking/internal/domains/reservation/service"
	"roombooking/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	relayTimeout  = 30 * time.Second
	expiryTimeout = 2 * time.Minute

	expiryAttempts = 2
)

type WorkerState int

const (
	WorkerStateReady WorkerState = iota + 1
	WorkerStateInGracePeriod
)

// Worker runs the background jobs and exposes /metrics.
type Worker struct {
	Config       *config.Config
	Relay        outboxService.Relay
	Reservations reservationService.Reservation
	Otel         otel.Otel

	state  atomic.Int32
	cron   *cron.Cron
	server *http.Server
}

func New(cfg *config.Config, relay outboxService.Relay, reservations reservationService.Reservation, otel otel.Otel) *Worker {
	return &Worker{
		Config:       cfg,
		Relay:        relay,
		Reservations: reservations,
		Otel:         otel,
	}
}

func (w *Worker) Serve() {
	if err := w.setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.cron.Start()

	go func() {
		log.Info().Str("addr", w.server.Addr).Msg("Starting up metrics server.")

		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	<-ctx.Done()

	w.shutdown()
}

func (w *Worker) setup() error {
	logger := cronLogger{}

	w.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := w.cron.AddFunc(w.Config.Outbox.Schedule, w.relayOutbox); err != nil {
		return fmt.Errorf("outbox schedule %q: %w", w.Config.Outbox.Schedule, err)
	}

	if _, err := w.cron.AddFunc(w.Config.Booking.ExpirySchedule, w.expirePending); err != nil {
		return fmt.Errorf("expiry schedule %q: %w", w.Config.Booking.ExpirySchedule, err)
	}

	w.server = &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", w.Config.Metrics.Port),
		Handler:           w.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	w.setState(WorkerStateReady)

	return nil
}

func (w *Worker) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", w.health)

	return r
}

// State is safe to read while the worker serves.
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

func (w *Worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *Worker) health(rw http.ResponseWriter, _ *http.Request) {
	if w.State() != WorkerStateReady {
		rw.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	rw.WriteHeader(http.StatusOK)
}

func (w *Worker) relayOutbox() {
	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	published, err := w.Relay.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Int("published", published).Msg("outbox relay run failed")

		return
	}

	if published > 0 {
		log.Debug().Int("published", published).Msg("outbox relay run finished")
	}
}

func (w *Worker) expirePending() {
	ctx, cancel := context.WithTimeout(context.Background(), expiryTimeout)
	defer cancel()

	for attempt := 1; attempt <= expiryAttempts; attempt++ {
		expired, err := w.Reservations.ExpirePending(ctx)
		if err == nil {
			log.Debug().Int("expired", expired).Msg("pending expiry run finished")

			return
		}

		if !failure.IsRetryable(err) || attempt == expiryAttempts {
			log.Error().Err(err).Int("attempt", attempt).Msg("pending expiry run failed")

			return
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("pending expiry raced with a booking, retrying")
	}
}

func (w *Worker) shutdown() {
	grace := time.Duration(w.Config.Server.Shutdown.GracePeriodSeconds) * time.Second

	log.Info().Int64("seconds", w.Config.Server.Shutdown.GracePeriodSeconds).Msg("Received SIGTERM. Entering grace period.")

	w.setState(WorkerStateInGracePeriod)

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("Jobs still running after grace period")
	}

	if err := w.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to stop metrics server")
	}

	if err := w.Otel.Shutdown(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
