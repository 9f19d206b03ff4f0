package worker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombooking/config"
	otelMocks "roombooking/infras/otel/mocks"
	outboxMocks "roombooking/internal/domains/outbox/service/mocks"
	reservationMocks "roombooking/internal/domains/reservation/service/mocks"
	"roombooking/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newWorker(t *testing.T) (*Worker, *outboxMocks.MockRelay, *reservationMocks.MockReservation) {
	t.Helper()

	ctrl := gomock.NewController(t)
	relay := outboxMocks.NewMockRelay(ctrl)
	reservations := reservationMocks.NewMockReservation(ctrl)

	cfg := &config.Config{}
	cfg.Outbox.Schedule = "@every 5s"
	cfg.Booking.ExpirySchedule = "@every 10m"
	cfg.Metrics.Port = "0"

	return New(cfg, relay, reservations, otelMocks.NewOtel()), relay, reservations
}

func TestWorker_Setup(t *testing.T) {
	w, _, _ := newWorker(t)

	require.NoError(t, w.setup())
	assert.Len(t, w.cron.Entries(), 2)
	assert.Equal(t, WorkerStateReady, w.State())

	t.Run("invalid schedule", func(t *testing.T) {
		w, _, _ := newWorker(t)
		w.Config.Booking.ExpirySchedule = "every now and then"

		err := w.setup()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expiry schedule")
	})
}

func TestWorker_Jobs(t *testing.T) {
	w, relay, reservations := newWorker(t)

	relay.EXPECT().RunOnce(gomock.Any()).Return(3, nil)
	relay.EXPECT().RunOnce(gomock.Any()).Return(0, errors.New("broker down"))
	reservations.EXPECT().ExpirePending(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (int, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)

			return 2, nil
		})

	w.relayOutbox()
	w.relayOutbox()
	w.expirePending()

	t.Run("retries a lost race once", func(t *testing.T) {
		w, _, reservations := newWorker(t)

		gomock.InOrder(
			reservations.EXPECT().ExpirePending(gomock.Any()).Return(0, failure.PersistenceConflict("room changed")),
			reservations.EXPECT().ExpirePending(gomock.Any()).Return(1, nil),
		)

		w.expirePending()
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		w, _, reservations := newWorker(t)

		reservations.EXPECT().ExpirePending(gomock.Any()).Return(0, errors.New("connection reset")).Times(1)

		w.expirePending()
	})
}

func TestWorker_Health(t *testing.T) {
	w, _, _ := newWorker(t)

	rec := httptest.NewRecorder()
	w.health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, w.setup())

	rec = httptest.NewRecorder()
	w.health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorker_Routes(t *testing.T) {
	w, _, _ := newWorker(t)
	require.NoError(t, w.setup())

	srv := httptest.NewServer(w.routes())
	t.Cleanup(srv.Close)

	tests := []struct {
		name     string
		method   string
		path     string
		expected int
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", expected: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expected: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/nope", expected: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPost, path: "/healthz", expected: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(context.Background(), tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)

			res, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.expected, res.StatusCode)
		})
	}
}

func TestWorker_HealthDuringShutdown(t *testing.T) {
	w, _, _ := newWorker(t)
	require.NoError(t, w.setup())

	srv := httptest.NewServer(w.routes())
	t.Cleanup(srv.Close)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for range 50 {
			res, err := srv.Client().Get(srv.URL + "/healthz")
			if err == nil {
				res.Body.Close()
			}
		}
	}()

	w.setState(WorkerStateInGracePeriod)
	<-done

	rec := httptest.NewRecorder()
	w.health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
