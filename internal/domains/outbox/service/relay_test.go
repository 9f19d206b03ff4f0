package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"roombooking/config"
	"roombooking/infras/kafka"
	kafkaMocks "roombooking/infras/kafka/mocks"
	"roombooking/infras/metrics"
	"roombooking/infras/otel/mocks"
	outboxMocks "roombooking/internal/domains/outbox/mocks"
	"roombooking/internal/domains/outbox/model"
	"roombooking/internal/domains/outbox/repository"
	"roombooking/internal/domains/outbox/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRelay(t *testing.T, batch int) (service.Relay, *outboxMocks.MockOutbox, *kafkaMocks.MockClient, *metrics.Metrics) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := outboxMocks.NewMockOutbox(ctrl)
	client := kafkaMocks.NewMockClient(ctrl)
	m := metrics.New("test", prometheus.NewRegistry())

	cfg := &config.Config{}
	cfg.Kafka.Topic = "reservations"
	cfg.Outbox.BatchSize = batch

	return service.NewRelay(repo, client, m, cfg, mocks.NewOtel()), repo, client, m
}

func events(t *testing.T, ids ...int64) []model.Event {
	t.Helper()

	out := make([]model.Event, len(ids))

	for i, id := range ids {
		e, err := model.NewEvent(model.AggregateReservation, "res-1", model.EventReservationCreated, map[string]string{"state": "accepted"}, time.Unix(0, 0).UTC())
		require.NoError(t, err)

		e.ID = id
		out[i] = e
	}

	return out
}

func TestRelay_RunOnce(t *testing.T) {
	relay, repo, client, m := newRelay(t, 2)

	batches := [][]model.Event{events(t, 1, 2), events(t, 3)}
	call := 0

	repo.EXPECT().
		ProcessBatch(gomock.Any(), 2, gomock.Any()).
		Times(2).
		DoAndReturn(func(ctx context.Context, _ int, publish repository.PublishFunc) (int, error) {
			batch := batches[call]
			call++

			if err := publish(ctx, batch); err != nil {
				return 0, err
			}

			return len(batch), nil
		})

	client.EXPECT().
		SendMessages(gomock.Any(), "reservations", gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
			for _, msg := range msgs {
				assert.Equal(t, "res-1", msg.Key)
				assert.Equal(t, model.EventReservationCreated, msg.Headers[model.HeaderEventType])

				raw, err := json.Marshal(msg.Value)
				require.NoError(t, err)
				assert.Contains(t, string(raw), `"payload":{"state":"accepted"}`)
			}

			return nil
		})

	repo.EXPECT().Backlog(gomock.Any()).Return(0, nil)

	total, err := relay.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.InDelta(t, 3, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("ok")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.OutboxBacklog), 0)
}

func TestRelay_RunOnceKafkaFailure(t *testing.T) {
	relay, repo, client, m := newRelay(t, 10)

	repo.EXPECT().
		ProcessBatch(gomock.Any(), 10, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int, publish repository.PublishFunc) (int, error) {
			return 0, publish(ctx, events(t, 7, 8))
		})

	client.EXPECT().
		SendMessages(gomock.Any(), "reservations", gomock.Any()).
		Return(errors.New("broker unavailable"))

	repo.EXPECT().Backlog(gomock.Any()).Return(2, nil)

	total, err := relay.RunOnce(context.Background())

	require.Error(t, err)
	assert.Zero(t, total)
	assert.InDelta(t, 2, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("failed")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.OutboxBacklog), 0)
}

func TestRelay_RunOnceEmpty(t *testing.T) {
	relay, repo, _, _ := newRelay(t, 10)

	repo.EXPECT().ProcessBatch(gomock.Any(), 10, gomock.Any()).Return(0, nil)
	repo.EXPECT().Backlog(gomock.Any()).Return(0, errors.New("read replica down"))

	total, err := relay.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, total)
}
