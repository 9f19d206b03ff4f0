package service

//go:generate go run go.uber.org/mock/mockgen -source=./relay.go -destination=./mocks/relay_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"

	"roombooking/config"
	"roombooking/infras/kafka"
	"roombooking/infras/metrics"
	"roombooking/infras/otel"
	"roombooking/internal/domains/outbox/model"
	"roombooking/internal/domains/outbox/repository"
	"roombooking/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultBatchSize = 100
	maxBatchesPerRun = 10

	publishStatusOK     = "ok"
	publishStatusFailed = "failed"
)

// Relay forwards committed outbox events to Kafka, oldest first.
type Relay interface {
	RunOnce(ctx context.Context) (int, error)
}

type relayImpl struct {
	repo    repository.Outbox
	kafka   kafka.Client
	metrics *metrics.Metrics
	limiter *rate.Limiter
	topic   string
	batch   int
	otel    otel.Otel
}

func NewRelay(repo repository.Outbox, client kafka.Client, m *metrics.Metrics, cfg *config.Config, otel otel.Otel) Relay {
	batch := cfg.Outbox.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	limit := rate.Inf
	if cfg.Outbox.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Outbox.RatePerSecond)
	}

	return &relayImpl{
		repo:    repo,
		kafka:   client,
		metrics: m,
		limiter: rate.NewLimiter(limit, batch),
		topic:   cfg.Kafka.Topic,
		batch:   batch,
		otel:    otel,
	}
}

// RunOnce drains batches until the outbox is empty, a batch fails or the
// per-run budget is spent. It returns how many events were published.
func (r *relayImpl) RunOnce(ctx context.Context) (total int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".outbox.RunOnce")
	defer scope.End()
	defer scope.TraceIfError(&err)

	defer r.reportBacklog(ctx)

	for range maxBatchesPerRun {
		n, err := r.repo.ProcessBatch(ctx, r.batch, r.publish)
		if err != nil {
			log.Error().Err(err).Int("published", total).Msg("outbox relay stopped")

			return total, fmt.Errorf("outbox relay: %w", err)
		}

		total += n

		if n < r.batch {
			break
		}
	}

	if total > 0 {
		log.Info().Int("published", total).Msg("outbox events relayed")
	}

	return total, nil
}

func (r *relayImpl) publish(ctx context.Context, events []model.Event) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".outbox.publish")
	defer scope.End()

	if err := r.limiter.WaitN(ctx, min(len(events), r.batch)); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	messages := make([]kafka.Message, len(events))
	for i, e := range events {
		messages[i] = kafka.Message{
			Key:   e.AggregateID,
			Value: e.Envelope(),
			Headers: map[string]string{
				model.HeaderEventType:     e.EventType,
				model.HeaderAggregateType: e.AggregateType,
				"event_id":                strconv.FormatInt(e.ID, 10),
			},
		}
	}

	if err := r.kafka.SendMessages(ctx, r.topic, messages...); err != nil {
		scope.TraceError(err)
		r.metrics.IncPublished(publishStatusFailed, len(events))

		return fmt.Errorf("send to %s: %w", r.topic, err)
	}

	r.metrics.IncPublished(publishStatusOK, len(events))

	return nil
}

func (r *relayImpl) reportBacklog(ctx context.Context) {
	backlog, err := r.repo.Backlog(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read outbox backlog")

		return
	}

	r.metrics.SetBacklog(backlog)
}
