//go:build wireinject
// +build wireinject

package di

import (
	"roombooking/config"
	"roombooking/infras/kafka"
	"roombooking/infras/metrics"
	"roombooking/infras/otel"
	"roombooking/infras/postgres"
	"roombooking/infras/redis"
	"roombooking/infras/s3"
	"roombooking/permissions"
	"roombooking/shared/cache"
	"roombooking/transport/worker"

	blockingRepository "roombooking/internal/domains/blocking/repository"
	blockingService "roombooking/internal/domains/blocking/service"
	exportService "roombooking/internal/domains/export/service"
	outboxRepository "roombooking/internal/domains/outbox/repository"
	outboxService "roombooking/internal/domains/outbox/service"
	reservationRepository "roombooking/internal/domains/reservation/repository"
	reservationService "roombooking/internal/domains/reservation/service"
	roomRepository "roombooking/internal/domains/room/repository"
	roomService "roombooking/internal/domains/room/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	metrics.NewDefault,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	permissions.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var blockingDomain = wire.NewSet(
	blockingRepository.New,
	blockingService.New,
)

var outboxDomain = wire.NewSet(
	outboxRepository.New,
	outboxService.NewRelay,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var exportDomain = wire.NewSet(
	exportService.New,
)

var domains = wire.NewSet(
	roomDomain,
	blockingDomain,
	outboxDomain,
	reservationDomain,
	exportDomain,
)

// InitializeWorker and InitializeEngine both register metrics on the default
// registry; build only one of them per process.
func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		worker.New,
	)

	return &worker.Worker{}
}

func InitializeEngine() *Engine {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		wire.Struct(new(Engine), "*"),
	)

	return &Engine{}
}
