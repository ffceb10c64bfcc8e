//go:build wireinject
// +build wireinject

package di

import (
	"innkeep/config"
	"innkeep/infras/backend"
	"innkeep/infras/identity"
	"innkeep/infras/otel"
	"innkeep/infras/realtime"
	"innkeep/infras/redis"
	"innkeep/infras/session"
	"innkeep/shared/cache"
	"innkeep/transport/http"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/router"

	"github.com/google/wire"

	authService "innkeep/internal/domains/auth/service"
	guestRepository "innkeep/internal/domains/guest/repository"
	guestService "innkeep/internal/domains/guest/service"
	metricsService "innkeep/internal/domains/metrics/service"
	reservationRepository "innkeep/internal/domains/reservation/repository"
	reservationService "innkeep/internal/domains/reservation/service"
	roomRepository "innkeep/internal/domains/room/repository"
	roomService "innkeep/internal/domains/room/service"
	staffRepository "innkeep/internal/domains/staff/repository"

	authHandler "innkeep/internal/handlers/auth"
	guestHandler "innkeep/internal/handlers/guest"
	metricsHandler "innkeep/internal/handlers/metrics"
	reservationHandler "innkeep/internal/handlers/reservation"
	roomHandler "innkeep/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	session.NewStore,
	backend.New,
	identity.New,
	realtime.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewActorMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var metricsDomain = wire.NewSet(
	metricsService.New,
)

var domains = wire.NewSet(
	staffDomain,
	guestDomain,
	roomDomain,
	reservationDomain,
	authDomain,
	metricsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	reservationHandler.New,
	guestHandler.New,
	metricsHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
