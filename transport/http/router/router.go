package router

import (
	"github.com/go-chi/chi/v5"

	"innkeep/internal/handlers/auth"
	"innkeep/internal/handlers/guest"
	"innkeep/internal/handlers/metrics"
	"innkeep/internal/handlers/reservation"
	"innkeep/internal/handlers/room"
	"innkeep/transport/http/middleware"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	Reservation reservation.Handler
	Guest       guest.Handler
	Metrics     metrics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Actor          middleware.Actor
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.App.CORS)
	router.Use(r.App.Tracing)
	router.Use(r.Actor.Attach)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Metrics.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, actor middleware.Actor) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Actor:          actor,
	}
}
