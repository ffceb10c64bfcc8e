package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/metrics/service"
	"innkeep/shared/constant"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Metrics
	actor   middleware.Actor
	otel    otel.Otel
}

func New(service service.Metrics, actor middleware.Actor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		actor:   actor,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/metrics", func(routerGroup chi.Router) {
		routerGroup.Use(handler.actor.RequireStaff)
		routerGroup.Get("/dashboard", handler.GetDashboard)
	})
}

// GetDashboard recomputes the dashboard aggregates.
// @Summary Get dashboard metrics
// @Description Recompute revenue, active reservation count, available rooms, average stay, and the payment method breakdown.
// @Tags Metrics
// @Produce json
// @Success 200 {object} response.Data[service.Dashboard] "Dashboard"
// @Failure 403 {object} response.Error
// @Router /v1/metrics/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	dashboard, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute dashboard metrics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dashboard)
}
