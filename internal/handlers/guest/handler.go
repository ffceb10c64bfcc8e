package guest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/guest/model/dto"
	"innkeep/internal/domains/guest/service"
	"innkeep/shared/constant"
	"innkeep/shared/validator"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Guest
	actor   middleware.Actor
	otel    otel.Otel
}

func New(service service.Guest, actor middleware.Actor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		actor:   actor,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Use(handler.actor.RequireSignIn)
		routerGroup.Get("/me", handler.GetProfile)
		routerGroup.Put("/me", handler.UpdateProfile)
	})
}

// GetProfile retrieves the signed-in guest's profile.
// @Summary Get my profile
// @Description Retrieve the guest profile row for the signed-in email.
// @Tags Guest
// @Produce json
// @Success 200 {object} response.Data[dto.GuestResponse] "Profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/guests/me [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	email, _ := ctx.Value(constant.ContextKeyActorEmail).(string)

	profile, err := handler.service.Profile(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, profile)
}

// UpdateProfile updates the signed-in guest's profile.
// @Summary Update my profile
// @Description Update the guest profile row. The email is fixed to the signed-in account.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} response.Data[dto.GuestResponse] "Updated profile"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/guests/me [put]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	email, _ := ctx.Value(constant.ContextKeyActorEmail).(string)

	profile, err := handler.service.UpdateProfile(ctx, email, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest profile updated")

	response.WithJSON(w, http.StatusOK, profile)
}
