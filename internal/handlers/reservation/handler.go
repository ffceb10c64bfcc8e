package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/reservation/model/dto"
	"innkeep/internal/domains/reservation/service"
	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/shared/validator"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/response"
)

type Handler struct {
	service service.Reservation
	actor   middleware.Actor
	otel    otel.Otel
}

func New(service service.Reservation, actor middleware.Actor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		actor:   actor,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/availability", handler.CheckAvailability)
		routerGroup.Get("/unavailable-dates", handler.GetUnavailableDates)

		routerGroup.With(handler.actor.RequireSignIn).Post("/", handler.CreateReservation)
		routerGroup.With(handler.actor.RequireSignIn).Get("/mine", handler.GetMyBookings)

		routerGroup.Group(func(staffGroup chi.Router) {
			staffGroup.Use(handler.actor.RequireStaff)
			staffGroup.Get("/", handler.GetReservations)
			staffGroup.Post("/walk-in", handler.CreateWalkIn)
			staffGroup.Get("/{id}", handler.GetReservationByID)
			staffGroup.Patch("/{id}/status", handler.UpdateStatus)
		})
	})
}

// CheckAvailability reports whether a room is free for a date range.
// @Summary Check room availability
// @Description Report whether the room has no conflicting reservation for the half-open date range.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.AvailabilityRequest true "Availability Request"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/availability [post]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

// GetUnavailableDates lists blocked dates for a room.
// @Summary Get unavailable dates
// @Description List each date covered by a reservation on the room, marked confirmed or pending.
// @Tags Reservation
// @Produce json
// @Param roomId query integer true "Room ID"
// @Success 200 {object} response.Data[[]dto.UnavailableDateResponse] "Unavailable dates"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/unavailable-dates [get]
func (handler *Handler) GetUnavailableDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnavailableDates")
	defer scope.End()

	roomID, err := shared.ConvertStringToInt64(r.URL.Query().Get("roomId"))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	dates, err := handler.service.UnavailableDates(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list unavailable dates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dates)
}

// CreateReservation books a room for the signed-in guest.
// @Summary Create a reservation
// @Description Book a room for the signed-in guest. The reservation starts Pending.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	email, _ := ctx.Value(constant.ContextKeyActorEmail).(string)

	reservation, err := handler.service.Create(ctx, email, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created for " + email)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetMyBookings lists the signed-in guest's reservations.
// @Summary Get my bookings
// @Description List the reservations linked to the signed-in guest, newest first.
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReservationResponse] "Bookings"
// @Failure 401 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	email, _ := ctx.Value(constant.ContextKeyActorEmail).(string)

	bookings, err := handler.service.MyBookings(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetReservations lists every reservation.
// @Summary Get all reservations
// @Description List all reservations with room, guest, and payment relations, newest first.
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReservationResponse] "Reservations"
// @Failure 403 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	reservations, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// CreateWalkIn books a room on behalf of a walk-in guest.
// @Summary Create a walk-in reservation
// @Description Book a room at the desk. The guest row is created or reused by email.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.WalkInReservationRequest true "Walk-In Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/walk-in [post]
// @Security BearerAuth
func (handler *Handler) CreateWalkIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateWalkIn")
	defer scope.End()

	req := dto.WalkInReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	staffID, _ := ctx.Value(constant.ContextKeyStaffID).(int64)

	reservation, err := handler.service.CreateWalkIn(ctx, staffID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create walk-in reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Walk-in reservation created")

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation with its relations.
// @Tags Reservation
// @Produce json
// @Param id path integer true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateStatus moves a reservation through its lifecycle.
// @Summary Update reservation status
// @Description Apply a lifecycle transition. Illegal transitions are rejected with a conflict.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path integer true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Updated reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	var staffID *int64
	if actor, ok := ctx.Value(constant.ContextKeyStaffID).(int64); ok {
		staffID = &actor
	}

	reservation, err := handler.service.UpdateStatus(ctx, id, staffID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation moved to " + req.Status)

	response.WithJSON(w, http.StatusOK, reservation)
}
