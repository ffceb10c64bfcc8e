package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"innkeep/internal/domains/reservation/model"
	"innkeep/internal/domains/reservation/model/dto"
	"innkeep/internal/domains/reservation/repository"
	"innkeep/internal/domains/reservation/state"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/timezone"
)

// Create is the guest self-booking path. The reservation row is the
// source of truth; the payment row is best-effort bookkeeping whose
// failure never rolls the reservation back.
func (s *serviceImpl) Create(ctx context.Context, guestEmail string, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if guestEmail == constant.Empty {
		return dto.ReservationResponse{}, failure.ErrNotSignedIn
	}

	guest, err := s.guestRepo.ResolveByEmail(ctx, guestEmail)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking guest")

		return dto.ReservationResponse{}, err
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return dto.ReservationResponse{}, failure.BadRequestFromString("invalid reservation dates")
	}

	return s.create(ctx, guest.ID, nil, req.RoomID, req.PaymentMethod, checkIn, checkOut, "")
}

// CreateWalkIn is the staff path: the guest needs no account, the row
// is reused by email when one exists, the acting staff id is attached
// at creation and a walk-in audit entry is written immediately.
func (s *serviceImpl) CreateWalkIn(ctx context.Context, staffID int64, req dto.WalkInReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateWalkIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.guestRepo.Upsert(ctx, req.Guest.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert walk-in guest")

		return dto.ReservationResponse{}, fmt.Errorf("failed to upsert walk-in guest: %w", err)
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return dto.ReservationResponse{}, failure.BadRequestFromString("invalid reservation dates")
	}

	return s.create(ctx, guest.ID, &staffID, req.RoomID, req.PaymentMethod, checkIn, checkOut, model.ActionWalkIn)
}

func (s *serviceImpl) create(
	ctx context.Context,
	guestID int64,
	staffID *int64,
	roomID int64,
	paymentMethod string,
	checkIn, checkOut time.Time,
	creationAction string,
) (dto.ReservationResponse, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return dto.ReservationResponse{}, err
	}

	room, ok := s.store.room(roomID)
	if !ok {
		return dto.ReservationResponse{}, failure.NotFound("room")
	}

	available, err := s.available(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return dto.ReservationResponse{}, err
	}

	if !available {
		return dto.ReservationResponse{}, failure.Conflict("room is not available for the selected dates")
	}

	total := state.ComputeTotal(room.Rate(), checkIn, checkOut)

	rec, err := s.repo.Insert(ctx, repository.NewReservation{
		RoomID:      roomID,
		StaffID:     staffID,
		CheckIn:     model.FormatDate(checkIn),
		CheckOut:    model.FormatDate(checkOut),
		Status:      model.StatusPending,
		TotalAmount: total,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to insert reservation")

		return dto.ReservationResponse{}, fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err := s.repo.InsertGuestLink(ctx, repository.NewGuestLink{
		ReservationID: rec.ID,
		GuestID:       guestID,
		GuestType:     model.GuestTypePrimary,
	}); err != nil {
		log.Error().Err(err).Int64("reservation_id", rec.ID).Msg("failed to link primary guest")

		return dto.ReservationResponse{}, fmt.Errorf("failed to link primary guest: %w", err)
	}

	// best-effort: a failed payment row is reported, never rolled back
	if err := s.repo.InsertPayment(ctx, repository.NewPayment{
		ReservationID: rec.ID,
		Amount:        total,
		Method:        paymentMethod,
		Status:        model.PaymentStatusPending,
	}); err != nil {
		log.Warn().Err(err).Int64("reservation_id", rec.ID).Msg("payment record failed, reservation kept")
	}

	if creationAction != constant.Empty {
		if err := s.repo.InsertLog(ctx, model.LogRecord{
			ReservationID:  rec.ID,
			StaffID:        staffID,
			Action:         creationAction,
			PreviousStatus: constant.Empty,
			NewStatus:      model.StatusPending,
		}); err != nil {
			log.Warn().Err(err).Int64("reservation_id", rec.ID).Msg("failed to write creation audit log")
		}
	}

	// full re-fetch: server-assigned ids and defaults must not be
	// guessed locally
	if err := s.Refresh(ctx); err != nil {
		return dto.ReservationResponse{}, err
	}

	created, ok := s.store.reservation(rec.ID)
	if !ok {
		return dto.ReservationResponse{}, failure.NotFound(model.EntityName)
	}

	return s.response(created), nil
}

// UpdateStatus drives one state-machine step with its side effects:
// the audit log entry, the derived room status, and the auto-promotion
// of an approval landing on or after the check-in date.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, staffID *int64, req dto.UpdateStatusRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureLoaded(ctx); err != nil {
		return dto.ReservationResponse{}, err
	}

	updated, err := s.transition(ctx, id, staffID, req.Status, "")
	if err != nil {
		return dto.ReservationResponse{}, err
	}

	if req.Status == model.StatusBooked && state.ShouldAutoCheckIn(updated.CheckIn, timezone.Today()) {
		updated, err = s.transition(ctx, id, staffID, model.StatusCheckedIn, "")
		if err != nil {
			return dto.ReservationResponse{}, err
		}
	}

	return s.response(updated), nil
}

// transition performs one legal step: optimistic local update first,
// then the authoritative remote write. A failed write restores local
// state with a full refresh.
func (s *serviceImpl) transition(ctx context.Context, id int64, staffID *int64, to, action string) (model.Reservation, error) {
	current, ok := s.store.reservation(id)
	if !ok {
		return model.Reservation{}, failure.NotFound(model.EntityName)
	}

	from := current.Status
	if !state.CanTransition(from, to) {
		return model.Reservation{}, failure.Conflict(fmt.Sprintf("cannot move reservation from %s to %s", from, to))
	}

	updated, ok := s.store.setStatus(id, to, staffID, current.Version)
	if !ok {
		return model.Reservation{}, failure.Conflict("reservation changed concurrently, retry")
	}

	patch := map[string]any{model.FieldStatus: to}
	if staffID != nil {
		patch[model.FieldStaffID] = *staffID
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		log.Error().Err(err).Int64("reservation_id", id).Msg("status write failed, restoring local state")

		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			log.Error().Err(refreshErr).Msg("failed to restore state after write failure")
		}

		return model.Reservation{}, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if action == constant.Empty {
		action = state.ActionFor(from, to)
	}

	if err := s.repo.InsertLog(ctx, model.LogRecord{
		ReservationID:  id,
		StaffID:        staffID,
		Action:         action,
		PreviousStatus: from,
		NewStatus:      to,
	}); err != nil {
		log.Warn().Err(err).Int64("reservation_id", id).Msg("failed to write audit log")
	}

	if roomStatus, derive := state.RoomStatusAfter(to); derive {
		if err := s.roomRepo.UpdateStatus(ctx, updated.RoomID, roomStatus); err != nil {
			log.Error().Err(err).Int64("room_id", updated.RoomID).Msg("failed to update room status")
		} else {
			s.store.patchRoomStatus(updated.RoomID, roomStatus)
		}
	}

	return updated, nil
}
