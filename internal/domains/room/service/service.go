package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	resService "innkeep/internal/domains/reservation/service"
	"innkeep/internal/domains/room/model"
	"innkeep/internal/domains/room/model/dto"
	"innkeep/internal/domains/room/repository"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

// Room serves room reads from the lifecycle manager's collections and
// handles staff-initiated status overrides.
type Room interface {
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Types(ctx context.Context) ([]dto.RoomTypeResponse, error)
	SetStatus(ctx context.Context, id int64, req dto.UpdateRoomStatusRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo      repository.Room
	lifecycle resService.Reservation
	otel      otel.Otel
}

func New(repo repository.Room, lifecycle resService.Reservation, otel otel.Otel) Room {
	return &serviceImpl{
		repo:      repo,
		lifecycle: lifecycle,
		otel:      otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.lifecycle.Rooms(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewRoomsResponse(rooms), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.lifecycle.Room(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	return dto.NewRoomResponse(room), nil
}

func (s *serviceImpl) Types(ctx context.Context) (res []dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Types")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomTypes, err := s.lifecycle.RoomTypes(ctx)
	if err != nil {
		return nil, err
	}

	res = make([]dto.RoomTypeResponse, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		res = append(res, dto.NewRoomTypeResponse(roomType))
	}

	return res, nil
}

// SetStatus is the manual override path. It refuses to touch a room
// while a non-terminal reservation covers today; the lifecycle manager
// owns that room's status until the stay resolves.
func (s *serviceImpl) SetStatus(ctx context.Context, id int64, req dto.UpdateRoomStatusRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !model.ValidStatus(req.Status) {
		return dto.RoomResponse{}, failure.BadRequestFromString("unknown room status")
	}

	room, err := s.lifecycle.Room(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	blocking, err := s.lifecycle.HasBlockingStay(ctx, id)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	if blocking {
		return dto.RoomResponse{}, failure.Conflict("room has an active reservation covering today")
	}

	if err = s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to override room status")

		return dto.RoomResponse{}, fmt.Errorf("failed to override room status: %w", err)
	}

	s.lifecycle.ApplyRoomStatus(id, req.Status)
	room.Status = req.Status

	return dto.NewRoomResponse(room), nil
}
