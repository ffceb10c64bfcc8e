package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/internal/domains/guest/model"
	"innkeep/internal/domains/guest/model/dto"
	"innkeep/internal/domains/guest/repository"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
)

type Guest interface {
	Profile(ctx context.Context, email string) (dto.GuestResponse, error)
	UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (dto.GuestResponse, error)
}

type serviceImpl struct {
	repo repository.Guest
	otel otel.Otel
}

func New(repo repository.Guest, otel otel.Otel) Guest {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Profile(ctx context.Context, email string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if email == constant.Empty {
		return dto.GuestResponse{}, failure.ErrNotSignedIn
	}

	guest, err := s.repo.ResolveByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve guest profile")

		return dto.GuestResponse{}, err
	}

	return dto.NewGuestResponse(guest), nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if email == constant.Empty {
		return dto.GuestResponse{}, failure.ErrNotSignedIn
	}

	guest, err := s.repo.ResolveByEmail(ctx, email)
	if err != nil {
		return dto.GuestResponse{}, err
	}

	err = s.repo.Update(ctx, req.ToPatch(), gDto.FilterBy(model.FieldID, guest.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to update guest profile")

		return dto.GuestResponse{}, fmt.Errorf("failed to update guest profile: %w", err)
	}

	updated, err := s.repo.ResolveByID(ctx, guest.ID)
	if err != nil {
		return dto.GuestResponse{}, err
	}

	return dto.NewGuestResponse(updated), nil
}
