package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"innkeep/infras/identity"
	"innkeep/infras/otel"
	"innkeep/infras/session"
	"innkeep/internal/domains/auth/model/dto"
	guestRepo "innkeep/internal/domains/guest/repository"
	staffRepo "innkeep/internal/domains/staff/repository"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

// Auth runs the sign-in flows against the hosted identity provider and
// owns the process-wide session transition.
type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (dto.SessionResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) dto.SessionResponse
}

type serviceImpl struct {
	identity  identity.Identity
	staffRepo staffRepo.Staff
	guestRepo guestRepo.Guest
	sessions  *session.Store
	otel      otel.Otel
}

func New(
	identity identity.Identity,
	staffRepo staffRepo.Staff,
	guestRepo guestRepo.Guest,
	sessions *session.Store,
	otel otel.Otel,
) Auth {
	return &serviceImpl{
		identity:  identity,
		staffRepo: staffRepo,
		guestRepo: guestRepo,
		sessions:  sessions,
		otel:      otel,
	}
}

// Login exchanges credentials and resolves the actor type. A staff
// login whose email has no staff record is revoked immediately rather
// than left signed in as an under-privileged session.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	if req.AsStaff {
		member, staffErr := s.staffRepo.ResolveByEmail(ctx, sess.Email)
		if staffErr != nil {
			if revokeErr := s.identity.SignOut(ctx, sess.AccessToken); revokeErr != nil {
				log.Warn().Err(revokeErr).Msg("failed to revoke non-staff session")
			}

			if failure.GetCode(staffErr) == http.StatusNotFound {
				return dto.SessionResponse{}, failure.ErrNoStaffAccount
			}

			return dto.SessionResponse{}, staffErr
		}

		s.sessions.Set(sess)

		return dto.SessionResponse{
			Email:     sess.Email,
			ActorType: constant.ActorTypeStaff,
			StaffRole: member.Role,
			SignedIn:  true,
		}, nil
	}

	s.sessions.Set(sess)

	return dto.SessionResponse{
		Email:     sess.Email,
		ActorType: constant.ActorTypeGuest,
		SignedIn:  true,
	}, nil
}

// Signup registers the account with the identity provider and writes
// the guest profile row best-effort; a failed profile write leaves the
// account usable and is reported, not rolled back.
func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Signup")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	s.sessions.Set(sess)

	if _, profileErr := s.guestRepo.Upsert(ctx, req.ToWalkInGuest().ToModel()); profileErr != nil {
		log.Warn().Err(profileErr).Str("email", req.Email).Msg("guest profile row failed, account kept")
	}

	return dto.SessionResponse{
		Email:     sess.Email,
		ActorType: constant.ActorTypeGuest,
		SignedIn:  true,
	}, nil
}

// Logout revokes the session remotely and always clears the local one.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()

	current := s.sessions.Current()
	if current != nil {
		if err := s.identity.SignOut(ctx, current.AccessToken); err != nil {
			log.Warn().Err(err).Msg("remote sign-out failed, clearing local session anyway")
		}
	}

	s.sessions.Clear()

	return nil
}

func (s *serviceImpl) Current(_ context.Context) dto.SessionResponse {
	current := s.sessions.Current()
	if current == nil {
		return dto.SessionResponse{SignedIn: false}
	}

	return dto.SessionResponse{
		Email:    current.Email,
		SignedIn: true,
	}
}
