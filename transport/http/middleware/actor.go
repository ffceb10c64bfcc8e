package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"innkeep/infras/otel"
	"innkeep/infras/session"
	staffModel "innkeep/internal/domains/staff/model"
	staffRepo "innkeep/internal/domains/staff/repository"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/transport/http/response"
)

// Actor resolves the signed-in actor for each request. The session store
// holds at most one session; staff resolution is cached per email and
// invalidated whenever the session changes.
type Actor interface {
	Attach(next http.Handler) http.Handler
	RequireSignIn(next http.Handler) http.Handler
	RequireStaff(next http.Handler) http.Handler
}

type actorImpl struct {
	sessions *session.Store
	staff    staffRepo.Staff
	otel     otel.Otel

	mu           sync.Mutex
	cachedEmail  string
	cachedMember *staffModel.Staff
}

func NewActorMiddleware(sessions *session.Store, staff staffRepo.Staff, otel otel.Otel) Actor {
	m := &actorImpl{
		sessions: sessions,
		staff:    staff,
		otel:     otel,
	}

	sessions.OnChange(func(*session.Session) {
		m.mu.Lock()
		m.cachedEmail = ""
		m.cachedMember = nil
		m.mu.Unlock()
	})

	return m
}

// Attach adds the actor's email, type, and staff identity (when the
// email has a staff row) to the request context. Requests without a
// session pass through untouched; guards downstream decide access.
func (m *actorImpl) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		current := m.sessions.Current()
		if current == nil {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "actor.middleware")

		ctx = context.WithValue(ctx, constant.ContextKeyActorEmail, current.Email)

		member := m.resolveStaff(ctx, current.Email)
		if member != nil {
			ctx = context.WithValue(ctx, constant.ContextKeyActorType, constant.ActorTypeStaff)
			ctx = context.WithValue(ctx, constant.ContextKeyStaffID, member.ID)
			ctx = context.WithValue(ctx, constant.ContextKeyStaffRole, member.Role)
		} else {
			ctx = context.WithValue(ctx, constant.ContextKeyActorType, constant.ActorTypeGuest)
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireSignIn rejects requests that carry no actor email.
func (m *actorImpl) RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		email, _ := request.Context().Value(constant.ContextKeyActorEmail).(string)
		if email == "" {
			response.WithError(writer, failure.ErrNotSignedIn)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// RequireStaff rejects requests whose actor is not a staff member.
// Requires prior Attach.
func (m *actorImpl) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		email, _ := request.Context().Value(constant.ContextKeyActorEmail).(string)
		if email == "" {
			response.WithError(writer, failure.ErrNotSignedIn)

			return
		}

		if _, ok := request.Context().Value(constant.ContextKeyStaffID).(int64); !ok {
			response.WithError(writer, failure.ErrNoStaffAccount)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (m *actorImpl) resolveStaff(ctx context.Context, email string) *staffModel.Staff {
	m.mu.Lock()
	if m.cachedEmail == email {
		member := m.cachedMember
		m.mu.Unlock()

		return member
	}
	m.mu.Unlock()

	var member *staffModel.Staff

	resolved, err := m.staff.ResolveByEmail(ctx, email)
	switch {
	case err == nil:
		member = &resolved
	case failure.GetCode(err) == http.StatusNotFound:
		// Guest account; nothing to attach.
	default:
		log.Warn().Err(err).Str("email", email).Msg("staff resolution failed, treating actor as guest")

		return nil
	}

	m.mu.Lock()
	m.cachedEmail = email
	m.cachedMember = member
	m.mu.Unlock()

	return member
}
