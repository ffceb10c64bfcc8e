package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	identityMocks "innkeep/infras/identity/mocks"
	"innkeep/infras/otel/mocks"
	"innkeep/infras/session"
	"innkeep/internal/domains/auth/model/dto"
	"innkeep/internal/domains/auth/service"
	guestMocks "innkeep/internal/domains/guest/mocks"
	guestModel "innkeep/internal/domains/guest/model"
	staffMocks "innkeep/internal/domains/staff/mocks"
	staffModel "innkeep/internal/domains/staff/model"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

func newSessionStore() *session.Store {
	cfg := &config.Config{}
	cfg.Backend.APIKey = "anon-key"

	return session.NewStore(cfg)
}

func TestAuthService_Login_Guest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	mockStaff := staffMocks.NewMockStaff(ctrl)
	mockGuest := guestMocks.NewMockGuest(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, mockStaff, mockGuest, sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignIn(gomock.Any(), "maria@example.com", "password").
		Return(&session.Session{AccessToken: "token-1", Email: "maria@example.com"}, nil)

	res, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	assert.True(t, res.SignedIn)
	assert.Equal(t, constant.ActorTypeGuest, res.ActorType)
	assert.True(t, sessions.SignedIn())
	assert.Equal(t, "token-1", sessions.Token())
}

func TestAuthService_Login_Staff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	mockStaff := staffMocks.NewMockStaff(ctrl)
	mockGuest := guestMocks.NewMockGuest(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, mockStaff, mockGuest, sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignIn(gomock.Any(), "ana@example.com", "password").
		Return(&session.Session{AccessToken: "token-2", Email: "ana@example.com"}, nil)

	mockStaff.EXPECT().
		ResolveByEmail(gomock.Any(), "ana@example.com").
		Return(staffModel.Staff{ID: 5, Email: "ana@example.com", Role: constant.RoleFrontDesk}, nil)

	res, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "password",
		AsStaff:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ActorTypeStaff, res.ActorType)
	assert.Equal(t, constant.RoleFrontDesk, res.StaffRole)
	assert.True(t, sessions.SignedIn())
}

func TestAuthService_Login_StaffWithoutRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	mockStaff := staffMocks.NewMockStaff(ctrl)
	mockGuest := guestMocks.NewMockGuest(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, mockStaff, mockGuest, sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignIn(gomock.Any(), "maria@example.com", "password").
		Return(&session.Session{AccessToken: "token-3", Email: "maria@example.com"}, nil)

	mockStaff.EXPECT().
		ResolveByEmail(gomock.Any(), "maria@example.com").
		Return(staffModel.Staff{}, failure.NotFound("staff"))

	// the freshly issued token is revoked, not kept
	mockIdentity.EXPECT().
		SignOut(gomock.Any(), "token-3").
		Return(nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "password",
		AsStaff:  true,
	})
	assert.ErrorIs(t, err, failure.ErrNoStaffAccount)
	assert.False(t, sessions.SignedIn())
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, staffMocks.NewMockStaff(ctrl), guestMocks.NewMockGuest(ctrl), sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, failure.Unauthorized("Invalid login credentials"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "x@example.com", Password: "wrong"})
	assert.Error(t, err)
	assert.False(t, sessions.SignedIn())
}

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	mockGuest := guestMocks.NewMockGuest(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, staffMocks.NewMockStaff(ctrl), mockGuest, sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignUp(gomock.Any(), "juan@example.com", "password").
		Return(&session.Session{AccessToken: "token-4", Email: "juan@example.com"}, nil)

	mockGuest.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest guestModel.Guest) (guestModel.Guest, error) {
			assert.Equal(t, "juan@example.com", guest.Email)
			assert.Equal(t, "Juan", guest.FirstName)
			guest.ID = 7

			return guest, nil
		})

	res, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "juan@example.com",
		Password:  "password",
		FirstName: "Juan",
		LastName:  "Dela Cruz",
	})
	require.NoError(t, err)

	assert.True(t, res.SignedIn)
	assert.True(t, sessions.SignedIn())
}

func TestAuthService_Signup_ProfileBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	mockGuest := guestMocks.NewMockGuest(ctrl)
	sessions := newSessionStore()

	svc := service.New(mockIdentity, staffMocks.NewMockStaff(ctrl), mockGuest, sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignUp(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&session.Session{AccessToken: "token-5", Email: "juan@example.com"}, nil)

	mockGuest.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		Return(guestModel.Guest{}, errors.New("guest table unavailable"))

	// the account stays signed in even when the profile row fails
	res, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "juan@example.com",
		Password:  "password",
		FirstName: "Juan",
		LastName:  "Dela Cruz",
	})
	require.NoError(t, err)
	assert.True(t, res.SignedIn)
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := identityMocks.NewMockIdentity(ctrl)
	sessions := newSessionStore()
	sessions.Set(&session.Session{AccessToken: "token-6", Email: "maria@example.com"})

	svc := service.New(mockIdentity, staffMocks.NewMockStaff(ctrl), guestMocks.NewMockGuest(ctrl), sessions, mocks.NewOtel())

	mockIdentity.EXPECT().
		SignOut(gomock.Any(), "token-6").
		Return(errors.New("revocation endpoint down"))

	// local session clears regardless of the remote result
	err := svc.Logout(context.Background())
	require.NoError(t, err)
	assert.False(t, sessions.SignedIn())
	assert.Equal(t, "anon-key", sessions.Token())
}

func TestAuthService_Current(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := newSessionStore()
	svc := service.New(identityMocks.NewMockIdentity(ctrl), staffMocks.NewMockStaff(ctrl), guestMocks.NewMockGuest(ctrl), sessions, mocks.NewOtel())

	assert.False(t, svc.Current(context.Background()).SignedIn)

	sessions.Set(&session.Session{AccessToken: "token-7", Email: "maria@example.com"})

	res := svc.Current(context.Background())
	assert.True(t, res.SignedIn)
	assert.Equal(t, "maria@example.com", res.Email)
}
