package identity

//go:generate go run go.uber.org/mock/mockgen -source=./identity.go -destination=./mocks/identity_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/infras/session"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

const authPath = "/auth/v1"

// Identity is the boundary to the hosted identity provider. Passwords
// and token issuance live entirely on the provider side; this client
// only exchanges credentials for sessions and revokes them.
type Identity interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context, token string) error
}

type clientImpl struct {
	baseURL string
	apiKey  string
	http    *http.Client
	otel    otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Identity {
	return &clientImpl{
		baseURL: strings.TrimRight(cfg.Backend.URL, "/"),
		apiKey:  cfg.Backend.APIKey,
		http:    &http.Client{},
		otel:    ot,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        struct {
		Email string `json:"email"`
	} `json:"user"`
}

type providerError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (c *clientImpl) SignIn(ctx context.Context, email, password string) (res *session.Session, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".SignIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	return c.exchange(ctx, "/token?grant_type=password", email, password)
}

func (c *clientImpl) SignUp(ctx context.Context, email, password string) (res *session.Session, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".SignUp")
	defer scope.End()
	defer scope.TraceIfError(err)

	return c.exchange(ctx, "/signup", email, password)
}

func (c *clientImpl) SignOut(ctx context.Context, token string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".SignOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath+"/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to build sign-out request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.apiKey)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sign-out call failed: %w", err)
	}
	defer resp.Body.Close()

	// Revocation failures are not actionable for the caller; the local
	// session is discarded regardless.
	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn().Int("status", resp.StatusCode).Msg("identity provider rejected sign-out")
	}

	return nil
}

func (c *clientImpl) exchange(ctx context.Context, path, email, password string) (*session.Session, error) {
	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.apiKey)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, failure.Remote(resp.StatusCode, providerMessage(resp.StatusCode, body)) //nolint:wrapcheck
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	sess := &session.Session{
		AccessToken: token.AccessToken,
		Email:       token.User.Email,
	}

	if token.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	if sess.Email == "" {
		sess.Email = EmailFromToken(token.AccessToken)
	}

	return sess, nil
}

func providerMessage(code int, body []byte) string {
	var perr providerError
	if err := json.Unmarshal(body, &perr); err == nil {
		if perr.ErrorDescription != "" {
			return perr.ErrorDescription
		}

		if perr.Message != "" {
			return perr.Message
		}
	}

	return fmt.Sprintf("HTTP %d: %s", code, string(body))
}

// EmailFromToken extracts the email claim from a provider-issued JWT.
// The token is parsed without signature verification: validation is the
// provider's job, this side only needs the projection key.
func EmailFromToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse session token claims")

		return ""
	}

	email, _ := claims["email"].(string)

	return email
}
