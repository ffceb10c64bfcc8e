package backend

//go:generate go run go.uber.org/mock/mockgen -source=./backend.go -destination=./mocks/backend_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/infras/session"
	"innkeep/shared/constant"
	"innkeep/shared/dto"
	"innkeep/shared/failure"
)

// Verb is a mutation kind against a record collection.
type Verb string

const (
	VerbCreate Verb = http.MethodPost
	VerbUpdate Verb = http.MethodPatch
	VerbDelete Verb = http.MethodDelete
)

const restPath = "/rest/v1/"

// QueryOptions shape a filtered, ordered read of one collection.
type QueryOptions struct {
	Select string
	Filter dto.FilterGroup
	Order  dto.OrderParams
	// Token overrides the session credential for this single call.
	Token string
}

// MutateOptions shape a write against one collection. Update and Delete
// require a filter identifying the target rows.
type MutateOptions struct {
	Body       any
	Filter     dto.FilterGroup
	ReturnRows bool
	// OnConflict names a unique column for an atomic insert-or-merge,
	// e.g. guest dedup keyed on email.
	OnConflict string
	Token      string
}

// Client is the remote data gateway: stateless request/response calls
// against the hosted backend's record collections. It holds no result
// cache and performs no retries; the only ambient state is the session
// credential it reads from the injected store at call time.
type Client interface {
	Query(ctx context.Context, table string, opts QueryOptions) (json.RawMessage, error)
	Mutate(ctx context.Context, table string, verb Verb, opts MutateOptions) (json.RawMessage, error)
}

type clientImpl struct {
	baseURL  string
	apiKey   string
	sessions *session.Store
	http     *http.Client
	otel     otel.Otel
}

func New(cfg *config.Config, sessions *session.Store, ot otel.Otel) Client {
	return &clientImpl{
		baseURL:  strings.TrimRight(cfg.Backend.URL, "/"),
		apiKey:   cfg.Backend.APIKey,
		sessions: sessions,
		http:     &http.Client{},
		otel:     ot,
	}
}

func (c *clientImpl) Query(ctx context.Context, table string, opts QueryOptions) (res json.RawMessage, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Query")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("backend.table", table)

	sel := opts.Select
	if sel == "" {
		sel = constant.Asterix
	}

	url := c.baseURL + restPath + table + "?select=" + sel
	if !opts.Filter.Empty() {
		url += "&" + opts.Filter.Encode()
	}

	if order := opts.Order.Expression(); order != "" {
		url += "&order=" + order
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build query request (%s): %w", table, err)
	}

	c.setHeaders(req, opts.Token)

	return c.do(req, table)
}

func (c *clientImpl) Mutate(ctx context.Context, table string, verb Verb, opts MutateOptions) (res json.RawMessage, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Mutate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"backend.table": table,
		"backend.verb":  string(verb),
	})

	if verb != VerbCreate && opts.Filter.Empty() {
		return nil, failure.BadRequestFromString("update/delete requires a filter identifying target rows") //nolint:wrapcheck
	}

	url := c.baseURL + restPath + table

	params := []string{}
	if !opts.Filter.Empty() {
		params = append(params, opts.Filter.Predicates()...)
	}

	if opts.OnConflict != "" {
		params = append(params, "on_conflict="+opts.OnConflict)
	}

	if len(params) > 0 {
		url += "?" + strings.Join(params, "&")
	}

	var body io.Reader

	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode mutation body (%s): %w", table, err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, string(verb), url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build mutation request (%s): %w", table, err)
	}

	c.setHeaders(req, opts.Token)

	prefer := []string{}
	if opts.ReturnRows {
		prefer = append(prefer, "return=representation")
	}

	if opts.OnConflict != "" {
		prefer = append(prefer, "resolution=merge-duplicates")
	}

	if len(prefer) > 0 {
		req.Header.Set(constant.RequestHeaderPrefer, strings.Join(prefer, ","))
	}

	return c.do(req, table)
}

func (c *clientImpl) setHeaders(req *http.Request, tokenOverride string) {
	token := tokenOverride
	if token == "" {
		token = c.sessions.Token()
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.apiKey)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderRequestID, uuid.NewString())
}

func (c *clientImpl) do(req *http.Request, table string) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend call failed (%s): %w", table, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response (%s): %w", table, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().
			Int("status", resp.StatusCode).
			Str("table", table).
			Str("body", string(payload)).
			Msg("backend request rejected")

		return nil, failure.Remote(resp.StatusCode, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(payload))) //nolint:wrapcheck
	}

	return payload, nil
}

// Decode unmarshals a gateway result into a typed record slice. An empty
// payload (mutations without return=representation) decodes to nil.
func Decode[T any](payload json.RawMessage) ([]T, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to decode backend payload: %w", err)
	}

	return records, nil
}

// DecodeOne unmarshals a single-row gateway result. It returns the zero
// record when the payload holds no rows.
func DecodeOne[T any](payload json.RawMessage) (T, error) {
	var zero T

	records, err := Decode[T](payload)
	if err != nil {
		return zero, err
	}

	if len(records) == 0 {
		return zero, nil
	}

	return records[0], nil
}
