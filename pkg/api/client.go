// Package api is the HTTP client for the remote platform REST API.
//
// Every call builds <base>/<path>[?query], attaches the JSON content type
// and, when a session exists, the bearer token. Responses are normalized
// into the platform envelope; anything that is not a 2xx JSON envelope is
// surfaced as a typed error for the caller to display. The client performs
// no retries and no caching: the remote API is authoritative.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/aipilotbyjd/n8njdfront/pkg/log"
)

const defaultTimeout = 20 * time.Second

// TokenSource supplies the current bearer token, or the empty string when
// no session exists. session.Store satisfies this.
type TokenSource interface {
	Token() string
}

// Client talks to the platform API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	validate   *validator.Validate
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracer records a span per request on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// NewClient creates a Client against the given base URL. tokens may be nil
// for a client that only performs unauthenticated calls.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     log.WithModule("api"),
		tracer:     noop.NewTracerProvider().Tracer("api"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Auth returns the authentication endpoints.
func (c *Client) Auth() *AuthService { return &AuthService{client: c} }

// Workflows returns the workflow endpoints.
func (c *Client) Workflows() *WorkflowsService { return &WorkflowsService{client: c} }

// Executions returns the execution endpoints.
func (c *Client) Executions() *ExecutionsService { return &ExecutionsService{client: c} }

// Credentials returns the credential endpoints.
func (c *Client) Credentials() *CredentialsService { return &CredentialsService{client: c} }

// Templates returns the template endpoints.
func (c *Client) Templates() *TemplatesService { return &TemplatesService{client: c} }

// Webhooks returns the webhook endpoints.
func (c *Client) Webhooks() *WebhooksService { return &WebhooksService{client: c} }

// Variables returns the variable endpoints.
func (c *Client) Variables() *VariablesService { return &VariablesService{client: c} }

// Versions returns the workflow version endpoints.
func (c *Client) Versions() *VersionsService { return &VersionsService{client: c} }

// Analytics returns the analytics endpoints.
func (c *Client) Analytics() *AnalyticsService { return &AnalyticsService{client: c} }

// Notifications returns the notification settings endpoints.
func (c *Client) Notifications() *NotificationsService { return &NotificationsService{client: c} }

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}

	return c.tokens.Token()
}

// do performs one API call and returns the decoded envelope. A nil return
// never accompanies a nil error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) (*Envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	))
	defer span.End()

	env, err := c.roundTrip(ctx, method, target, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return env, nil
}

func (c *Client) roundTrip(ctx context.Context, method, target string, in any) (*Envelope, error) {
	var body io.Reader

	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}

		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "API call", "method", method, "url", target, "status", resp.StatusCode)

	return decodeResponse(resp)
}

// decodeResponse normalizes the three response classes: 204 becomes a
// synthetic success envelope, non-JSON bodies become malformed-response
// errors carrying the status line, and JSON bodies are decoded and, on a
// non-2xx status or an explicit success:false, turned into an APIError.
func decodeResponse(resp *http.Response) (*Envelope, error) {
	if resp.StatusCode == http.StatusNoContent {
		return &Envelope{Success: true}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if !isJSONMediaType(mediaType) {
		return nil, malformedResponse(resp.StatusCode, resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if mediaType == problemMediaType {
		return nil, problemError(resp.StatusCode, payload)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, malformedResponse(resp.StatusCode, resp.Status)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, env.Message)
	}

	if !env.Success {
		return nil, apiError(resp.StatusCode, env.Message)
	}

	return &env, nil
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || mediaType == problemMediaType ||
		strings.HasSuffix(mediaType, "+json")
}

// get decodes the envelope data of a GET into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Envelope, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := env.DecodeData(out); err != nil {
			return nil, err
		}
	}

	return env, nil
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) (*Envelope, error) {
	env, err := c.do(ctx, method, path, nil, in)
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := env.DecodeData(out); err != nil {
			return nil, err
		}
	}

	return env, nil
}

func (c *Client) validateRequest(in any) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	return nil
}
