// Package backend is the resource client for the booking backend's REST API.
// It owns request construction, bearer-token attachment, and translation of
// transport and HTTP failures into the application error taxonomy. It never
// caches entity state - callers re-fetch after every mutation.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roomdesk/internal/backend/tracer"
	"roomdesk/internal/platform/metrics"
	"roomdesk/internal/session"
	"roomdesk/pkg/apperrors"
	"roomdesk/pkg/platform/circuit"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the booking backend. The session context is injected at
// construction time; there is no process-wide default-header mutation.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient HTTPDoer
	sess       *session.Context
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
	breaker    *circuit.Breaker
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics sets the metrics collector for the client.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer sets the tracer for upstream call spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithBreaker attaches a circuit breaker fed by transport-level outcomes.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New creates a backend client bound to one session context.
func New(baseURL string, sess *session.Context, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		sess:    sess,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the client's session context so the owning layer can
// register expiry hooks and drive login/logout.
func (c *Client) Session() *session.Context {
	return c.sess
}

// Healthy reports whether the backend is currently considered reachable.
// Without a breaker configured it optimistically reports true.
func (c *Client) Healthy() bool {
	if c.breaker == nil {
		return true
	}
	return !c.breaker.IsOpen()
}

// call describes one backend request.
type call struct {
	resource  string     // metrics/tracing label, e.g. "rooms"
	method    string
	path      string
	json      any        // JSON request body, if any
	form      url.Values // form-encoded body (login), if any
	out       any        // decode target for the response body, if any
	anonymous bool       // skip the Authorization header
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// do executes one backend call and maps the outcome onto the application
// error taxonomy. A 401 invalidates the session as a side effect, regardless
// of which operation triggered it.
func (c *Client) do(ctx context.Context, req call) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, tracer.SpanBackendCall,
		tracer.String(tracer.AttrResource, req.resource),
		tracer.String(tracer.AttrMethod, req.method),
	)

	start := time.Now()
	status, err := c.execute(ctx, req)
	elapsed := time.Since(start)

	if status != 0 {
		span.SetAttributes(tracer.Int64(tracer.AttrStatus, int64(status)))
	}
	span.End(err)

	c.recordOutcome(req.resource, err, elapsed)
	return err
}

func (c *Client) execute(ctx context.Context, req call) (status int, err error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, apperrors.Wrap(err, apperrors.CodeTimeout, "booking service did not respond in time")
		}
		return 0, apperrors.Wrap(err, apperrors.CodeNetwork,
			"cannot reach the booking service - check connectivity and that the server is running")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, apperrors.Wrap(err, apperrors.CodeNetwork, "failed to read response body")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if req.out == nil {
			return resp.StatusCode, nil
		}
		if err := json.Unmarshal(body, req.out); err != nil {
			return resp.StatusCode, apperrors.Wrap(err, apperrors.CodeInternal, "failed to parse response")
		}
		return resp.StatusCode, nil
	}

	return resp.StatusCode, c.mapFailure(resp.StatusCode, body, req.anonymous)
}

func (c *Client) buildRequest(ctx context.Context, req call) (*http.Request, error) {
	var reader io.Reader
	contentType := ""
	switch {
	case req.form != nil:
		reader = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.json != nil:
		buf, err := json.Marshal(req.json)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if !req.anonymous {
		if token, ok := c.sess.Token(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

// mapFailure translates non-2xx responses into coded errors, surfacing the
// backend's detail message verbatim where one is present.
func (c *Client) mapFailure(status int, body []byte, anonymous bool) error {
	detail := extractDetail(body)

	switch {
	case status == http.StatusUnauthorized:
		if c.metrics != nil {
			c.metrics.IncrementAuthFailures()
		}
		// A rejected login carries no session to tear down; keep the
		// backend's own message.
		if anonymous {
			if detail == "" {
				detail = "authentication failed"
			}
			return apperrors.New(apperrors.CodeAuth, detail)
		}
		// Forced logout: listeners registered on the session context take
		// care of redirecting to login.
		c.sess.Invalidate()
		return apperrors.New(apperrors.CodeAuth, "session expired - please log in again")

	case status == http.StatusServiceUnavailable:
		if detail == "" {
			detail = "booking service temporarily unavailable - please try again"
		}
		return apperrors.New(apperrors.CodeUnavailable, detail)

	case status == http.StatusNotFound:
		if detail == "" {
			detail = "resource not found"
		}
		return apperrors.New(apperrors.CodeNotFound, detail)

	case status >= 400 && status < 500:
		if detail == "" {
			detail = fmt.Sprintf("request rejected (status %d)", status)
		}
		return apperrors.New(apperrors.CodeRequest, detail)

	default:
		if detail == "" {
			detail = fmt.Sprintf("unexpected status code: %d", status)
		}
		return apperrors.New(apperrors.CodeInternal, detail)
	}
}

// recordOutcome updates metrics and the availability breaker. Only transport
// and 503 failures count against the breaker - a 4xx is a healthy backend
// rejecting the request.
func (c *Client) recordOutcome(resource string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.CodeInternal)
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			outcome = string(appErr.Code)
		}
	}
	if c.metrics != nil {
		c.metrics.ObserveBackendRequest(resource, outcome, elapsed)
	}

	if c.breaker == nil {
		return
	}
	if err != nil && apperrors.Retryable(err) {
		if change := c.breaker.RecordFailure(); change.Opened && c.logger != nil {
			c.logger.Warn("backend circuit opened", "breaker", c.breaker.Name())
		}
		return
	}
	if change := c.breaker.RecordSuccess(); change.Closed && c.logger != nil {
		c.logger.Info("backend circuit closed", "breaker", c.breaker.Name())
	}
}

func extractDetail(body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		return eb.Detail
	}
	return ""
}
