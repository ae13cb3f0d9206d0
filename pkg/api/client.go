package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/freshmart/admin-console/pkg/logger"
	"github.com/freshmart/admin-console/pkg/metrics"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

var errBaseURLRequired = errors.New("backend base URL is required")

// Client talks to the storefront admin backend. All requests carry the
// session cookie jar and are answered with the backend's {ok, ..., error}
// envelope; failures come back as coded errors so each pipeline can decide
// between retrying, surfacing inline, or shutting down.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	metrics    *metrics.APIMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	client := &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status is the shared part of every backend response body. Response structs
// embed it next to their payload fields.
type Status struct {
	OK  bool   `json:"ok"`
	Err string `json:"error"`
}

func (s Status) status() (bool, string) { return s.OK, s.Err }

type statused interface{ status() (bool, string) }

// Get issues a GET request. op labels the request in logs and metrics.
func (c *Client) Get(ctx context.Context, op, path string, query url.Values, out statused) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, op, path string, body any, out statused) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, op, path string, body any, out statused) error {
	return c.do(ctx, op, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, op, path string, out statused) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out statused) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, op, out)
}

// PostMultipart issues a multipart/form-data POST with a single file field.
func (c *Client) PostMultipart(ctx context.Context, op, path, field, filename string, file io.Reader, out statused) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build multipart body")
	}
	if _, err := io.Copy(part, file); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload file")
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, nil), &buf)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out statused) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	err := c.exchange(req, out)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(string(pkgerrors.CodeOf(err)))
	}
	c.metrics.ObserveRequest(op, outcome, elapsed)

	if c.logg != nil {
		ctx := c.logg.WithFields(req.Context(), map[string]any{
			"request_id": requestID,
			"op":         op,
			"elapsed_ms": elapsed.Milliseconds(),
		})
		if err != nil {
			c.logg.Warn(c.logg.WithField(ctx, "outcome", outcome), "backend request failed")
		} else {
			c.logg.Debug(ctx, "backend request ok")
		}
	}

	return err
}

func (c *Client) exchange(req *http.Request, out statused) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "read response body")
	}

	if resp.StatusCode == http.StatusNotFound {
		// The backend answers missing resources with a JSON envelope; a
		// bare 404 (no envelope) means the route itself does not exist.
		var env Status
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Err != "" {
			return pkgerrors.New(pkgerrors.CodeNotFound, env.Err)
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("HTTP 404 on %s", req.URL.Path))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("HTTP %d with undecodable body", resp.StatusCode))
	}

	if ok, msg := out.status(); !ok {
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return pkgerrors.New(pkgerrors.CodeApplication, msg)
	}

	return nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	full := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}
