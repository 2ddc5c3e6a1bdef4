// ABOUTME: HTTP client adapter for the RFRP controller REST API
// ABOUTME: Handles envelope decoding, bearer auth, and 401 classification

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the local-development fallback for the controller API.
const DefaultBaseURL = "http://localhost:7000/api/v1"

const defaultTimeout = 15 * time.Second

// envelope is the uniform response wrapper every controller endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
}

// APIError is an application-level failure reported by the controller,
// either a non-2xx status or a success:false envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// AuthFailureHandler is invoked by the client when a 401 response is
// classified as a hard authentication failure (session invalid). It is the
// only path through which a network response may tear down the session.
type AuthFailureHandler func(reason string)

// Client is the HTTP adapter all resource services are built on.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure AuthFailureHandler
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token source for authenticated requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHandler registers the handler invoked on hard auth failures.
func WithAuthFailureHandler(h AuthFailureHandler) Option {
	return func(c *Client) { c.onAuthFailure = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request and auth-failure logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger.With("component", "api") }
}

// New creates a client for the controller API at baseURL. A trailing slash
// on baseURL is tolerated.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a JSON request against path and decodes the envelope. A non-nil
// out receives the envelope's data payload. Query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failure: no response, no session side effects.
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(path, env.Message)
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decoding data: %w", method, path, err)
		}
	}
	return nil
}

// handleUnauthorized classifies a 401 response and, for hard failures,
// invokes the registered auth failure handler. Soft failures (a 401 that
// looks like a permission problem rather than a dead session) are only
// logged so a still-valid user is not spuriously logged out.
func (c *Client) handleUnauthorized(path, message string) {
	if !isHardAuthFailure(path, message) {
		c.logger.Warn("unauthorized response left session intact", "path", path, "message", message)
		return
	}
	c.logger.Info("session invalidated by server", "path", path, "message", message)
	if c.onAuthFailure != nil {
		c.onAuthFailure(message)
	}
}

// hardFailureMarkers are message substrings that mark a 401 as an
// authentication (not authorization) failure. Matched case-insensitively.
var hardFailureMarkers = []string{"token", "unauthorized", "not authenticated"}

// isHardAuthFailure reports whether a 401 on the given path with the given
// server message means the session itself is invalid.
func isHardAuthFailure(path, message string) bool {
	if strings.Contains(path, "/auth/") {
		return true
	}
	lower := strings.ToLower(message)
	for _, marker := range hardFailureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
