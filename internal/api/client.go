// Package api is the HTTP client for the remote shelter service.
// It defines the Service interface consumed by the controllers and a
// cookie-aware implementation that speaks the service's JSON contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/query"
	"github.com/dogfinder/dogfinder/internal/version"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Service abstracts every remote call the client makes.
type Service interface {
	// Login establishes a cookie session for the given credentials.
	Login(ctx context.Context, creds domain.Credentials) error
	// Logout ends the cookie session.
	Logout(ctx context.Context) error
	// Breeds returns all breed names.
	Breeds(ctx context.Context) ([]string, error)
	// Dogs hydrates up to domain.MaxHydrationIDs ids into full records.
	Dogs(ctx context.Context, ids []string) ([]domain.Dog, error)
	// Search runs a catalog search and returns one page of ids.
	Search(ctx context.Context, req query.RequestDescriptor) (domain.SearchResultPage, error)
	// Follow dereferences a continuation cursor verbatim.
	Follow(ctx context.Context, cursor domain.Cursor) (domain.SearchResultPage, error)
	// Match picks one id out of the given favorites.
	Match(ctx context.Context, ids []string) (string, error)
	// SearchLocations queries the location service.
	SearchLocations(ctx context.Context, params domain.LocationSearchParams) (domain.LocationSearchResponse, error)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client implements Service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	newID      func() string
	logger     logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is added
// when the given client has none.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		c.newID = fn
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: base url cannot be empty")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		newID:      func() string { return uuid.NewString() },
		logger:     logging.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("api: create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes a request against baseURL+path. body is JSON encoded when
// non-nil; out is JSON decoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	endpoint := strings.SplitN(path, "?", 2)[0]
	start := time.Now()
	trace := colors.Trace{Component: "api", Action: endpoint, Status: "started", RequestID: requestID, Method: method}
	colors.Emit(trace)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		trace.Level, trace.Status, trace.Error = colors.LevelError, "failed", err.Error()
		colors.Emit(trace)
		c.logger.Warn("request failed", "method", method, "path", endpoint, "request_id", requestID, "error", err.Error())
		return fmt.Errorf("api: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	trace.HTTPStatus, trace.DurationMS = resp.StatusCode, duration.Milliseconds()
	c.logger.Debug("request completed", "method", method, "path", endpoint, "status", resp.StatusCode, "request_id", requestID, "duration_seconds", duration.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{Method: method, Path: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		trace.Level, trace.Status, trace.Error = colors.LevelError, "failed", statusErr.Error()
		colors.Emit(trace)
		return statusErr
	}
	trace.Status = "completed"
	colors.Emit(trace)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

// Login posts the credentials to /auth/login.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/login", creds, nil)
}

// Logout posts to /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Breeds fetches GET /dogs/breeds.
func (c *Client) Breeds(ctx context.Context) ([]string, error) {
	var breeds []string
	if err := c.do(ctx, http.MethodGet, "/dogs/breeds", nil, &breeds); err != nil {
		return nil, err
	}
	return breeds, nil
}

// Dogs posts ids to /dogs. More than domain.MaxHydrationIDs ids fail before
// any request is built; an empty list returns without a request.
func (c *Client) Dogs(ctx context.Context, ids []string) ([]domain.Dog, error) {
	if len(ids) > domain.MaxHydrationIDs {
		return nil, fmt.Errorf("api: hydrate %d ids: %w", len(ids), domain.ErrTooManyIDs)
	}
	if len(ids) == 0 {
		return []domain.Dog{}, nil
	}
	var dogs []domain.Dog
	if err := c.do(ctx, http.MethodPost, "/dogs", ids, &dogs); err != nil {
		return nil, err
	}
	return dogs, nil
}

// Search runs GET /dogs/search with the descriptor's query parameters.
func (c *Client) Search(ctx context.Context, req query.RequestDescriptor) (domain.SearchResultPage, error) {
	path := "/dogs/search"
	if encoded := req.Values().Encode(); encoded != "" {
		path += "?" + encoded
	}
	var page domain.SearchResultPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return domain.SearchResultPage{}, err
	}
	return page, nil
}

// Follow issues GET base+cursor. The cursor is appended exactly as issued.
func (c *Client) Follow(ctx context.Context, cursor domain.Cursor) (domain.SearchResultPage, error) {
	if cursor.IsZero() {
		return domain.SearchResultPage{}, fmt.Errorf("api: follow: empty cursor")
	}
	var page domain.SearchResultPage
	if err := c.do(ctx, http.MethodGet, cursor.String(), nil, &page); err != nil {
		return domain.SearchResultPage{}, err
	}
	return page, nil
}

// Match posts the favorites to /dogs/match and returns the winning id.
func (c *Client) Match(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("api: match: %w", domain.ErrEmptySelection)
	}
	var result domain.MatchResult
	if err := c.do(ctx, http.MethodPost, "/dogs/match", ids, &result); err != nil {
		return "", err
	}
	if result.Match == "" {
		return "", fmt.Errorf("api: match: empty match id in response")
	}
	return result.Match, nil
}

// SearchLocations posts params to /locations/search.
func (c *Client) SearchLocations(ctx context.Context, params domain.LocationSearchParams) (domain.LocationSearchResponse, error) {
	var resp domain.LocationSearchResponse
	if err := c.do(ctx, http.MethodPost, "/locations/search", params, &resp); err != nil {
		return domain.LocationSearchResponse{}, err
	}
	return resp, nil
}

var _ Service = (*Client)(nil)
