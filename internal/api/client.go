package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/cache"
	"github.com/coursemaster/client-service/internal/utils"
)

// TokenSource supplies the bearer token for authenticated requests. The auth
// session store implements it; a nil source sends unauthenticated requests.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the typed HTTP client for the CourseMaster API. All business
// logic lives server-side; these are thin request/response wrappers that
// translate transport failures into the shared error taxonomy.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      utils.Logger
	cache       cache.CacheService
	tokenSource TokenSource
	timeout     time.Duration
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource attaches a bearer token source for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokenSource = ts }
}

// WithCache attaches an optional response cache for idempotent reads.
func WithCache(cs cache.CacheService) Option {
	return func(c *Client) { c.cache = cs }
}

// WithTimeout sets the per-request timeout applied on top of the caller's
// context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(logger utils.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     utils.NewDefaultLogger(),
		timeout:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// remoteError is the error envelope the server sends on failures.
type remoteError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request and decodes the response into out (when non-nil).
// No retries: a failed call is terminal until the user repeats the action.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token, ok := c.tokenSource.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.LogError(err, "request failed", "method", method, "path", path)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	var re remoteError
	// A body that is not the error envelope still maps to an APIError with a
	// generic fallback message.
	_ = json.NewDecoder(resp.Body).Decode(&re)

	message := re.Message
	if message == "" {
		message = re.Error
	}
	return apperrors.NewAPIError(resp.StatusCode, message)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// cachedGet reads through the optional response cache. Cache failures fall
// back to the network silently.
func (c *Client) cachedGet(ctx context.Context, key string, ttl time.Duration, path string, query url.Values, out any) error {
	if c.cache != nil {
		if err := c.cache.Get(ctx, key, out); err == nil {
			return nil
		}
	}
	if err := c.get(ctx, path, query, out); err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, out, ttl); err != nil {
			c.logger.Warn("failed to cache response", "key", key, "error", err)
		}
	}
	return nil
}

// invalidateCache drops cached entries matching pattern after a mutation.
func (c *Client) invalidateCache(ctx context.Context, pattern string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.DeletePattern(ctx, pattern); err != nil {
		c.logger.Warn("failed to invalidate cache", "pattern", pattern, "error", err)
	}
}
