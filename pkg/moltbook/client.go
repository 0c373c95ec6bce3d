package moltbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the root of the public Moltbook API.
	DefaultBaseURL = "https://www.moltbook.com/api/v1"

	// DefaultTimeout applies to the default transport collaborator only.
	DefaultTimeout = 30 * time.Second

	// Version is reported in the User-Agent header.
	Version = "0.1.0"
)

const userAgent = "moltbook-go/" + Version

// Client issues authenticated requests against the Moltbook API. It holds
// no mutable state after construction.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	logger  *zap.Logger
	metrics *transportMetrics
}

// New returns a client that authenticates every request with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return newClient(apiKey, opts), nil
}

func newClient(apiKey string, opts []Option) *Client {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", userAgent)
	if apiKey != "" {
		headers.Set("Authorization", "Bearer "+apiKey)
	}
	_ = mergo.Merge(&headers, s.headers, mergo.WithOverride)

	hc, metrics := buildHTTPClient(s)
	return &Client{
		baseURL: s.baseURL,
		headers: headers,
		http:    hc,
		logger:  s.logger,
		metrics: metrics,
	}
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request to endpoint, relative to the base URL, and returns the
// decoded body whatever the status code. A non-nil body is sent as JSON.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, opts ...RequestOption) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("moltbook: encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("moltbook: build %s %s: %w", method, endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header = c.requestHeader(requestID, opts)

	log := c.logger.With(
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
	)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("moltbook request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug("moltbook response read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Debug("moltbook response is not JSON", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &DecodeError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(raw),
			Err:        err,
		}
	}

	log.Debug("moltbook request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Raw:        raw,
		Data:       data,
	}, nil
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
}

// requestHeader merges the per-call overrides over the default headers
// without touching the defaults.
func (c *Client) requestHeader(requestID string, opts []RequestOption) http.Header {
	h := c.headers.Clone()
	h.Set("X-Request-Id", requestID)
	if len(opts) == 0 {
		return h
	}
	overrides := http.Header{}
	for _, opt := range opts {
		opt(overrides)
	}
	_ = mergo.Merge(&h, overrides, mergo.WithOverride)
	return h
}

func (c *Client) get(ctx context.Context, endpoint string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) patch(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}
