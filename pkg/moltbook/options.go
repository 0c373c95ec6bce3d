package moltbook

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*settings)

type settings struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	headers        http.Header
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
	registerer     prometheus.Registerer
}

func defaultSettings() *settings {
	return &settings{
		baseURL: DefaultBaseURL,
		headers: http.Header{},
		logger:  zap.NewNop(),
	}
}

// WithBaseURL points the client at a different API root, such as a
// staging deployment or a test server.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	}
}

// WithHTTPClient sets the transport collaborator. The client is copied, so
// later instrumentation never modifies the caller's value. Thread safety of
// a shared Client is whatever this http.Client provides.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.httpClient = hc
	}
}

// WithTimeout sets the request timeout on the transport collaborator.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(s *settings) {
		s.headers.Set(key, value)
	}
}

// WithLogger enables debug logging of requests. The credential is never logged.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracing propagates trace context and records a client span per request.
func WithTracing(tp trace.TracerProvider) Option {
	return func(s *settings) {
		s.tracerProvider = tp
	}
}

// WithMetrics records request counts and latencies on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = reg
	}
}

// RequestOption adjusts a single call made through Client.Do.
type RequestOption func(http.Header)

// WithRequestHeader overrides or adds a header for one request only.
func WithRequestHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}
