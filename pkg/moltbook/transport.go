package moltbook

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// transportMetrics are the collectors installed by WithMetrics.
type transportMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newTransportMetrics(reg prometheus.Registerer) *transportMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moltbook",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Requests sent to the Moltbook API, by status code and method.",
	}, []string{"code", "method"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moltbook",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests sent to the Moltbook API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"code", "method"})

	return &transportMetrics{
		requests: register(reg, requests),
		duration: register(reg, duration),
	}
}

// register returns the collector already registered under the same
// descriptor, so several clients can share one registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (m *transportMetrics) wrap(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.requests,
		promhttp.InstrumentRoundTripperDuration(m.duration, next))
}

// buildHTTPClient copies the configured collaborator and layers the
// requested instrumentation over its transport.
func buildHTTPClient(s *settings) (*http.Client, *transportMetrics) {
	var hc http.Client
	if s.httpClient != nil {
		hc = *s.httpClient
	} else {
		hc.Timeout = DefaultTimeout
	}
	if s.timeout > 0 {
		hc.Timeout = s.timeout
	}

	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	var metrics *transportMetrics
	if s.registerer != nil {
		metrics = newTransportMetrics(s.registerer)
		base = metrics.wrap(base)
	}
	if s.tracerProvider != nil {
		base = otelhttp.NewTransport(base,
			otelhttp.WithTracerProvider(s.tracerProvider),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "moltbook " + r.Method + " " + r.URL.Path
			}),
		)
	}
	hc.Transport = base
	return &hc, metrics
}
