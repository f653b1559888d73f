// Package metrics exposes Prometheus metrics for operators: quiz lifecycle
// counters fed by session events, generative-language call latency and HTTP
// request metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vocab-drill/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	SessionEvents     *prometheus.CounterVec
	PersistenceErrors *prometheus.CounterVec
	GradingFallbacks  *prometheus.CounterVec
	LLMCallDuration   *prometheus.HistogramVec
	RequestCounter    *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all collectors in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_session_events_total",
				Help: "Quiz session lifecycle events by type",
			},
			[]string{"type"},
		),
		PersistenceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_persistence_failures_total",
				Help: "Persistence writes abandoned after retries, by operation",
			},
			[]string{"operation"},
		),
		GradingFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_grading_fallbacks_total",
				Help: "Answers graded by the deterministic comparator, by reason",
			},
			[]string{"reason"},
		),
		LLMCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_call_duration_seconds",
				Help:    "Duration of generative-language service calls",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		m.SessionEvents,
		m.PersistenceErrors,
		m.GradingFallbacks,
		m.LLMCallDuration,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HandleEvent implements events.EventHandler.
func (m *Metrics) HandleEvent(_ context.Context, event *events.SessionEvent) error {
	m.SessionEvents.WithLabelValues(event.Type).Inc()

	if event.Type == events.PersistenceFailed {
		var payload events.PersistenceFailedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		m.PersistenceErrors.WithLabelValues(payload.Operation).Inc()
	}
	return nil
}

// ObserveLLMCall records the latency of one generative-language call.
func (m *Metrics) ObserveLLMCall(d time.Duration, outcome string) {
	m.LLMCallDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// GradingFallback counts an answer graded by the fallback comparator.
func (m *Metrics) GradingFallback(reason string) {
	m.GradingFallbacks.WithLabelValues(reason).Inc()
}

// Middleware records request counts and durations labelled by chi route
// pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
