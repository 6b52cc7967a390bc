package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scribe"

// Metrics holds the collectors exported by the service.
type Metrics struct {
	registry *prometheus.Registry

	Routes      *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Closed      *prometheus.CounterVec
	Generations *prometheus.HistogramVec
	Requests    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors, plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages answered, by route.",
		}, []string{"route"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Workflow stage changes.",
		}, []string{"from", "to"}),
		Closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "Sessions removed from the store, by reason.",
		}, []string{"reason"}),
		Generations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"prompt", "outcome"}),
		Requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.Routes,
		m.Transitions,
		m.Closed,
		m.Generations,
		m.Requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks records lifecycle events as counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			m.Routes.WithLabelValues(string(e.Route)).Inc()
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnSessionClosed: func(ctx context.Context, e *domain.SessionClosedEvent) {
			m.Closed.WithLabelValues(string(e.Reason)).Inc()
		},
	}
}

// InstrumentGenerator times every generation call made through next.
func (m *Metrics) InstrumentGenerator(next ports.Generator) ports.Generator {
	return ports.GeneratorFunc(func(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation {
		start := time.Now()
		g := next.Generate(ctx, prompt, vars)
		outcome := "ok"
		if !g.OK() {
			outcome = "error"
		}
		m.Generations.WithLabelValues(string(prompt), outcome).Observe(time.Since(start).Seconds())
		return g
	})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
