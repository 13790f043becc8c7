// Package metrics exposes Prometheus metrics for HTTP requests and store
// queries on a dedicated registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// Collector holds all Prometheus metrics for the wiki.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them on a fresh registry,
// so several collectors can coexist in tests.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total number of graph store queries",
			},
			[]string{"backend", "operation", "status"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Graph store query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.StoreOperations,
		c.StoreDuration,
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per chi route pattern.
// Unmatched requests are grouped under a single route label.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// InstrumentStore wraps a store so every query is counted and timed.
func (c *Collector) InstrumentStore(backend string, s wiki.Store) wiki.Store {
	return &instrumentedStore{next: s, backend: backend, c: c}
}

type instrumentedStore struct {
	next    wiki.Store
	backend string
	c       *Collector
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, wiki.ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.c.StoreOperations.WithLabelValues(s.backend, op, status).Inc()
	s.c.StoreDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) ListCharacters(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { s.observe("list_characters", start, err) }(time.Now())
	return s.next.ListCharacters(ctx)
}

func (s *instrumentedStore) VictimNationalities(ctx context.Context) (ranked []wiki.VictimNationality, err error) {
	defer func(start time.Time) { s.observe("victim_nationalities", start, err) }(time.Now())
	return s.next.VictimNationalities(ctx)
}

func (s *instrumentedStore) FindCharacter(ctx context.Context, name string) (ch *wiki.Character, err error) {
	defer func(start time.Time) { s.observe("find_character", start, err) }(time.Now())
	return s.next.FindCharacter(ctx, name)
}

func (s *instrumentedStore) Profile(ctx context.Context, ch *wiki.Character) (p *wiki.Profile, err error) {
	defer func(start time.Time) { s.observe("profile", start, err) }(time.Now())
	return s.next.Profile(ctx, ch)
}
