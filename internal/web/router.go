// Package web renders the wiki pages over HTTP.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/internal/metrics"
	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// Router wires the page handlers, middleware and operational endpoints.
type Router struct {
	store   wiki.Store
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewRouter creates a router. collector may be nil to disable metrics.
func NewRouter(store wiki.Store, collector *metrics.Collector, logger *zap.Logger) *Router {
	return &Router{
		store:   store,
		metrics: collector,
		logger:  logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(RequestLogger(rt.logger))
	router.Use(chimiddleware.Recoverer)
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	pages := NewHandler(rt.store, rt.logger)
	router.Get("/", pages.Index)
	router.Get("/char/", pages.ListCharacters)
	router.Get("/char/{name}", pages.ShowCharacter)
	router.Get("/top/victim_nationalities", pages.VictimNationalities)

	router.Get("/health", rt.healthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	return router
}

// healthCheck reports liveness only; it does not touch the store.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
