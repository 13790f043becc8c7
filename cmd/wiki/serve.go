package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/internal/metrics"
	"github.com/mlwelles/modusGraph24Wiki/internal/web"
)

// ServeCmd runs the HTTP server until SIGINT or SIGTERM.
type ServeCmd struct {
	Addr            string        `help:"Listen address." default:"localhost:8080" env:"WIKI_ADDR"`
	Metrics         bool          `help:"Expose Prometheus metrics at /metrics." default:"true" negatable:"" env:"WIKI_METRICS"`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"30s" env:"WIKI_SHUTDOWN_TIMEOUT"`
}

func (s *ServeCmd) Run(g *Globals) error {
	logger, err := g.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := g.Store.Open(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var collector *metrics.Collector
	if s.Metrics {
		collector = metrics.NewCollector("wiki")
		store = collector.InstrumentStore(g.Store.Backend, store)
	}

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      web.NewRouter(store, collector, logger).Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", s.Addr),
			zap.String("backend", g.Store.Backend),
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
