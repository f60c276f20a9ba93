// Package metricsserver exposes the invoker's budget/memory gauges
// over a Prometheus text endpoint, the way the teacher's node exposes
// its own registered gauges for scraping.
package metricsserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Start launches the exposition HTTP server in the background if addr
// is non-empty, returning a shutdown func that is always safe to call
// (including when no server was started).
func Start(addr string, logger *zap.Logger) func(context.Context) error {
	if addr == "" {
		return func(context.Context) error { return nil }
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	return srv.Shutdown
}
