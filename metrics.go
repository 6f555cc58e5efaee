package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/exporter"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

const metricsShutdownTimeout = 2 * time.Second

// serveMetrics serves /metrics and /healthz for mon on addr in the
// background. It returns the bound address and a func that shuts the
// server down.
func serveMetrics(addr string, mon *monitor.Monitor, logger *slog.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler(mon.Store()))
	mux.Handle("/healthz", healthHandler(mon))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", ln.Addr().String())

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}
	return ln.Addr().String(), stop, nil
}
