package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/cfrac/internal/config"
	httpadapter "github.com/aretw0/cfrac/pkg/adapters/http"
	mcpadapter "github.com/aretw0/cfrac/pkg/adapters/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPHandler builds the API handler with /cache and /metrics mounted.
func NewHTTPHandler(rt *Runtime) http.Handler {
	opts := []httpadapter.Option{
		httpadapter.WithLogger(rt.Logger),
		httpadapter.WithMetricsHandler(promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})),
	}
	if rt.Cache != nil {
		opts = append(opts, httpadapter.WithCache(rt.Cache))
	}
	return httpadapter.NewHandler(rt.Engine, opts...)
}

// RunServe serves the HTTP API on port until ctx is cancelled.
func RunServe(ctx context.Context, rt *Runtime, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(rt),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		rt.Logger.Info("HTTP Server listening", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rt.Logger.Info("Shutdown signal received, stopping HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// RunMCP serves the engine over the configured MCP transport.
func RunMCP(ctx context.Context, rt *Runtime, cfg config.MCPConfig) error {
	var opts []mcpadapter.Option
	if rt.Cache != nil {
		opts = append(opts, mcpadapter.WithCache(rt.Cache))
	}
	srv := mcpadapter.NewServer(rt.Engine, opts...)

	switch cfg.Transport {
	case config.TransportSSE:
		return srv.ServeSSE(ctx, cfg.Port)
	case config.TransportStdio, "":
		return srv.ServeStdio()
	}
	return fmt.Errorf("unknown mcp transport %q", cfg.Transport)
}
