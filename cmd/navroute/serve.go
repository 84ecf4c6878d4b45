package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vitalvas/navroute/config"
	"github.com/vitalvas/navroute/dashboard"
	"github.com/vitalvas/navroute/routehandlers"
	"github.com/vitalvas/navroute/router"
)

//go:embed web
var webFS embed.FS

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard shell, the route API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			handler, err := newHandler(a.cfg, a.table, a.logger, reg)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), ln, handler, a.cfg.Server, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}

// assets returns the configured assets directory, or the embedded shell.
func assets(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(webFS, "web")
	}

	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("assets: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// newHandler wires the shell, the API and the metrics endpoint behind the
// common middleware.
func newHandler(cfg *config.Config, table *router.Table, logger *zap.Logger, reg *prometheus.Registry) (http.Handler, error) {
	files, err := assets(cfg.Server.AssetsDir)
	if err != nil {
		return nil, err
	}

	var metrics *routehandlers.Metrics
	if cfg.Metrics.Enabled {
		metrics, err = routehandlers.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
	}

	shell, err := routehandlers.ShellHandler(routehandlers.ShellConfig{
		Table:        table,
		Assets:       files,
		NotFoundView: dashboard.NotFound,
		Title:        dashboard.Title,
		RedirectCode: cfg.Server.RedirectCode,
		Logger:       logger,
		Metrics:      metrics,
	})
	if err != nil {
		return nil, err
	}

	security, err := routehandlers.SecurityHeadersMiddleware(routehandlers.SecurityHeadersConfig{
		ContentSecurityPolicy: cfg.Server.ContentSecurity,
		HSTSMaxAge:            cfg.Server.HSTSMaxAge,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", routehandlers.APIHandler(table, logger))
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	mux.Handle("/", shell)

	return routehandlers.Chain(mux,
		routehandlers.RecoveryMiddleware(logger),
		routehandlers.LoggingMiddleware(routehandlers.LoggingConfig{
			Logger:        logger,
			TrustIncoming: cfg.Server.TrustRequestID,
		}),
		metrics.Middleware(),
		security,
		routehandlers.CacheControlMiddleware(routehandlers.CacheControlConfig{}),
	), nil
}

// serve runs the server on ln until ctx is canceled, then shuts it down
// within the configured timeout.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
	}

	logger.Info("server shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
