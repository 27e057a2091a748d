package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"go.uber.org/fx"

	"github.com/nduyhai/nodestatus/internal/config"
)

func NewHTTPServer(cfg *config.Config, route http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func RegisterRoutes(
	lifecycle fx.Lifecycle,
	srv *http.Server,
	cfg *config.Config,
	logger *httplog.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// bind before returning so a taken port fails startup
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("Starting HTTP server", slog.String("addr", ln.Addr().String()))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", slog.Any("error", err))
				return err
			}

			logger.Info("HTTP server gracefully stopped")
			return nil
		},
	})
}
