package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/fitgpt/internal/infra/config"
)

const defaultShutdownGrace = 10 * time.Second

// App owns the FitGPT API server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves the API until ctx is cancelled, then drains in-flight requests.
// Streaming chat responses may run up to the write timeout, so the grace period
// follows it when it is longer than the default.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("fitgpt api starting",
			"address", a.cfg.HTTP.Address,
			"llm_enabled", strings.TrimSpace(a.cfg.LLM.APIKey) != "",
			"remote_suggestions", a.cfg.Recommendation.RemoteEnabled,
			"postgres", a.cfg.Storage.Postgres.DSN != "",
			"valkey", a.cfg.Storage.Valkey.Enabled,
			"object_storage", a.cfg.Storage.Images.Configured(),
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownGrace())
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdownGrace() time.Duration {
	if a.cfg.HTTP.WriteTimeout > defaultShutdownGrace {
		return a.cfg.HTTP.WriteTimeout
	}
	return defaultShutdownGrace
}
