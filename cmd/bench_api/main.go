// Package main kb-bench Results API
// @title kb-bench Results API
// @version 1.0
// @description Read-only access to benchmark reports and per-adapter metric history
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	_ "github.com/DjordjeVuckovic/kb-bench/docs"
	"github.com/DjordjeVuckovic/kb-bench/internal/api/router"
	"github.com/DjordjeVuckovic/kb-bench/internal/api/server"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/history"
	"github.com/DjordjeVuckovic/kb-bench/internal/config"
	pkgserver "github.com/DjordjeVuckovic/kb-bench/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	var (
		healthChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
		store         *history.RedisStore
	)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store, err = history.NewRedisStore(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			slog.Error("Failed to connect history store", "error", err)
			os.Exit(1)
		}
		healthChecker = store
	}

	s := server.New(&cfg.API, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "kb-bench results API is running")
	})

	router.NewReportRouter(s.Echo, cfg.ReportDir).Bind()
	if store != nil {
		router.NewHistoryRouter(s.Echo, store).Bind()
		slog.Info("History endpoints enabled")
	} else {
		slog.Info("History endpoints disabled, KBBENCH_REDIS_URL not set")
	}

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("Failed to close history store", "error", err)
			}
		}
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
