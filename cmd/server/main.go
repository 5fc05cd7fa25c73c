package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/linemk/shop-catalog/internal/app"
	"github.com/linemk/shop-catalog/internal/config"
	"github.com/linemk/shop-catalog/internal/lib/diagnostics"
	"github.com/linemk/shop-catalog/internal/lib/logger"
	"github.com/linemk/shop-catalog/internal/lib/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// подключение к хранилищу создаётся один раз на процесс и передаётся в сервисы явно
	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.Store.Close(closeCtx); err != nil {
			log.Error("failed to close store", slog.Any("error", err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := app.NewRouter(log, application.Store, metrics.NewHTTPMetrics(registry), cfg.Pagination.DefaultLimit)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	var diag *diagnostics.Server
	if cfg.Diagnostics.Enabled {
		diag = diagnostics.NewServer(cfg.Diagnostics.Address, registry)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "api server")
		}
		return nil
	})
	if diag != nil {
		group.Go(func() error {
			log.Info("starting diagnostics server", slog.String("address", diag.Addr()))
			if err := diag.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrap(err, "diagnostics server")
			}
			return nil
		})
	}

	// graceful shutdown
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", slog.Any("error", err))
		}
		if diag != nil {
			if err := diag.Shutdown(shutdownCtx); err != nil {
				log.Error("diagnostics shutdown failed", slog.Any("error", err))
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
