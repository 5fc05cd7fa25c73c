package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger: всё, что умеет проверить доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler отвечает 200, если хранилище доступно, иначе 503
func HealthHandler(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HealthHandler"
		logger := log.With(slog.String("op", op))

		if err := pinger.Ping(r.Context()); err != nil {
			logger.Error("store ping failed", slog.Any("error", err))
			writeJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
