package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/service"
)

// CreateOrderRequest: тело POST /orders
type CreateOrderRequest struct {
	UserID string             `json:"userId"`
	Items  []models.OrderItem `json:"items" validate:"required"`
}

// CreateOrderHandler обрабатывает запрос POST /orders.
// Существование товаров и остатки не проверяются.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error: items is required", http.StatusBadRequest)
			return
		}

		id, err := orderService.Create(r.Context(), models.Order{UserID: req.UserID, Items: req.Items})
		if err != nil {
			logger.Error("failed to create order", slog.Any("error", err))
			http.Error(w, "failed to create order", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusCreated, IDResponse{ID: id})
	}
}

// ListOrdersHandler обрабатывает запрос GET /orders/{userId}
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService, defaultLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")
		if userID == "" {
			logger.Error("userId parameter is missing")
			http.Error(w, "userId parameter is required", http.StatusBadRequest)
			return
		}

		page, err := parsePage(r, defaultLimit)
		if err != nil {
			logger.Warn("invalid pagination", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		list, err := orderService.ListByUser(r.Context(), userID, page)
		if err != nil {
			logger.Error("failed to list orders", slog.String("userID", userID), slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusOK, list)
	}
}
