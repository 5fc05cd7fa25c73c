package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/service"
)

// CreateProductRequest: тело POST /products.
// Содержимое полей не проверяется, требуется только наличие sizes.
type CreateProductRequest struct {
	Name  string              `json:"name"`
	Price string              `json:"price"`
	Sizes *models.ProductSize `json:"sizes" validate:"required"`
}

// CreateProductHandler обрабатывает запрос POST /products
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error: sizes is required", http.StatusBadRequest)
			return
		}

		id, err := productService.Create(r.Context(), models.Product{
			Name:  req.Name,
			Price: req.Price,
			Sizes: *req.Sizes,
		})
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			http.Error(w, "failed to create product", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusCreated, IDResponse{ID: id})
	}
}

// ListProductsHandler обрабатывает запрос GET /products?name=&size=&limit=&offset=
func ListProductsHandler(log *slog.Logger, productService service.ProductService, defaultLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		page, err := parsePage(r, defaultLimit)
		if err != nil {
			logger.Warn("invalid pagination", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter := models.ProductFilter{
			Name: r.URL.Query().Get("name"),
			Size: r.URL.Query().Get("size"),
		}

		list, err := productService.List(r.Context(), filter, page)
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusOK, list)
	}
}
