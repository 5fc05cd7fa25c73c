package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/shop-catalog/internal/app/handlers"
	"github.com/linemk/shop-catalog/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-catalog/internal/lib/metrics"
	"github.com/linemk/shop-catalog/internal/service"
	"github.com/linemk/shop-catalog/internal/storage"
)

// NewRouter собирает сервисы поверх шлюза и регистрирует эндпоинты
func NewRouter(log *slog.Logger, store storage.Gateway, httpMetrics *metrics.HTTPMetrics, defaultLimit int64) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	if httpMetrics != nil {
		router.Use(httpMetrics.Middleware)
	}

	productService := service.NewProductService(log, store.Products())
	orderService := service.NewOrderService(log, store.Orders())

	router.Get("/health", handlers.HealthHandler(log, store))

	router.Post("/products", handlers.CreateProductHandler(log, productService))
	router.Get("/products", handlers.ListProductsHandler(log, productService, defaultLimit))

	router.Post("/orders", handlers.CreateOrderHandler(log, orderService))
	// заказы пользователя с названиями товаров и суммой
	router.Get("/orders/{userId}", handlers.ListOrdersHandler(log, orderService, defaultLimit))

	return router
}
