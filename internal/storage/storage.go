package storage

import (
	"context"
	"errors"

	"github.com/linemk/shop-catalog/internal/domain/models"
)

var (
	// ErrNotAcknowledged возвращается, если хранилище не подтвердило вставку
	ErrNotAcknowledged = errors.New("insert not acknowledged")
	// ErrOrderNotFound возвращается, если заказ не удалось прочитать по идентификатору
	ErrOrderNotFound = errors.New("order not found")
)

// ProductStorage описывает методы для работы с товарами.
type ProductStorage interface {
	// CreateProduct сохраняет товар как есть и возвращает присвоенный идентификатор.
	CreateProduct(ctx context.Context, product *models.Product) (string, error)
	// CountProducts считает товары, подходящие под фильтр.
	CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error)
	// ListProducts возвращает окно товаров в порядке вставки.
	ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, error)
}

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder сохраняет заказ одной вставкой и возвращает идентификатор.
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	// GetOrderByID читает заказ по идентификатору, ErrOrderNotFound если его нет.
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// CountOrdersByUser считает заказы пользователя.
	CountOrdersByUser(ctx context.Context, userID string) (int64, error)
	// ListOrdersByUser возвращает окно заказов пользователя, отсортированных по id,
	// где каждая позиция сопоставлена с товаром (nil, если товар не найден).
	ListOrdersByUser(ctx context.Context, userID string, page models.Page) ([]*models.JoinedOrder, error)
}

// Gateway объединяет доступ к товарам и заказам поверх одного подключения.
type Gateway interface {
	Products() ProductStorage
	Orders() OrderStorage
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
