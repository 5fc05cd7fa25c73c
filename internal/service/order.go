package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrice: цена товара в хранилище не является числом
var ErrInvalidPrice = errors.New("stored product price is not numeric")

// OrderService определяет операции над заказами.
type OrderService interface {
	Create(ctx context.Context, order models.Order) (string, error)
	ListByUser(ctx context.Context, userID string, page models.Page) (*OrderList, error)
}

// OrderList: страница заказов пользователя
type OrderList struct {
	Data []models.EnrichedOrder `json:"data"`
	Page Pagination             `json:"page"`
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
	}
}

// Create вставляет заказ без проверки товаров и остатков, затем перечитывает его по идентификатору.
func (s *orderService) Create(ctx context.Context, order models.Order) (string, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", order.UserID))

	id, err := s.orderRepo.CreateOrder(ctx, &order)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	created, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Error("failed to re-read created order", slog.String("orderID", id), slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to re-read order %s: %w", op, id, err)
	}

	logger.Debug("order created", slog.String("orderID", created.ID))
	return created.ID, nil
}

// ListByUser возвращает страницу заказов пользователя с названиями товаров и суммой.
// Сумма считается при чтении по текущей цене товара.
func (s *orderService) ListByUser(ctx context.Context, userID string, page models.Page) (*OrderList, error) {
	const op = "service.OrderService.ListByUser"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))

	total, err := s.orderRepo.CountOrdersByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to count orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to count orders: %w", op, err)
	}

	joined, err := s.orderRepo.ListOrdersByUser(ctx, userID, page)
	if err != nil {
		logger.Error("failed to list orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list orders: %w", op, err)
	}

	orders := make([]models.EnrichedOrder, 0, len(joined))
	for _, o := range joined {
		enriched, err := s.enrich(logger, o)
		if err != nil {
			logger.Error("failed to compute order total", slog.String("orderID", o.ID), slog.Any("error", err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, enriched)
	}

	return &OrderList{
		Data: orders,
		Page: NewPagination(page.Offset, page.Limit, total),
	}, nil
}

// enrich превращает сопоставленный заказ в ответ API.
// Позиции без товара отбрасываются (как при inner join), сам заказ остаётся даже без позиций.
func (s *orderService) enrich(logger *slog.Logger, order *models.JoinedOrder) (models.EnrichedOrder, error) {
	total := decimal.Zero
	items := make([]models.EnrichedItem, 0, len(order.Lines))

	for _, line := range order.Lines {
		if line.Product == nil {
			logger.Warn("product not found, line item dropped",
				slog.String("orderID", order.ID),
				slog.String("productID", line.ProductID),
			)
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(line.Product.Price))
		if err != nil {
			return models.EnrichedOrder{}, fmt.Errorf("%w: product %s price %q", ErrInvalidPrice, line.Product.ID, line.Product.Price)
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Qty))))
		items = append(items, models.EnrichedItem{
			ProductDetails: models.ProductDetails{ID: line.Product.ID, Name: line.Product.Name},
			Qty:            line.Qty,
		})
	}

	return models.EnrichedOrder{
		ID:     order.ID,
		UserID: order.UserID,
		Items:  items,
		Total:  total.InexactFloat64(),
	}, nil
}
