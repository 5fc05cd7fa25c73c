package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
)

// orderRepository: реализация OrderStorage на Postgres.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) storage.OrderStorage {
	return &orderRepository{db: db}
}

// CreateOrder вставляет заказ и его позиции в одной транзакции.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (id, user_id) VALUES ($1, $2)`, id.String(), order.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return "", storage.ErrNotAcknowledged
	}

	for i, item := range order.Items {
		query := `INSERT INTO order_items (order_id, position, product_id, qty) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, id.String(), i, item.ProductID, item.Qty); err != nil {
			return "", fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit order: %w", err)
	}
	return id.String(), nil
}

// GetOrderByID читает заказ и его позиции.
func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	row := r.db.QueryRowContext(ctx, "SELECT id, user_id FROM orders WHERE id = $1", id)
	if err := row.Scan(&order.ID, &order.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT product_id, qty FROM order_items WHERE order_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Qty); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return order, nil
}

// CountOrdersByUser считает заказы пользователя.
func (r *orderRepository) CountOrdersByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE user_id = $1", userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

const listOrdersByUserQuery = `
		SELECT o.id, o.user_id, i.product_id, i.qty, p.id, p.name, p.price, p.size, p.quantity
		FROM (SELECT id, user_id FROM orders WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3) o
		LEFT JOIN order_items i ON i.order_id = o.id
		LEFT JOIN products p ON p.id = i.product_id
		ORDER BY o.id, i.position`

// ListOrdersByUser возвращает страницу заказов пользователя с товарами, присоединёнными через LEFT JOIN.
// Позиции без товара возвращаются с Product == nil.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string, page models.Page) ([]*models.JoinedOrder, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersByUserQuery, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.JoinedOrder{}
	var current *models.JoinedOrder
	for rows.Next() {
		var (
			orderID, orderUserID              string
			productID                         sql.NullString
			qty                               sql.NullInt64
			pID, pName, pPrice, pSize, pQuant sql.NullString
		)
		if err := rows.Scan(&orderID, &orderUserID, &productID, &qty, &pID, &pName, &pPrice, &pSize, &pQuant); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		if current == nil || current.ID != orderID {
			current = &models.JoinedOrder{ID: orderID, UserID: orderUserID, Lines: []models.JoinedLine{}}
			orders = append(orders, current)
		}
		// заказ без позиций даёт одну строку с NULL в колонках order_items
		if !productID.Valid {
			continue
		}

		line := models.JoinedLine{ProductID: productID.String, Qty: int(qty.Int64)}
		if pID.Valid {
			line.Product = &models.Product{
				ID:    pID.String,
				Name:  pName.String,
				Price: pPrice.String,
				Sizes: models.ProductSize{Size: pSize.String, Quantity: pQuant.String},
			}
		}
		current.Lines = append(current.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}
