package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
)

// productRepository: реализация ProductStorage на Postgres.
type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт новый репозиторий товаров.
func NewProductRepository(db *sql.DB) storage.ProductStorage {
	return &productRepository{db: db}
}

// CreateProduct вставляет товар. Идентификатор UUIDv7 растёт вместе со временем вставки.
func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate product id: %w", err)
	}

	query := `INSERT INTO products (id, name, price, size, quantity) VALUES ($1, $2, $3, $4, $5)`
	res, err := r.db.ExecContext(ctx, query, id.String(), product.Name, product.Price, product.Sizes.Size, product.Sizes.Quantity)
	if err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return "", storage.ErrNotAcknowledged
	}
	return id.String(), nil
}

// CountProducts считает товары под фильтром.
func (r *productRepository) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	where, args := productWhere(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// ListProducts возвращает окно товаров в порядке вставки.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, error) {
	where, args := productWhere(filter)
	args = append(args, page.Limit, page.Offset)
	query := fmt.Sprintf(
		"SELECT id, name, price, size, quantity FROM products%s ORDER BY seq LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Sizes.Size, &p.Sizes.Quantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// productWhere строит условие WHERE: ILIKE по подстроке имени и точное совпадение размера.
func productWhere(filter models.ProductFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Name)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Size != "" {
		args = append(args, filter.Size)
		conds = append(conds, fmt.Sprintf("size = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
