package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/linemk/shop-catalog/internal/storage"
)

// Gateway: реализация storage.Gateway поверх *sql.DB
type Gateway struct {
	db       *sql.DB
	products storage.ProductStorage
	orders   storage.OrderStorage
}

var _ storage.Gateway = (*Gateway)(nil)

// NewGateway создаёт шлюз к Postgres
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{
		db:       db,
		products: NewProductRepository(db),
		orders:   NewOrderRepository(db),
	}
}

func (g *Gateway) Products() storage.ProductStorage { return g.products }

func (g *Gateway) Orders() storage.OrderStorage { return g.orders }

func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *Gateway) Close(_ context.Context) error {
	return g.db.Close()
}
