package mongostore

import (
	"context"
	"fmt"

	"github.com/linemk/shop-catalog/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Gateway: шлюз к документной БД: одно подключение и две коллекции
type Gateway struct {
	client   *mongo.Client
	products storage.ProductStorage
	orders   storage.OrderStorage
}

var _ storage.Gateway = (*Gateway)(nil)

// Connect открывает подключение к MongoDB по URI (Stable API v1)
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return client, nil
}

// NewGateway собирает репозитории поверх уже открытого клиента
func NewGateway(client *mongo.Client, database, productsCollection, ordersCollection string) *Gateway {
	db := client.Database(database)
	return &Gateway{
		client:   client,
		products: NewProductRepository(db.Collection(productsCollection)),
		orders:   NewOrderRepository(db.Collection(ordersCollection), productsCollection),
	}
}

func (g *Gateway) Products() storage.ProductStorage { return g.products }

func (g *Gateway) Orders() storage.OrderStorage { return g.orders }

// Ping проверяет доступность первичного узла
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, readpref.Primary())
}

func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}
