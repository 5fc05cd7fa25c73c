package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"userId"`
	Items  []models.OrderItem `bson:"items"`
}

// joinedOrderDocument: результат конвейера: заказ и найденные для него товары
type joinedOrderDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	UserID   string             `bson:"userId"`
	Items    []models.OrderItem `bson:"items"`
	Products []productDocument  `bson:"products"`
}

// orderRepository: реализация OrderStorage на MongoDB.
type orderRepository struct {
	coll               *mongo.Collection
	productsCollection string
}

// NewOrderRepository создаёт репозиторий заказов.
// productsCollection: имя коллекции товаров в той же БД, используется в $lookup.
func NewOrderRepository(coll *mongo.Collection, productsCollection string) storage.OrderStorage {
	return &orderRepository{coll: coll, productsCollection: productsCollection}
}

// CreateOrder вставляет заказ одним документом.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	items := order.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	res, err := r.coll.InsertOne(ctx, orderDocument{UserID: order.UserID, Items: items})
	if err != nil {
		if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
			return "", storage.ErrNotAcknowledged
		}
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok || id.IsZero() {
		return "", storage.ErrNotAcknowledged
	}
	return id.Hex(), nil
}

// GetOrderByID читает заказ по hex-идентификатору.
func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrOrderNotFound
	}

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return &models.Order{
		ID:     doc.ID.Hex(),
		UserID: doc.UserID,
		Items:  doc.Items,
	}, nil
}

// CountOrdersByUser считает заказы пользователя (точное совпадение userId).
func (r *orderRepository) CountOrdersByUser(ctx context.Context, userID string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{{Key: "userId", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

// ListOrdersByUser выполняет агрегацию с $lookup и сопоставляет позиции с товарами.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string, page models.Page) ([]*models.JoinedOrder, error) {
	cur, err := r.coll.Aggregate(ctx, ordersByUserPipeline(userID, page, r.productsCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	var docs []joinedOrderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]*models.JoinedOrder, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.join())
	}
	return orders, nil
}

// join сопоставляет каждую позицию с товаром из $lookup по идентификатору, порядок позиций сохраняется.
func (d joinedOrderDocument) join() *models.JoinedOrder {
	byID := make(map[primitive.ObjectID]*models.Product, len(d.Products))
	for _, p := range d.Products {
		byID[p.ID] = p.toModel()
	}

	lines := make([]models.JoinedLine, 0, len(d.Items))
	for _, item := range d.Items {
		line := models.JoinedLine{ProductID: item.ProductID, Qty: item.Qty}
		if oid, err := primitive.ObjectIDFromHex(item.ProductID); err == nil {
			line.Product = byID[oid]
		}
		lines = append(lines, line)
	}

	return &models.JoinedOrder{
		ID:     d.ID.Hex(),
		UserID: d.UserID,
		Lines:  lines,
	}
}
