package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument: представление товара в коллекции
type productDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Price string             `bson:"price"`
	Sizes models.ProductSize `bson:"sizes"`
}

func (d productDocument) toModel() *models.Product {
	return &models.Product{
		ID:    d.ID.Hex(),
		Name:  d.Name,
		Price: d.Price,
		Sizes: d.Sizes,
	}
}

// productRepository: реализация ProductStorage на MongoDB.
type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository создаёт репозиторий товаров поверх коллекции.
func NewProductRepository(coll *mongo.Collection) storage.ProductStorage {
	return &productRepository{coll: coll}
}

// CreateProduct вставляет документ товара без каких-либо проверок содержимого.
func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	doc := productDocument{
		Name:  product.Name,
		Price: product.Price,
		Sizes: product.Sizes,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
			return "", storage.ErrNotAcknowledged
		}
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok || id.IsZero() {
		return "", storage.ErrNotAcknowledged
	}
	return id.Hex(), nil
}

// CountProducts считает товары под фильтром.
func (r *productRepository) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, productQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// ListProducts возвращает окно товаров. Сортировка не задаётся, используется естественный порядок коллекции.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, error) {
	opts := options.Find().SetSkip(page.Offset).SetLimit(page.Limit)
	cur, err := r.coll.Find(ctx, productQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toModel())
	}
	return products, nil
}

// productQuery строит фильтр: подстрока имени без учёта регистра и точное совпадение размера.
func productQuery(filter models.ProductFilter) bson.D {
	query := bson.D{}
	if filter.Name != "" {
		// ввод клиента не должен попадать в $regex как шаблон
		query = append(query, bson.E{Key: "name", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Name),
			Options: "i",
		}})
	}
	if filter.Size != "" {
		query = append(query, bson.E{Key: "sizes.size", Value: filter.Size})
	}
	return query
}
