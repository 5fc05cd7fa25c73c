package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/storage"
)

// ProductService определяет операции над товарами.
type ProductService interface {
	Create(ctx context.Context, product models.Product) (string, error)
	List(ctx context.Context, filter models.ProductFilter, page models.Page) (*ProductList, error)
}

// ProductList: страница товаров
type ProductList struct {
	Data []*models.Product `json:"data"`
	Page Pagination        `json:"page"`
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductService {
	return &productService{
		log:         log,
		productRepo: productRepo,
	}
}

// Create сохраняет товар как есть и возвращает его идентификатор
func (s *productService) Create(ctx context.Context, product models.Product) (string, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op))

	id, err := s.productRepo.CreateProduct(ctx, &product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to create product: %w", op, err)
	}

	logger.Debug("product created", slog.String("productID", id))
	return id, nil
}

// List считает подходящие товары, затем выбирает окно offset/limit
func (s *productService) List(ctx context.Context, filter models.ProductFilter, page models.Page) (*ProductList, error) {
	const op = "service.ProductService.List"
	logger := s.log.With(
		slog.String("op", op),
		slog.String("name", filter.Name),
		slog.String("size", filter.Size),
	)

	total, err := s.productRepo.CountProducts(ctx, filter)
	if err != nil {
		logger.Error("failed to count products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to count products: %w", op, err)
	}

	products, err := s.productRepo.ListProducts(ctx, filter, page)
	if err != nil {
		logger.Error("failed to list products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list products: %w", op, err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	return &ProductList{
		Data: products,
		Page: NewPagination(page.Offset, page.Limit, total),
	}, nil
}
