package service_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/linemk/shop-catalog/internal/domain/models"
	"github.com/linemk/shop-catalog/internal/service"
	"github.com/linemk/shop-catalog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products []*models.Product
	err      error
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	p := *product
	p.ID = fmt.Sprintf("p%d", len(f.products)+1)
	f.products = append(f.products, &p)
	return p.ID, nil
}

func (f *fakeProductRepo) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	return int64(len(f.products)), f.err
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	start := min(page.Offset, int64(len(f.products)))
	end := min(start+page.Limit, int64(len(f.products)))
	return f.products[start:end], nil
}

type fakeOrderRepo struct {
	orders    map[string]*models.Order
	joined    []*models.JoinedOrder
	total     int64
	createErr error
	lostOrder bool // эмулирует заказ, который не удаётся перечитать
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := fmt.Sprintf("o%d", len(f.orders)+1)
	o := *order
	o.ID = id
	if !f.lostOrder {
		f.orders[id] = &o
	}
	return id, nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) CountOrdersByUser(ctx context.Context, userID string) (int64, error) {
	return f.total, nil
}

func (f *fakeOrderRepo) ListOrdersByUser(ctx context.Context, userID string, page models.Page) ([]*models.JoinedOrder, error) {
	return f.joined, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		offset, limit, tot int64
		wantNext, wantPrev *int64
	}{
		{name: "last page", offset: 20, limit: 10, tot: 25, wantNext: nil, wantPrev: ptr(10)},
		{name: "first page", offset: 0, limit: 10, tot: 25, wantNext: ptr(10), wantPrev: nil},
		{name: "middle page", offset: 10, limit: 10, tot: 25, wantNext: ptr(20), wantPrev: ptr(0)},
		{name: "exact end", offset: 10, limit: 10, tot: 20, wantNext: nil, wantPrev: ptr(0)},
		{name: "empty", offset: 0, limit: 10, tot: 0, wantNext: nil, wantPrev: nil},
		{name: "offset not aligned", offset: 5, limit: 10, tot: 25, wantNext: ptr(15), wantPrev: nil},
		{name: "huge limit", offset: 1, limit: math.MaxInt64, tot: 5, wantNext: nil, wantPrev: nil},
		{name: "huge offset", offset: math.MaxInt64, limit: 10, tot: 5, wantNext: nil, wantPrev: ptr(math.MaxInt64 - 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := service.NewPagination(tt.offset, tt.limit, tt.tot)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.wantNext, p.Next)
			assert.Equal(t, tt.wantPrev, p.Previous)
		})
	}
}

func ptr(v int64) *int64 { return &v }

func TestProductService_CreateThenList(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := service.NewProductService(newLogger(), repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, models.Product{
		Name:  "Red Shoes",
		Price: "5.00",
		Sizes: models.ProductSize{Size: "M", Quantity: "3"},
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, models.ProductFilter{}, models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, id, list.Data[0].ID, "created id should match listed id")
	assert.Equal(t, "Red Shoes", list.Data[0].Name)
	assert.Nil(t, list.Page.Next)
	assert.Nil(t, list.Page.Previous)
	assert.Equal(t, int64(10), list.Page.Limit)
}

func TestProductService_CreateStoreFailure(t *testing.T) {
	repo := &fakeProductRepo{err: storage.ErrNotAcknowledged}
	svc := service.NewProductService(newLogger(), repo)

	id, err := svc.Create(context.Background(), models.Product{Name: "Hat"})
	assert.ErrorIs(t, err, storage.ErrNotAcknowledged)
	assert.Empty(t, id)
}

func TestProductService_ListEmptyIsNotNil(t *testing.T) {
	svc := service.NewProductService(newLogger(), &fakeProductRepo{})

	list, err := svc.List(context.Background(), models.ProductFilter{Name: "none"}, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Empty(t, list.Data)
}

func TestOrderService_Create(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := service.NewOrderService(newLogger(), repo)

	id, err := svc.Create(context.Background(), models.Order{
		UserID: "u1",
		Items:  []models.OrderItem{{ProductID: "p1", Qty: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", id)
}

func TestOrderService_CreateReReadFails(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.lostOrder = true
	svc := service.NewOrderService(newLogger(), repo)

	id, err := svc.Create(context.Background(), models.Order{UserID: "u1"})
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.Empty(t, id)
}

func TestOrderService_CreateInsertFails(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErr = errors.New("db error")
	svc := service.NewOrderService(newLogger(), repo)

	_, err := svc.Create(context.Background(), models.Order{UserID: "u1"})
	assert.Error(t, err)
}

func TestOrderService_ListByUser_Total(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.total = 1
	repo.joined = []*models.JoinedOrder{{
		ID:     "o1",
		UserID: "u1",
		Lines: []models.JoinedLine{
			{ProductID: "p1", Qty: 2, Product: &models.Product{ID: "p1", Name: "Socks", Price: "5.00"}},
			{ProductID: "p2", Qty: 3, Product: &models.Product{ID: "p2", Name: "Hat", Price: "10.00"}},
		},
	}}
	svc := service.NewOrderService(newLogger(), repo)

	list, err := svc.ListByUser(context.Background(), "u1", models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	order := list.Data[0]
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, 40.0, order.Total)
	assert.Equal(t, []models.EnrichedItem{
		{ProductDetails: models.ProductDetails{ID: "p1", Name: "Socks"}, Qty: 2},
		{ProductDetails: models.ProductDetails{ID: "p2", Name: "Hat"}, Qty: 3},
	}, order.Items)
}

func TestOrderService_ListByUser_DecimalPrecision(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.total = 1
	repo.joined = []*models.JoinedOrder{{
		ID: "o1", UserID: "u1",
		Lines: []models.JoinedLine{
			{ProductID: "p1", Qty: 3, Product: &models.Product{ID: "p1", Name: "Pin", Price: "0.10"}},
			{ProductID: "p2", Qty: 1, Product: &models.Product{ID: "p2", Name: "Pen", Price: "0.20"}},
		},
	}}
	svc := service.NewOrderService(newLogger(), repo)

	list, err := svc.ListByUser(context.Background(), "u1", models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.5, list.Data[0].Total)
}

func TestOrderService_ListByUser_MissingProductDropsItem(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.total = 2
	repo.joined = []*models.JoinedOrder{
		{
			ID: "o1", UserID: "u1",
			Lines: []models.JoinedLine{
				{ProductID: "p1", Qty: 2, Product: &models.Product{ID: "p1", Name: "Socks", Price: "5.00"}},
				{ProductID: "missing", Qty: 7},
			},
		},
		{
			ID: "o2", UserID: "u1",
			Lines: []models.JoinedLine{{ProductID: "missing", Qty: 1}},
		},
	}
	svc := service.NewOrderService(newLogger(), repo)

	list, err := svc.ListByUser(context.Background(), "u1", models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 2, "orders are kept even when every product is missing")

	require.Len(t, list.Data[0].Items, 1)
	assert.Equal(t, "p1", list.Data[0].Items[0].ProductDetails.ID)
	assert.Equal(t, 10.0, list.Data[0].Total)

	assert.NotNil(t, list.Data[1].Items)
	assert.Empty(t, list.Data[1].Items)
	assert.Zero(t, list.Data[1].Total)
}

func TestOrderService_ListByUser_InvalidPrice(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.total = 1
	repo.joined = []*models.JoinedOrder{{
		ID: "o1", UserID: "u1",
		Lines: []models.JoinedLine{
			{ProductID: "p1", Qty: 1, Product: &models.Product{ID: "p1", Name: "Odd", Price: "free"}},
		},
	}}
	svc := service.NewOrderService(newLogger(), repo)

	list, err := svc.ListByUser(context.Background(), "u1", models.Page{Limit: 10})
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
	assert.Nil(t, list)
}

func TestOrderService_ListByUser_NoOrders(t *testing.T) {
	svc := service.NewOrderService(newLogger(), newFakeOrderRepo())

	list, err := svc.ListByUser(context.Background(), "nobody", models.Page{Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Empty(t, list.Data)
	assert.Nil(t, list.Page.Next)
	assert.Nil(t, list.Page.Previous)
	assert.Equal(t, int64(5), list.Page.Limit)
}
