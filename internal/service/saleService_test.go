package service

import (
	"context"
	"testing"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, product := range products {
		repo.products[product.ID] = product
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok || product.TenantID != tenantID {
		return nil, entity.ErrProductNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetByTenant(_ context.Context, tenantID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, product := range r.products {
		if product.TenantID == tenantID {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return entity.ErrProductNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id, tenantID string) error {
	product, ok := r.products[id]
	if !ok || product.TenantID != tenantID {
		return entity.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id, tenantID string, quantity int) error {
	product, ok := r.products[id]
	if !ok || product.TenantID != tenantID {
		return entity.ErrProductNotFound
	}
	if product.Stock < quantity {
		return entity.ErrInsufficientStock
	}
	product.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context, tenantID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, product := range r.products {
		if product.TenantID == tenantID && product.Stock <= product.LowStockThreshold {
			out = append(out, product)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales []*entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Sale, error) {
	for _, sale := range r.sales {
		if sale.ID == id && sale.TenantID == tenantID {
			return sale, nil
		}
	}
	return nil, entity.ErrSaleNotFound
}

func (r *fakeSaleRepo) GetByTenant(_ context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.sales {
		if sale.TenantID == tenantID && !sale.SoldAt.Before(from) && !sale.SoldAt.After(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) GetSummary(_ context.Context, tenantID string, from, to time.Time) (*entity.SalesSummary, error) {
	return &entity.SalesSummary{}, nil
}

func (r *fakeSaleRepo) GetTopProducts(_ context.Context, tenantID string, from, to time.Time, limit int) ([]*entity.ProductSalesCount, error) {
	return nil, nil
}

type recordingProducer struct {
	topics   []string
	messages []interface{}
}

func (p *recordingProducer) SendMessage(topic string, message interface{}) error {
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, message)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func saleFixtures() (*fakeSaleRepo, *fakeProductRepo, *fakeClientRepo, *recordingProducer) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo(&entity.Product{
		ID:       "prod-1",
		TenantID: testTenantID,
		Name:     "Shampoo",
		Price:    12.50,
		Stock:    10,
	})
	clientRepo := newFakeClientRepo(&entity.Client{
		ID:       testClientID,
		TenantID: testTenantID,
		Name:     "Acme Ltd",
	})
	return saleRepo, productRepo, clientRepo, &recordingProducer{}
}

func TestRecordSale_Product(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements stock and totals from the product price", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		productID := "prod-1"
		sale, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:  entity.SaleItemProduct,
			ProductID: &productID,
			Quantity:  3,
		})

		require.NoError(t, err)
		assert.Equal(t, 12.50, sale.UnitPrice)
		assert.Equal(t, 37.50, sale.Total)
		assert.Equal(t, 7, productRepo.products["prod-1"].Stock)
		require.Len(t, saleRepo.sales, 1)

		require.Len(t, producer.topics, 1)
		assert.Equal(t, "sale-events", producer.topics[0])
	})

	t.Run("explicit unit price overrides the catalog price", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		productID := "prod-1"
		price := 9.99
		sale, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:  entity.SaleItemProduct,
			ProductID: &productID,
			Quantity:  2,
			UnitPrice: &price,
		})

		require.NoError(t, err)
		assert.Equal(t, 9.99, sale.UnitPrice)
		assert.Equal(t, 19.98, sale.Total)
	})

	t.Run("insufficient stock fails without recording a sale", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		productID := "prod-1"
		_, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:  entity.SaleItemProduct,
			ProductID: &productID,
			Quantity:  11,
		})

		assert.ErrorIs(t, err, entity.ErrInsufficientStock)
		assert.Empty(t, saleRepo.sales)
		assert.Equal(t, 10, productRepo.products["prod-1"].Stock)
		assert.Empty(t, producer.topics)
	})

	t.Run("missing product id is rejected", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		_, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType: entity.SaleItemProduct,
			Quantity: 1,
		})

		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("another tenant's product is invisible", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		productID := "prod-1"
		_, err := svc.RecordSale(ctx, "tenant-2", &RecordSaleRequest{
			ItemType:  entity.SaleItemProduct,
			ProductID: &productID,
			Quantity:  1,
		})

		assert.ErrorIs(t, err, entity.ErrProductNotFound)
	})
}

func TestRecordSale_Service(t *testing.T) {
	ctx := context.Background()

	t.Run("service sale needs no stock", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		name := "Haircut"
		price := 25.0
		clientID := testClientID
		sale, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ClientID:    &clientID,
			ItemType:    entity.SaleItemService,
			ServiceName: &name,
			Quantity:    1,
			UnitPrice:   &price,
		})

		require.NoError(t, err)
		assert.Equal(t, 25.0, sale.Total)
		require.NotNil(t, sale.ServiceName)
		assert.Equal(t, "Haircut", *sale.ServiceName)
	})

	t.Run("service sale requires a name and a price", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, producer := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, producer)

		price := 25.0
		_, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:  entity.SaleItemService,
			Quantity:  1,
			UnitPrice: &price,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)

		name := "Haircut"
		_, err = svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:    entity.SaleItemService,
			ServiceName: &name,
			Quantity:    1,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("a nil producer is fine", func(t *testing.T) {
		saleRepo, productRepo, clientRepo, _ := saleFixtures()
		svc := NewSaleService(saleRepo, productRepo, clientRepo, nil)

		name := "Consultation"
		price := 40.0
		_, err := svc.RecordSale(ctx, testTenantID, &RecordSaleRequest{
			ItemType:    entity.SaleItemService,
			ServiceName: &name,
			Quantity:    2,
			UnitPrice:   &price,
		})
		require.NoError(t, err)
	})
}
