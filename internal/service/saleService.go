package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	"github.com/Kgadrw/profit-backend/internal/entity"
	"github.com/Kgadrw/profit-backend/pkg/kafka"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const saleEventsTopic = "sale-events"

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	producer    kafka.Producer
}

// NewSaleService creates the sale recording service. The producer may
// be nil when event streaming is disabled.
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	producer kafka.Producer,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		producer:    producer,
	}
}

func (s *saleService) RecordSale(ctx context.Context, tenantID string, req *RecordSaleRequest) (*entity.Sale, error) {
	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID, tenantID); err != nil {
			return nil, err
		}
	}

	sale := &entity.Sale{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		ClientID: req.ClientID,
		ItemType: req.ItemType,
		Quantity: req.Quantity,
		Note:     req.Note,
		SoldAt:   time.Now(),
	}
	if req.SoldAt != nil {
		sale.SoldAt = *req.SoldAt
	}

	switch req.ItemType {
	case entity.SaleItemProduct:
		if req.ProductID == nil {
			return nil, fmt.Errorf("%w: product_id is required for product sales", entity.ErrInvalidInput)
		}
		product, err := s.productRepo.GetByID(ctx, *req.ProductID, tenantID)
		if err != nil {
			return nil, err
		}

		sale.ProductID = req.ProductID
		sale.UnitPrice = product.Price
		if req.UnitPrice != nil {
			sale.UnitPrice = *req.UnitPrice
		}

		// Stock comes off before the sale row exists so two concurrent
		// sales cannot both claim the last unit.
		if err := s.productRepo.DecrementStock(ctx, *req.ProductID, tenantID, req.Quantity); err != nil {
			return nil, err
		}

	case entity.SaleItemService:
		if req.ServiceName == nil || *req.ServiceName == "" {
			return nil, fmt.Errorf("%w: service_name is required for service sales", entity.ErrInvalidInput)
		}
		if req.UnitPrice == nil {
			return nil, fmt.Errorf("%w: unit_price is required for service sales", entity.ErrInvalidInput)
		}
		sale.ServiceName = req.ServiceName
		sale.UnitPrice = *req.UnitPrice

	default:
		return nil, fmt.Errorf("%w: unknown item type %q", entity.ErrInvalidInput, req.ItemType)
	}

	sale.Total = sale.UnitPrice * float64(sale.Quantity)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.publishSaleEvent(sale)

	return sale, nil
}

// publishSaleEvent streams the recorded sale for downstream analytics.
// Best-effort only, a broker outage never fails the sale.
func (s *saleService) publishSaleEvent(sale *entity.Sale) {
	if s.producer == nil {
		return
	}

	event := map[string]interface{}{
		"sale_id":   sale.ID,
		"tenant_id": sale.TenantID,
		"item_type": sale.ItemType,
		"quantity":  sale.Quantity,
		"total":     sale.Total,
		"sold_at":   sale.SoldAt,
	}

	if err := s.producer.SendMessage(saleEventsTopic, event); err != nil {
		logrus.Errorf("Failed to publish sale event for sale %s: %v", sale.ID, err)
	}
}

func (s *saleService) GetSale(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return s.saleRepo.GetByID(ctx, id, tenantID)
}

func (s *saleService) GetSales(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	return s.saleRepo.GetByTenant(ctx, tenantID, from, to)
}
