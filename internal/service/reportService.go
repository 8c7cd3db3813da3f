package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/Kgadrw/profit-backend/internal/database/postgres"
	"github.com/Kgadrw/profit-backend/internal/entity"

	"github.com/sirupsen/logrus"
)

// ReportCache caches computed report projections. A cache miss or a
// cache failure always falls through to the store.
type ReportCache interface {
	GetSalesSummary(ctx context.Context, key string) (*entity.SalesSummary, error)
	SetSalesSummary(ctx context.Context, key string, summary *entity.SalesSummary) error
}

type reportService struct {
	saleRepo     repository.SaleRepository
	reminderRepo repository.ReminderRepository
	clientRepo   repository.ClientRepository
	productRepo  repository.ProductRepository
	cache        ReportCache
}

// NewReportService creates the read-only reporting service. The cache
// may be nil when redis is not configured.
func NewReportService(
	saleRepo repository.SaleRepository,
	reminderRepo repository.ReminderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	cache ReportCache,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		reminderRepo: reminderRepo,
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

func (s *reportService) GetSalesSummary(ctx context.Context, tenantID string, from, to time.Time) (*entity.SalesSummary, error) {
	key := summaryCacheKey(tenantID, from, to)

	if s.cache != nil {
		if cached, err := s.cache.GetSalesSummary(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	summary, err := s.saleRepo.GetSummary(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSalesSummary(ctx, key, summary); err != nil {
			logrus.Errorf("Failed to cache sales summary for tenant %s: %v", tenantID, err)
		}
	}

	return summary, nil
}

func (s *reportService) GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]*entity.ProductSalesCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.saleRepo.GetTopProducts(ctx, tenantID, from, to, limit)
}

func (s *reportService) GetUpcomingReminders(ctx context.Context, tenantID string, days int) ([]*entity.Reminder, error) {
	if days <= 0 {
		days = 7
	}
	until := time.Now().AddDate(0, 0, days)
	return s.reminderRepo.GetUpcoming(ctx, tenantID, until)
}

func (s *reportService) GetDashboard(ctx context.Context, tenantID string) (*Dashboard, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.GetSalesSummary(ctx, tenantID, startOfDay, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	month, err := s.GetSalesSummary(ctx, tenantID, startOfMonth, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	clientCount, err := s.clientRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	upcoming, err := s.reminderRepo.GetUpcoming(ctx, tenantID, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	topProducts, err := s.saleRepo.GetTopProducts(ctx, tenantID, startOfMonth, now, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &Dashboard{
		Today:             today,
		Month:             month,
		ClientCount:       clientCount,
		LowStockProducts:  lowStock,
		UpcomingReminders: upcoming,
		TopProducts:       topProducts,
	}, nil
}

func summaryCacheKey(tenantID string, from, to time.Time) string {
	return fmt.Sprintf("report:summary:%s:%d:%d", tenantID, from.Unix(), to.Unix())
}
