package repository

import (
	"context"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

type ReminderRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, reminder *entity.Reminder) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Reminder, error)
	Update(ctx context.Context, reminder *entity.Reminder) error
	Delete(ctx context.Context, id, tenantID string) error

	// Query operations
	GetByTenant(ctx context.Context, tenantID string) ([]*entity.Reminder, error)
	GetByTenantAndStatus(ctx context.Context, tenantID string, status entity.ReminderStatus) ([]*entity.Reminder, error)
	GetUpcoming(ctx context.Context, tenantID string, until time.Time) ([]*entity.Reminder, error)

	// Sweep operations: cross-tenant, used only by the schedule engine
	GetPending(ctx context.Context) ([]*entity.Reminder, error)
	UpdateLastNotified(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id, tenantID string, status entity.ReminderStatus) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Client, error)
	// GetByIDAny looks a client up without tenant scoping; used by the
	// sweep, which runs across all tenants.
	GetByIDAny(ctx context.Context, id string) (*entity.Client, error)
	GetByTenant(ctx context.Context, tenantID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id, tenantID string) error
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Product, error)
	GetByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id, tenantID string) error

	// DecrementStock atomically reduces stock and fails with
	// entity.ErrInsufficientStock when not enough is left.
	DecrementStock(ctx context.Context, id, tenantID string, quantity int) error
	GetLowStock(ctx context.Context, tenantID string) ([]*entity.Product, error)
}

type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Sale, error)
	GetByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error)
	GetSummary(ctx context.Context, tenantID string, from, to time.Time) (*entity.SalesSummary, error)
	GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]*entity.ProductSalesCount, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateTelegramID(ctx context.Context, userID, telegramID string) error
}
