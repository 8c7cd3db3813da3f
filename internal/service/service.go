package service

import (
	"context"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

// NotificationKind distinguishes the advance notice from the due-date
// notification of the same occurrence.
type NotificationKind string

const (
	NotificationAdvance NotificationKind = "advance"
	NotificationDue     NotificationKind = "due"
)

// Notifier dispatches reminder notifications. Every call succeeds or
// fails independently; callers treat failures as non-fatal.
type Notifier interface {
	NotifyUserOfReminder(ctx context.Context, user *entity.User, reminder *entity.Reminder, kind NotificationKind) error
	NotifyClientOfReminder(ctx context.Context, client *entity.Client, reminder *entity.Reminder, kind NotificationKind) error
	NotifyUserOfCompletion(ctx context.Context, user *entity.User, reminder *entity.Reminder, message string) error
	NotifyClientOfCompletion(ctx context.Context, client *entity.Client, reminder *entity.Reminder, message string) error
}

type ReminderService interface {
	// Основные операции
	CreateReminder(ctx context.Context, tenantID string, req *CreateReminderRequest) (*entity.Reminder, error)
	GetReminder(ctx context.Context, tenantID, id string) (*entity.Reminder, error)
	GetReminders(ctx context.Context, tenantID string, status *entity.ReminderStatus) ([]*entity.Reminder, error)
	UpdateReminder(ctx context.Context, tenantID, id string, req *UpdateReminderRequest) (*entity.Reminder, error)
	DeleteReminder(ctx context.Context, tenantID, id string) error

	// Lifecycle transitions
	CompleteReminder(ctx context.Context, tenantID, id string, req *CompleteReminderRequest) (*entity.Reminder, error)
	CancelReminder(ctx context.Context, tenantID, id string) (*entity.Reminder, error)

	// ProcessDueReminders runs one sweep tick over every pending
	// reminder across all tenants.
	ProcessDueReminders(ctx context.Context, now time.Time) error
}

type ClientService interface {
	CreateClient(ctx context.Context, tenantID string, req *CreateClientRequest) (*entity.Client, error)
	GetClient(ctx context.Context, tenantID, id string) (*entity.Client, error)
	GetClients(ctx context.Context, tenantID string) ([]*entity.Client, error)
	UpdateClient(ctx context.Context, tenantID, id string, req *UpdateClientRequest) (*entity.Client, error)
	DeleteClient(ctx context.Context, tenantID, id string) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, tenantID string, req *CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetProducts(ctx context.Context, tenantID string) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, tenantID, id string, req *UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, tenantID, id string) error
	GetLowStockProducts(ctx context.Context, tenantID string) ([]*entity.Product, error)
}

type SaleService interface {
	RecordSale(ctx context.Context, tenantID string, req *RecordSaleRequest) (*entity.Sale, error)
	GetSale(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	GetSales(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	LinkTelegram(ctx context.Context, userID, telegramID string) error
}

type ReportService interface {
	GetSalesSummary(ctx context.Context, tenantID string, from, to time.Time) (*entity.SalesSummary, error)
	GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]*entity.ProductSalesCount, error)
	GetUpcomingReminders(ctx context.Context, tenantID string, days int) ([]*entity.Reminder, error)
	GetDashboard(ctx context.Context, tenantID string) (*Dashboard, error)
}

// CreateReminderRequest представляет данные для создания напоминания
type CreateReminderRequest struct {
	Title                   string                   `json:"title" binding:"required,min=1,max=255"`
	Description             string                   `json:"description" binding:"max=2000"`
	ClientID                *string                  `json:"client_id"`
	DueDate                 time.Time                `json:"due_date" binding:"required"`
	Frequency               entity.ReminderFrequency `json:"frequency" binding:"required"`
	Amount                  *float64                 `json:"amount" binding:"omitempty,gte=0"`
	NotifyUser              bool                     `json:"notify_user"`
	NotifyClient            bool                     `json:"notify_client"`
	UserMessage             *string                  `json:"user_notification_message"`
	ClientMessage           *string                  `json:"client_notification_message"`
	AdvanceNotificationDays int                      `json:"advance_notification_days" binding:"gte=0"`
	RepeatUntil             *time.Time               `json:"repeat_until"`
}

// UpdateReminderRequest is an explicit partial update: nil fields are
// left untouched. Reminder mutation never accepts an open map.
type UpdateReminderRequest struct {
	Title                   *string                   `json:"title" binding:"omitempty,min=1,max=255"`
	Description             *string                   `json:"description" binding:"omitempty,max=2000"`
	ClientID                *string                   `json:"client_id"`
	DueDate                 *time.Time                `json:"due_date"`
	Frequency               *entity.ReminderFrequency `json:"frequency"`
	Amount                  *float64                  `json:"amount" binding:"omitempty,gte=0"`
	NotifyUser              *bool                     `json:"notify_user"`
	NotifyClient            *bool                     `json:"notify_client"`
	UserMessage             *string                   `json:"user_notification_message"`
	ClientMessage           *string                   `json:"client_notification_message"`
	AdvanceNotificationDays *int                      `json:"advance_notification_days" binding:"omitempty,gte=0"`
	RepeatUntil             *time.Time                `json:"repeat_until"`
}

// CompleteReminderRequest представляет данные для завершения напоминания
type CompleteReminderRequest struct {
	CompletionMessage *string `json:"completion_message" binding:"omitempty,max=2000"`
	NotifyUser        bool    `json:"notify_user"`
	NotifyClient      bool    `json:"notify_client"`
}

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Category string `json:"category" binding:"max=100"`
	Notes    string `json:"notes" binding:"max=5000"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Category *string `json:"category" binding:"omitempty,max=100"`
	Notes    *string `json:"notes" binding:"omitempty,max=5000"`
}

type CreateProductRequest struct {
	Name              string  `json:"name" binding:"required,min=1,max=255"`
	Description       string  `json:"description" binding:"max=2000"`
	Category          string  `json:"category" binding:"max=100"`
	Price             float64 `json:"price" binding:"gte=0"`
	Stock             int     `json:"stock" binding:"gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description       *string  `json:"description" binding:"omitempty,max=2000"`
	Category          *string  `json:"category" binding:"omitempty,max=100"`
	Price             *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock             *int     `json:"stock" binding:"omitempty,gte=0"`
	LowStockThreshold *int     `json:"low_stock_threshold" binding:"omitempty,gte=0"`
}

// RecordSaleRequest представляет данные для записи продажи
type RecordSaleRequest struct {
	ClientID    *string             `json:"client_id"`
	ItemType    entity.SaleItemType `json:"item_type" binding:"required,oneof=product service"`
	ProductID   *string             `json:"product_id"`
	ServiceName *string             `json:"service_name"`
	Quantity    int                 `json:"quantity" binding:"required,min=1"`
	UnitPrice   *float64            `json:"unit_price" binding:"omitempty,gte=0"`
	Note        string              `json:"note" binding:"max=2000"`
	SoldAt      *time.Time          `json:"sold_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Dashboard is the admin console's one-screen projection.
type Dashboard struct {
	Today             *entity.SalesSummary       `json:"today"`
	Month             *entity.SalesSummary       `json:"month"`
	ClientCount       int                        `json:"client_count"`
	LowStockProducts  []*entity.Product          `json:"low_stock_products"`
	UpcomingReminders []*entity.Reminder         `json:"upcoming_reminders"`
	TopProducts       []*entity.ProductSalesCount `json:"top_products"`
}
