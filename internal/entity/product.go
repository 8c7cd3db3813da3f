package entity

import "time"

type Product struct {
	ID                string    `json:"id" db:"id"`
	TenantID          string    `json:"tenant_id" db:"tenant_id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description" db:"description"`
	Category          string    `json:"category" db:"category"`
	Price             float64   `json:"price" db:"price"`
	Stock             int       `json:"stock" db:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
