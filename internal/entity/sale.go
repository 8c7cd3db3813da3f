package entity

import "time"

type SaleItemType string

const (
	SaleItemProduct SaleItemType = "product"
	SaleItemService SaleItemType = "service"
)

// Sale is a single recorded sale line: either a stocked product or a
// free-form service (a haircut, a consultation, ...).
type Sale struct {
	ID          string       `json:"id" db:"id"`
	TenantID    string       `json:"tenant_id" db:"tenant_id"`
	ClientID    *string      `json:"client_id,omitempty" db:"client_id"`
	ItemType    SaleItemType `json:"item_type" db:"item_type"`
	ProductID   *string      `json:"product_id,omitempty" db:"product_id"`
	ServiceName *string      `json:"service_name,omitempty" db:"service_name"`
	Quantity    int          `json:"quantity" db:"quantity"`
	UnitPrice   float64      `json:"unit_price" db:"unit_price"`
	Total       float64      `json:"total" db:"total"`
	Note        string       `json:"note" db:"note"`
	SoldAt      time.Time    `json:"sold_at" db:"sold_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
