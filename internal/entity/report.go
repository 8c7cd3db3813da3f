package entity

import "time"

// SalesSummary is an aggregate over recorded sales in a period.
type SalesSummary struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	TotalRevenue   float64   `json:"total_revenue"`
	SaleCount      int64     `json:"sale_count"`
	ProductRevenue float64   `json:"product_revenue"`
	ServiceRevenue float64   `json:"service_revenue"`
}

type ProductSalesCount struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}
