package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, client_id, item_type, product_id, service_name,
			quantity, unit_price, total, note, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	sale.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.TenantID,
		sale.ClientID,
		sale.ItemType,
		sale.ProductID,
		sale.ServiceName,
		sale.Quantity,
		sale.UnitPrice,
		sale.Total,
		sale.Note,
		sale.SoldAt,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sale: %v", err)
	}

	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id, tenantID string) (*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, client_id, item_type, product_id, service_name,
			quantity, unit_price, total, note, sold_at, created_at
		FROM sales
		WHERE id = $1 AND tenant_id = $2
	`

	sale, err := scanSale(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %v", err)
	}

	return sale, nil
}

func (r *saleRepository) GetByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, client_id, item_type, product_id, service_name,
			quantity, unit_price, total, note, sold_at, created_at
		FROM sales
		WHERE tenant_id = $1 AND sold_at >= $2 AND sold_at <= $3
		ORDER BY sold_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %v", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %v", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %v", err)
	}

	return sales, nil
}

func (r *saleRepository) GetSummary(ctx context.Context, tenantID string, from, to time.Time) (*entity.SalesSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(total) FILTER (WHERE item_type = 'product'), 0),
			COALESCE(SUM(total) FILTER (WHERE item_type = 'service'), 0)
		FROM sales
		WHERE tenant_id = $1 AND sold_at >= $2 AND sold_at <= $3
	`

	summary := &entity.SalesSummary{From: from, To: to}
	err := r.db.QueryRowContext(ctx, query, tenantID, from, to).Scan(
		&summary.SaleCount,
		&summary.TotalRevenue,
		&summary.ProductRevenue,
		&summary.ServiceRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %v", err)
	}

	return summary, nil
}

func (r *saleRepository) GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]*entity.ProductSalesCount, error) {
	query := `
		SELECT s.product_id, p.name, SUM(s.quantity), SUM(s.total)
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.tenant_id = $1 AND s.item_type = 'product' AND s.sold_at >= $2 AND s.sold_at <= $3
		GROUP BY s.product_id, p.name
		ORDER BY SUM(s.total) DESC
		LIMIT $4
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %v", err)
	}
	defer rows.Close()

	var counts []*entity.ProductSalesCount
	for rows.Next() {
		var c entity.ProductSalesCount
		if err := rows.Scan(&c.ProductID, &c.ProductName, &c.Quantity, &c.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %v", err)
		}
		counts = append(counts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top products: %v", err)
	}

	return counts, nil
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var sale entity.Sale
	err := row.Scan(
		&sale.ID,
		&sale.TenantID,
		&sale.ClientID,
		&sale.ItemType,
		&sale.ProductID,
		&sale.ServiceName,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.Total,
		&sale.Note,
		&sale.SoldAt,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
