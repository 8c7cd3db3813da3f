package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, name, description, category, price, stock, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.TenantID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Stock,
		product.LowStockThreshold,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %v", err)
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id, tenantID string) (*entity.Product, error) {
	query := `
		SELECT id, tenant_id, name, description, category, price, stock, low_stock_threshold, created_at, updated_at
		FROM products
		WHERE id = $1 AND tenant_id = $2
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %v", err)
	}

	return product, nil
}

func (r *productRepository) GetByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	query := `
		SELECT id, tenant_id, name, description, category, price, stock, low_stock_threshold, created_at, updated_at
		FROM products
		WHERE tenant_id = $1
		ORDER BY name
	`
	return r.queryProducts(ctx, query, tenantID)
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, category = $5, price = $6, stock = $7, low_stock_threshold = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.TenantID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Stock,
		product.LowStockThreshold,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id, tenantID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrProductNotFound
	}

	return nil
}

// DecrementStock updates stock in a single conditional statement so two
// concurrent sales can never oversell the same product.
func (r *productRepository) DecrementStock(ctx context.Context, id, tenantID string, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $3, updated_at = $4
		WHERE id = $1 AND tenant_id = $2 AND stock >= $3
	`

	result, err := r.db.ExecContext(ctx, query, id, tenantID, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		// Either the product is missing or there is not enough stock.
		if _, err := r.GetByID(ctx, id, tenantID); err != nil {
			return err
		}
		return entity.ErrInsufficientStock
	}

	return nil
}

func (r *productRepository) GetLowStock(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	query := `
		SELECT id, tenant_id, name, description, category, price, stock, low_stock_threshold, created_at, updated_at
		FROM products
		WHERE tenant_id = $1 AND stock <= low_stock_threshold
		ORDER BY stock
	`
	return r.queryProducts(ctx, query, tenantID)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %v", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %v", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.TenantID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.Stock,
		&product.LowStockThreshold,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
