package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, email, phone, category, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.TenantID,
		client.Name,
		client.Email,
		client.Phone,
		client.Category,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %v", err)
	}

	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id, tenantID string) (*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, category, notes, created_at, updated_at
		FROM clients
		WHERE id = $1 AND tenant_id = $2
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}

	return client, nil
}

func (r *clientRepository) GetByIDAny(ctx context.Context, id string) (*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, category, notes, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}

	return client, nil
}

func (r *clientRepository) GetByTenant(ctx context.Context, tenantID string) ([]*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, category, notes, created_at, updated_at
		FROM clients
		WHERE tenant_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %v", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %v", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %v", err)
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $3, email = $4, phone = $5, category = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND tenant_id = $2
	`

	client.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.TenantID,
		client.Name,
		client.Email,
		client.Phone,
		client.Category,
		client.Notes,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrClientNotFound
	}

	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id, tenantID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrClientNotFound
	}

	return nil
}

func (r *clientRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %v", err)
	}
	return count, nil
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var client entity.Client
	err := row.Scan(
		&client.ID,
		&client.TenantID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Category,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
