package postgres

import (
	"database/sql"
	"fmt"

	"github.com/Kgadrw/profit-backend/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			phone VARCHAR(50) DEFAULT '',
			telegram_id VARCHAR(100) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS clients (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) DEFAULT '',
			category VARCHAR(100) DEFAULT '',
			notes TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			category VARCHAR(100) DEFAULT '',
			price DECIMAL(12,2) NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			low_stock_threshold INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS sales (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES users(id),
			client_id UUID REFERENCES clients(id),
			item_type VARCHAR(20) NOT NULL,
			product_id UUID REFERENCES products(id),
			service_name VARCHAR(255),
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(12,2) NOT NULL,
			total DECIMAL(12,2) NOT NULL,
			note TEXT DEFAULT '',
			sold_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS reminders (
			id UUID PRIMARY KEY,
			tenant_id UUID NOT NULL REFERENCES users(id),
			title VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			client_id UUID REFERENCES clients(id),
			due_date TIMESTAMP NOT NULL,
			frequency VARCHAR(20) NOT NULL DEFAULT 'once',
			amount DECIMAL(12,2),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			notify_user BOOLEAN NOT NULL DEFAULT TRUE,
			notify_client BOOLEAN NOT NULL DEFAULT FALSE,
			user_notification_message TEXT,
			client_notification_message TEXT,
			advance_notification_days INTEGER NOT NULL DEFAULT 0,
			repeat_until TIMESTAMP,
			last_notified TIMESTAMP,
			next_due_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_clients_tenant_id ON clients(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_tenant_id ON products(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_tenant_id ON sales(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(tenant_id, sold_at)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_tenant_id ON reminders(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due_date ON reminders(status, due_date)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
