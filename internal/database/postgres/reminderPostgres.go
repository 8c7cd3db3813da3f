package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kgadrw/profit-backend/internal/entity"
)

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

const reminderColumns = `
	id, tenant_id, title, description, client_id, due_date, frequency,
	amount, status, notify_user, notify_client, user_notification_message,
	client_notification_message, advance_notification_days, repeat_until,
	last_notified, next_due_date, created_at, updated_at`

func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	query := `
		INSERT INTO reminders (
			id, tenant_id, title, description, client_id, due_date, frequency,
			amount, status, notify_user, notify_client, user_notification_message,
			client_notification_message, advance_notification_days, repeat_until,
			last_notified, next_due_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		reminder.ID,
		reminder.TenantID,
		reminder.Title,
		reminder.Description,
		reminder.ClientID,
		reminder.DueDate,
		reminder.Frequency,
		reminder.Amount,
		reminder.Status,
		reminder.NotifyUser,
		reminder.NotifyClient,
		reminder.UserMessage,
		reminder.ClientMessage,
		reminder.AdvanceNotificationDays,
		reminder.RepeatUntil,
		reminder.LastNotified,
		reminder.NextDueDate,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %v", err)
	}

	return nil
}

func (r *reminderRepository) GetByID(ctx context.Context, id, tenantID string) (*entity.Reminder, error) {
	query := `SELECT` + reminderColumns + ` FROM reminders WHERE id = $1 AND tenant_id = $2`

	reminder, err := scanReminder(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %v", err)
	}

	return reminder, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	query := `
		UPDATE reminders SET
			title = $3, description = $4, client_id = $5, due_date = $6,
			frequency = $7, amount = $8, status = $9, notify_user = $10,
			notify_client = $11, user_notification_message = $12,
			client_notification_message = $13, advance_notification_days = $14,
			repeat_until = $15, last_notified = $16, next_due_date = $17,
			updated_at = $18
		WHERE id = $1 AND tenant_id = $2
	`

	reminder.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		reminder.ID,
		reminder.TenantID,
		reminder.Title,
		reminder.Description,
		reminder.ClientID,
		reminder.DueDate,
		reminder.Frequency,
		reminder.Amount,
		reminder.Status,
		reminder.NotifyUser,
		reminder.NotifyClient,
		reminder.UserMessage,
		reminder.ClientMessage,
		reminder.AdvanceNotificationDays,
		reminder.RepeatUntil,
		reminder.LastNotified,
		reminder.NextDueDate,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id, tenantID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepository) GetByTenant(ctx context.Context, tenantID string) ([]*entity.Reminder, error) {
	query := `SELECT` + reminderColumns + ` FROM reminders WHERE tenant_id = $1 ORDER BY due_date`
	return r.queryReminders(ctx, query, tenantID)
}

func (r *reminderRepository) GetByTenantAndStatus(ctx context.Context, tenantID string, status entity.ReminderStatus) ([]*entity.Reminder, error) {
	query := `SELECT` + reminderColumns + ` FROM reminders WHERE tenant_id = $1 AND status = $2 ORDER BY due_date`
	return r.queryReminders(ctx, query, tenantID, status)
}

func (r *reminderRepository) GetUpcoming(ctx context.Context, tenantID string, until time.Time) ([]*entity.Reminder, error) {
	query := `SELECT` + reminderColumns + `
		FROM reminders
		WHERE tenant_id = $1 AND status = 'pending' AND due_date <= $2
		ORDER BY due_date`
	return r.queryReminders(ctx, query, tenantID, until)
}

// GetPending loads pending reminders across all tenants. This is the
// sweep's working set; it is intentionally not tenant-scoped.
func (r *reminderRepository) GetPending(ctx context.Context) ([]*entity.Reminder, error) {
	query := `SELECT` + reminderColumns + ` FROM reminders WHERE status = 'pending' ORDER BY due_date`
	return r.queryReminders(ctx, query)
}

func (r *reminderRepository) UpdateLastNotified(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE reminders SET last_notified = $2, updated_at = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to update last_notified: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepository) UpdateStatus(ctx context.Context, id, tenantID string, status entity.ReminderStatus) error {
	query := `UPDATE reminders SET status = $3, updated_at = $4 WHERE id = $1 AND tenant_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, tenantID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update reminder status: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if rows == 0 {
		return entity.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepository) queryReminders(ctx context.Context, query string, args ...interface{}) ([]*entity.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %v", err)
	}
	defer rows.Close()

	var reminders []*entity.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %v", err)
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %v", err)
	}

	return reminders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner) (*entity.Reminder, error) {
	var reminder entity.Reminder
	err := row.Scan(
		&reminder.ID,
		&reminder.TenantID,
		&reminder.Title,
		&reminder.Description,
		&reminder.ClientID,
		&reminder.DueDate,
		&reminder.Frequency,
		&reminder.Amount,
		&reminder.Status,
		&reminder.NotifyUser,
		&reminder.NotifyClient,
		&reminder.UserMessage,
		&reminder.ClientMessage,
		&reminder.AdvanceNotificationDays,
		&reminder.RepeatUntil,
		&reminder.LastNotified,
		&reminder.NextDueDate,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}
