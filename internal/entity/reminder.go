package entity

import (
	"time"
)

type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusCompleted ReminderStatus = "completed"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

type ReminderFrequency string

const (
	FrequencyOnce    ReminderFrequency = "once"
	FrequencyDaily   ReminderFrequency = "daily"
	FrequencyWeekly  ReminderFrequency = "weekly"
	FrequencyMonthly ReminderFrequency = "monthly"
	FrequencyYearly  ReminderFrequency = "yearly"
)

// Reminder is a tenant-owned scheduled obligation (payment or task).
// For recurring reminders DueDate is always the currently pending
// occurrence, not the original start of the series.
type Reminder struct {
	ID                      string            `json:"id" db:"id"`
	TenantID                string            `json:"tenant_id" db:"tenant_id"`
	Title                   string            `json:"title" db:"title"`
	Description             string            `json:"description" db:"description"`
	ClientID                *string           `json:"client_id,omitempty" db:"client_id"`
	DueDate                 time.Time         `json:"due_date" db:"due_date"`
	Frequency               ReminderFrequency `json:"frequency" db:"frequency"`
	Amount                  *float64          `json:"amount,omitempty" db:"amount"`
	Status                  ReminderStatus    `json:"status" db:"status"`
	NotifyUser              bool              `json:"notify_user" db:"notify_user"`
	NotifyClient            bool              `json:"notify_client" db:"notify_client"`
	UserMessage             *string           `json:"user_notification_message,omitempty" db:"user_notification_message"`
	ClientMessage           *string           `json:"client_notification_message,omitempty" db:"client_notification_message"`
	AdvanceNotificationDays int               `json:"advance_notification_days" db:"advance_notification_days"`
	RepeatUntil             *time.Time        `json:"repeat_until,omitempty" db:"repeat_until"`
	LastNotified            *time.Time        `json:"last_notified,omitempty" db:"last_notified"`
	NextDueDate             *time.Time        `json:"next_due_date,omitempty" db:"next_due_date"`
	CreatedAt               time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at" db:"updated_at"`
}

func (f ReminderFrequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// IsRecurring reports whether the reminder rolls over after completion.
func (r *Reminder) IsRecurring() bool {
	return r.Frequency != FrequencyOnce
}
