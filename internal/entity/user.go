package entity

import "time"

// User is a tenant account. Every other record in the system is scoped
// by the owning user's ID.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	TelegramID   string    `json:"telegram_id" db:"telegram_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
