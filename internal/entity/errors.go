package entity

import "errors"

var (
	// Reminder errors
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrReminderNotPending = errors.New("reminder is not pending")
	ErrInvalidFrequency   = errors.New("invalid reminder frequency")

	// Client errors
	ErrClientNotFound = errors.New("client not found")

	// Product errors
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("not enough stock available")
	ErrInvalidPrice       = errors.New("price must be non-negative")
	ErrInvalidStockAmount = errors.New("stock must be non-negative")

	// Sale errors
	ErrSaleNotFound = errors.New("sale not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized access")
)
