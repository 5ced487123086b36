package expense

import "errors"

var (
	// -- Validation & Input --
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description must be at most 120 characters")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrTypeRequired        = errors.New("expense type is required")
	ErrTypeTooLong         = errors.New("expense type must be at most 50 characters")
	ErrInvalidDate         = errors.New("date must use the YYYY-MM-DD format")

	// -- State --
	ErrExpenseNotFound = errors.New("expense not found")
)
