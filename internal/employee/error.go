package employee

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired = errors.New("name is required")
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrInvalidRole  = errors.New("role must be cozinha, caixa or entregador")
	ErrPhoneTooLong = errors.New("phone must be at most 20 characters")

	// -- State --
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("an employee with this email already exists")
	ErrEmployeeInactive = errors.New("inactive employees cannot clock in")
	ErrAlreadyClockedIn = errors.New("employee already has an open time record")
	ErrNotClockedIn     = errors.New("employee has no open time record")
)
