package product

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name must be at most 100 characters")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeCost     = errors.New("cost must not be negative")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidDay       = errors.New("invalid day of week")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// -- State --
	ErrProductNotFound      = errors.New("product not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrAvailabilityNotFound = errors.New("availability rule not found")
	ErrAvailabilityExists   = errors.New("an availability rule for this day and time already exists")
	ErrIngredientNotFound   = errors.New("ingredient option not found")
)
