package category

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired = errors.New("category name is required")
	ErrNameTooLong  = errors.New("category name must be at most 80 characters")

	// -- State --
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("a category with this name already exists")
	ErrCategoryHasProducts = errors.New("category still has products")
)
