package promotion

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name must be at most 100 characters")
	ErrInvalidDiscountType = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscount     = errors.New("discount value must be greater than zero")
	ErrPercentageTooHigh   = errors.New("percentage discount cannot exceed 100")
	ErrDatesRequired       = errors.New("start and end dates are required")
	ErrInvalidDate         = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidPeriod       = errors.New("end date must not be before start date")

	// -- State --
	ErrPromotionNotFound = errors.New("promotion not found")
)
