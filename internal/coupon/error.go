package coupon

import "errors"

var (
	// -- Validation & Input --
	ErrCodeRequired        = errors.New("coupon code is required")
	ErrCodeTooLong         = errors.New("coupon code must be at most 50 characters")
	ErrInvalidDiscountType = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscount     = errors.New("discount value must be greater than zero")
	ErrPercentageTooHigh   = errors.New("percentage discount cannot exceed 100")
	ErrNegativeMinimum     = errors.New("minimum order value must not be negative")
	ErrInvalidUsageLimit   = errors.New("usage limit must be at least 1")
	ErrInvalidDate         = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidPeriod       = errors.New("end date must not be before start date")

	// -- State --
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExists   = errors.New("coupon code already exists")
)
