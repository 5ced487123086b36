package handler

import (
	"errors"
	"net/http"

	"restaurante-be/internal/cart"
	"restaurante-be/internal/category"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/expense"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/order"
	"restaurante-be/internal/product"
	"restaurante-be/internal/promotion"
	"restaurante-be/internal/user"
	"restaurante-be/internal/utils"

	"go.uber.org/zap"
)

const internalErrorMsg = "Erro interno do servidor"

type statusRule struct {
	code int
	errs []error
}

// statusRules is checked in order; the first rule holding a match wins.
var statusRules = []statusRule{
	{http.StatusNotFound, []error{
		order.ErrOrderNotFound,
		product.ErrProductNotFound,
		product.ErrAvailabilityNotFound,
		product.ErrIngredientNotFound,
		category.ErrCategoryNotFound,
		coupon.ErrCouponNotFound,
		employee.ErrEmployeeNotFound,
		promotion.ErrPromotionNotFound,
		expense.ErrExpenseNotFound,
		cart.ErrLineNotFound,
		user.ErrUserNotFound,
	}},
	{http.StatusConflict, []error{
		category.ErrCategoryExists,
		category.ErrCategoryHasProducts,
		product.ErrAvailabilityExists,
		coupon.ErrCouponExists,
		employee.ErrEmailExists,
		employee.ErrAlreadyClockedIn,
		employee.ErrNotClockedIn,
		employee.ErrEmployeeInactive,
		user.ErrUsernameExists,
		user.ErrEmailExists,
		user.ErrCPFExists,
		order.ErrStatusChanged,
		order.ErrInvalidTransition,
		order.ErrCouponUnavailable,
	}},
	{http.StatusUnprocessableEntity, []error{
		cart.ErrEmptyCart,
		cart.ErrProductNotFound,
		cart.ErrProductUnavailable,
		product.ErrCategoryNotFound,
	}},
	{http.StatusUnauthorized, []error{
		user.ErrInvalidCredentials,
	}},
	{http.StatusBadRequest, []error{
		errBadRequest,
		user.ErrInvalidResetToken,

		category.ErrNameRequired, category.ErrNameTooLong,

		product.ErrNameRequired, product.ErrNameTooLong, product.ErrNegativePrice,
		product.ErrNegativeCost, product.ErrCategoryRequired, product.ErrInvalidDay,
		product.ErrInvalidTimeOfDay,

		coupon.ErrCodeRequired, coupon.ErrCodeTooLong, coupon.ErrInvalidDiscountType,
		coupon.ErrInvalidDiscount, coupon.ErrPercentageTooHigh, coupon.ErrNegativeMinimum,
		coupon.ErrInvalidUsageLimit, coupon.ErrInvalidDate, coupon.ErrInvalidPeriod,

		cart.ErrProductRequired, cart.ErrInvalidQuantity,

		order.ErrInvalidPaymentMethod, order.ErrInvalidDeliveryType, order.ErrAddressRequired,
		order.ErrNotesTooLong, order.ErrInvalidStatus, order.ErrInvalidPeriod,

		employee.ErrNameRequired, employee.ErrInvalidEmail, employee.ErrInvalidRole,
		employee.ErrPhoneTooLong,

		promotion.ErrNameRequired, promotion.ErrNameTooLong, promotion.ErrInvalidDiscountType,
		promotion.ErrInvalidDiscount, promotion.ErrPercentageTooHigh, promotion.ErrDatesRequired,
		promotion.ErrInvalidDate, promotion.ErrInvalidPeriod,

		expense.ErrDescriptionRequired, expense.ErrDescriptionTooLong, expense.ErrInvalidAmount,
		expense.ErrTypeRequired, expense.ErrTypeTooLong, expense.ErrInvalidDate,

		user.ErrUsernameTooShort, user.ErrUsernameTooLong, user.ErrInvalidEmail,
		user.ErrInvalidPhone, user.ErrCPFRequired, user.ErrPasswordTooShort,
		user.ErrPasswordMismatch,
	}},
}

func statusFor(err error) (int, bool) {
	for _, rule := range statusRules {
		for _, target := range rule.errs {
			if errors.Is(err, target) {
				return rule.code, true
			}
		}
	}
	return http.StatusInternalServerError, false
}

// writeError answers with the status a domain error maps to. Anything
// unmapped is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, known := statusFor(err)
	if !known {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "handler"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, internalErrorMsg, code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}
