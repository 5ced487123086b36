package expense

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type"`
	Date        string          `json:"date"`
}

type SaveExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type"`
	Date        string          `json:"date"`
}

func (r *SaveExpenseRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	r.ExpenseType = strings.TrimSpace(r.ExpenseType)
	r.Date = strings.TrimSpace(r.Date)

	switch {
	case r.Description == "":
		return ErrDescriptionRequired
	case len(r.Description) > 120:
		return ErrDescriptionTooLong
	case !r.Amount.IsPositive():
		return ErrInvalidAmount
	case r.ExpenseType == "":
		return ErrTypeRequired
	case len(r.ExpenseType) > 50:
		return ErrTypeTooLong
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
