package handler

import (
	"net/http"

	"restaurante-be/internal/coupon"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/expense"
	"restaurante-be/internal/promotion"
)

// -- Employees --

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.SaveEmployeeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Employees.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req employee.SaveEmployeeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Employees.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Employees.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.Employees.ClockIn(r.Context(), id, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.Employees.ClockOut(r.Context(), id, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) TimeRecords(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := h.Employees.TimeRecords(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// -- Promotions --

func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Promotions.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req promotion.SavePromotionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Promotions.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req promotion.SavePromotionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Promotions.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Promotions.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Coupons --

func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	list, err := h.Coupons.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req coupon.SaveCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.Coupons.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req coupon.SaveCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.Coupons.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Coupons.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Expenses --

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := h.Expenses.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.SaveExpenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Expenses.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req expense.SaveExpenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Expenses.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Expenses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
