package handler

import (
	"net/http"
	"strings"

	"restaurante-be/internal/category"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/pricing"
	"restaurante-be/internal/product"
	"restaurante-be/internal/utils"

	"github.com/gorilla/csrf"
	"github.com/shopspring/decimal"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// CSRFToken hands the token the client must echo in X-CSRF-Token.
func (h *Handler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"csrf_token": csrf.Token(r)})
}

func (h *Handler) Notices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.Sessions.PopFlashes(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

type homeResponse struct {
	Featured   []*product.MenuItem  `json:"featured"`
	Categories []*category.Category `json:"categories"`
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.Products.Featured(r.Context(), h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, homeResponse{Featured: featured, Categories: categories})
}

type menuResponse struct {
	Items            []*product.MenuItem  `json:"items"`
	Categories       []*category.Category `json:"categories"`
	SelectedCategory *uint                `json:"selected_category"`
}

// Menu lists what can be ordered right now, optionally within ?category=.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	var categoryID *uint
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			writeError(w, r, errBadRequest)
			return
		}
		categoryID = &id
	}

	items, err := h.Products.Menu(r.Context(), categoryID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menuResponse{Items: items, Categories: categories, SelectedCategory: categoryID})
}

type productDetail struct {
	*product.MenuItem
	AvailableNow bool `json:"available_now"`
}

// ProductDetail prices a product for the current slot. Disabled products
// are hidden from customers.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !p.IsAvailable {
		writeError(w, r, product.ErrProductNotFound)
		return
	}

	avail := pricing.Resolve(p.Windows(), pricing.SlotAt(h.now()))
	writeJSON(w, http.StatusOK, productDetail{
		MenuItem:     product.ToMenuItem(p, avail),
		AvailableNow: avail.Available,
	})
}

type validateCouponRequest struct {
	Code  string           `json:"coupon_code"`
	Total *decimal.Decimal `json:"total"`
}

// ValidateCoupon checks a code against the posted total, or the session
// cart's subtotal when none is posted.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var subtotal decimal.Decimal
	if req.Total != nil {
		subtotal = *req.Total
	} else {
		subtotal = h.CartStore.Load(r).Subtotal()
	}

	res, err := h.Coupons.Evaluate(r.Context(), req.Code, subtotal, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon.ToValidation(res))
}
