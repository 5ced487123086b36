package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/cart"
	"restaurante-be/internal/category"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/expense"
	"restaurante-be/internal/middleware"
	"restaurante-be/internal/order"
	"restaurante-be/internal/product"
	"restaurante-be/internal/promotion"
	"restaurante-be/internal/report"
	"restaurante-be/internal/session"
	"restaurante-be/internal/user"
	"restaurante-be/internal/utils"

	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("Requisição inválida")

func init() {
	// Money goes out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Handler exposes every service over JSON. Dependencies a route does not
// touch may be left nil.
type Handler struct {
	Categories category.Service
	Products   product.Service
	Coupons    coupon.Service
	Carts      cart.Service
	Orders     order.Service
	Reports    report.Service
	Employees  employee.Service
	Promotions promotion.Service
	Expenses   expense.Service
	Users      user.Service

	Sessions     *session.Manager
	CartStore    cart.Repository
	Tokens       *auth.TokenManager
	Location     *time.Location
	SecureCookie bool

	// Now is the clock; tests pin it.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := h.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().In(loc)
}

// Routes registers the JSON API on a Go 1.22 pattern mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/csrf", h.CSRFToken)
	mux.HandleFunc("GET /api/notices", h.Notices)
	mux.HandleFunc("GET /api/home", h.Home)
	mux.HandleFunc("GET /api/menu", h.Menu)
	mux.HandleFunc("GET /api/products/{id}", h.ProductDetail)

	mux.HandleFunc("GET /api/cart", h.ViewCart)
	mux.HandleFunc("POST /api/cart/items", h.AddToCart)
	mux.HandleFunc("PATCH /api/cart/items/{key}", h.UpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{key}", h.RemoveCartItem)
	mux.HandleFunc("POST /api/coupons/validate", h.ValidateCoupon)

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("POST /api/auth/password-reset", h.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/password-reset/{token}", h.ResetPassword)

	customer := middleware.RequireUser(h.Sessions)
	mux.Handle("GET /api/checkout", customer(http.HandlerFunc(h.Checkout)))
	mux.Handle("POST /api/orders", customer(http.HandlerFunc(h.PlaceOrder)))
	mux.Handle("GET /api/orders", customer(http.HandlerFunc(h.OrderHistory)))
	mux.Handle("GET /api/orders/{id}", customer(http.HandlerFunc(h.TrackOrder)))
	mux.Handle("POST /api/orders/{id}/repeat", customer(http.HandlerFunc(h.RepeatOrder)))

	admin := middleware.RequireAdmin(h.Sessions)
	adminRoute := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, admin(fn))
	}

	adminRoute("GET /admin/api/dashboard", h.Dashboard)
	adminRoute("GET /admin/api/metrics", h.Metrics)
	adminRoute("GET /admin/api/clients", h.ListClients)

	adminRoute("GET /admin/api/products", h.ListProducts)
	adminRoute("POST /admin/api/products", h.CreateProduct)
	adminRoute("PUT /admin/api/products/{id}", h.UpdateProduct)
	adminRoute("DELETE /admin/api/products/{id}", h.DeleteProduct)
	adminRoute("POST /admin/api/products/{id}/toggle", h.ToggleProduct)
	adminRoute("GET /admin/api/products/{id}/availability", h.CheckAvailability)
	adminRoute("POST /admin/api/products/{id}/availability", h.AddAvailability)
	adminRoute("DELETE /admin/api/availability/{id}", h.DeleteAvailability)
	adminRoute("POST /admin/api/products/{id}/ingredients", h.AddIngredient)
	adminRoute("DELETE /admin/api/ingredients/{id}", h.DeleteIngredient)

	adminRoute("GET /admin/api/categories", h.ListCategories)
	adminRoute("POST /admin/api/categories", h.CreateCategory)
	adminRoute("PUT /admin/api/categories/{id}", h.UpdateCategory)
	adminRoute("DELETE /admin/api/categories/{id}", h.DeleteCategory)

	adminRoute("GET /admin/api/orders", h.AdminListOrders)
	adminRoute("GET /admin/api/orders/{id}", h.AdminOrderDetail)
	adminRoute("POST /admin/api/orders/{id}/status", h.UpdateOrderStatus)

	adminRoute("GET /admin/api/employees", h.ListEmployees)
	adminRoute("POST /admin/api/employees", h.CreateEmployee)
	adminRoute("PUT /admin/api/employees/{id}", h.UpdateEmployee)
	adminRoute("DELETE /admin/api/employees/{id}", h.DeleteEmployee)
	adminRoute("POST /admin/api/employees/{id}/clock-in", h.ClockIn)
	adminRoute("POST /admin/api/employees/{id}/clock-out", h.ClockOut)
	adminRoute("GET /admin/api/employees/{id}/time-records", h.TimeRecords)

	adminRoute("GET /admin/api/promotions", h.ListPromotions)
	adminRoute("POST /admin/api/promotions", h.CreatePromotion)
	adminRoute("PUT /admin/api/promotions/{id}", h.UpdatePromotion)
	adminRoute("DELETE /admin/api/promotions/{id}", h.DeletePromotion)

	adminRoute("GET /admin/api/coupons", h.ListCoupons)
	adminRoute("POST /admin/api/coupons", h.CreateCoupon)
	adminRoute("PUT /admin/api/coupons/{id}", h.UpdateCoupon)
	adminRoute("DELETE /admin/api/coupons/{id}", h.DeleteCoupon)

	adminRoute("GET /admin/api/expenses", h.ListExpenses)
	adminRoute("POST /admin/api/expenses", h.CreateExpense)
	adminRoute("PUT /admin/api/expenses/{id}", h.UpdateExpense)
	adminRoute("DELETE /admin/api/expenses/{id}", h.DeleteExpense)

	return mux
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id, err := utils.ToUint(r.PathValue("id"))
	if err != nil || id == 0 {
		return 0, errBadRequest
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	utils.WriteJSON(w, code, payload)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	utils.WriteJSON(w, code, map[string]string{"message": msg})
}

func currentUserID(r *http.Request) uint {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

// flash stores a notice for the next page; failures only cost the notice.
func (h *Handler) flash(w http.ResponseWriter, r *http.Request, level session.Level, msg string) {
	if h.Sessions == nil {
		return
	}
	_ = h.Sessions.AddFlash(w, r, level, msg)
}
