package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/cart"
	"restaurante-be/internal/category"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/order"
	"restaurante-be/internal/pricing"
	"restaurante-be/internal/product"
	"restaurante-be/internal/session"
	"restaurante-be/internal/user"
	"restaurante-be/internal/utils"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// A Friday lunch.
var fixedNow = time.Date(2025, 6, 13, 12, 30, 0, 0, time.UTC)

type testDeps struct {
	products   *MockProductService
	categories *MockCategoryService
	coupons    *MockCouponService
	carts      *MockCartService
	orders     *MockOrderService
	users      *MockUserService
	employees  *MockEmployeeService
}

func newTestHandler() (*Handler, *testDeps) {
	deps := &testDeps{
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		coupons:    new(MockCouponService),
		carts:      new(MockCartService),
		orders:     new(MockOrderService),
		users:      new(MockUserService),
		employees:  new(MockEmployeeService),
	}

	mgr := session.NewManager(sessions.NewCookieStore([]byte("test-session-secret-32-bytes-long")))
	h := &Handler{
		Products:   deps.products,
		Categories: deps.categories,
		Coupons:    deps.coupons,
		Carts:      deps.carts,
		Orders:     deps.orders,
		Users:      deps.users,
		Employees:  deps.employees,
		Sessions:   mgr,
		CartStore:  cart.NewRepository(mgr),
		Tokens:     auth.NewTokenManager("jwt-secret", time.Hour),
		Location:   time.UTC,
		Now:        func() time.Time { return fixedNow },
	}
	return h, deps
}

func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)
	return w
}

func asUser(r *http.Request, id uint, role string) *http.Request {
	return r.WithContext(utils.SetUserContext(r.Context(), id, "maria", role))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", decodeBody(t, w)["status"])
}

func TestMenu(t *testing.T) {
	t.Run("Filters by category", func(t *testing.T) {
		h, deps := newTestHandler()
		items := []*product.MenuItem{{ID: 1, Name: "Feijoada", CurrentPrice: decimal.NewFromInt(35)}}
		deps.products.On("Menu", mock.Anything, mock.MatchedBy(func(id *uint) bool {
			return id != nil && *id == 3
		}), mock.Anything).Return(items, nil)
		deps.categories.On("List", mock.Anything).Return([]*category.Category{{ID: 3, Name: "Pratos"}}, nil)

		w := serve(h, httptest.NewRequest(http.MethodGet, "/api/menu?category=3", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["selected_category"])
		assert.Len(t, body["items"], 1)
		assert.Contains(t, w.Body.String(), `"current_price":35`)
		deps.products.AssertExpectations(t)
	})

	t.Run("Bad category", func(t *testing.T) {
		h, _ := newTestHandler()

		w := serve(h, httptest.NewRequest(http.MethodGet, "/api/menu?category=abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductDetail(t *testing.T) {
	t.Run("Disabled product is hidden", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.products.On("Get", mock.Anything, uint(9)).Return(&product.Product{ID: 9, IsAvailable: false}, nil)

		w := serve(h, httptest.NewRequest(http.MethodGet, "/api/products/9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Priced for the current slot", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.products.On("Get", mock.Anything, uint(9)).Return(&product.Product{
			ID:          9,
			Name:        "Suco",
			Price:       decimal.NewFromInt(10),
			IsAvailable: true,
		}, nil)

		w := serve(h, httptest.NewRequest(http.MethodGet, "/api/products/9", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["available_now"])
		assert.Equal(t, float64(10), body["current_price"])
	})
}

func TestCart_AddToCart(t *testing.T) {
	h, deps := newTestHandler()
	line := &cart.Line{
		Key:       cart.Key(1, nil),
		ProductID: 1,
		Quantity:  2,
		BasePrice: decimal.NewFromInt(12),
		UnitPrice: decimal.NewFromInt(12),
	}
	deps.carts.On("Add", mock.Anything, mock.Anything, cart.AddItemRequest{ProductID: 1, Quantity: 2}, mock.Anything).
		Return(line, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id":1,"quantity":2}`))
	w := serve(h, r)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["item_count"])
	assert.Equal(t, float64(24), body["subtotal"])
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestCart_RemoveUnknownLine(t *testing.T) {
	h, deps := newTestHandler()
	deps.carts.On("Remove", mock.Anything, mock.Anything, "42_").Return(cart.ErrLineNotFound)

	w := serve(h, httptest.NewRequest(http.MethodDelete, "/api/cart/items/42_", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateCoupon(t *testing.T) {
	t.Run("Uses posted total", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.coupons.On("Evaluate", mock.Anything, "PROMO10", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(100))
		}), mock.Anything).
			Return(pricing.CouponResult{Valid: true, Discount: decimal.NewFromInt(10), NewTotal: decimal.NewFromInt(90)}, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/coupons/validate",
			strings.NewReader(`{"coupon_code":"PROMO10","total":100}`))
		w := serve(h, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["valid"])
		assert.Equal(t, float64(90), body["new_total"])
	})

	t.Run("Falls back to the cart subtotal", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.coupons.On("Evaluate", mock.Anything, "X", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.IsZero()
		}), mock.Anything).Return(pricing.CouponResult{Valid: false, Message: "Cupom inválido"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", strings.NewReader(`{"coupon_code":"X"}`))
		w := serve(h, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["valid"])
		assert.Nil(t, body["discount"])
	})
}

func TestCheckout_EmptyCart(t *testing.T) {
	h, _ := newTestHandler()

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/checkout", nil), 5, utils.RoleCustomer)
	w := serve(h, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckout_RepricesCart(t *testing.T) {
	added := func(h *Handler, deps *testDeps) []*http.Cookie {
		deps.carts.On("Add", mock.Anything, mock.Anything, cart.AddItemRequest{ProductID: 1, Quantity: 1}, mock.Anything).
			Return(&cart.Line{Key: "1_", ProductID: 1, ProductName: "Marmita", Quantity: 1, BasePrice: decimal.NewFromInt(25), UnitPrice: decimal.NewFromInt(25)}, nil)
		w := serve(h, httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"product_id":1,"quantity":1}`)))
		require.Equal(t, http.StatusCreated, w.Code)
		return w.Result().Cookies()
	}
	checkout := func(h *Handler, cookies []*http.Cookie) *httptest.ResponseRecorder {
		r := asUser(httptest.NewRequest(http.MethodGet, "/api/checkout", nil), 5, utils.RoleCustomer)
		for _, c := range cookies {
			r.AddCookie(c)
		}
		return serve(h, r)
	}

	t.Run("Line no longer orderable", func(t *testing.T) {
		h, deps := newTestHandler()
		cookies := added(h, deps)
		deps.carts.On("Quote", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: %s", cart.ErrProductUnavailable, "Marmita"))

		w := checkout(h, cookies)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Marmita")
	})

	t.Run("Shows current prices", func(t *testing.T) {
		h, deps := newTestHandler()
		cookies := added(h, deps)
		quoted := cart.New()
		quoted.Add(&cart.Line{Key: "1_", ProductID: 1, ProductName: "Marmita", Quantity: 1, BasePrice: decimal.NewFromInt(30), UnitPrice: decimal.NewFromInt(30)})
		deps.carts.On("Quote", mock.Anything, mock.Anything, mock.Anything).Return(quoted, nil)

		w := checkout(h, cookies)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subtotal":30`)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Anonymous is sent to login", func(t *testing.T) {
		h, _ := newTestHandler()

		w := serve(h, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Empty cart", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.orders.On("PlaceOrder", mock.Anything, uint(5), mock.Anything, mock.Anything, mock.Anything).
			Return(nil, cart.ErrEmptyCart)

		r := asUser(httptest.NewRequest(http.MethodPost, "/api/orders",
			strings.NewReader(`{"payment_method":"pix","delivery_type":"retirada"}`)), 5, utils.RoleCustomer)
		w := serve(h, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, cart.ErrEmptyCart.Error(), decodeBody(t, w)["error"])
	})

	t.Run("Success", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.orders.On("PlaceOrder", mock.Anything, uint(5), mock.Anything, mock.Anything, mock.Anything).
			Return(&order.Order{
				ID:            77,
				UserID:        5,
				TotalAmount:   decimal.NewFromInt(50),
				PaymentMethod: order.PaymentPix,
				DeliveryType:  order.DeliveryPickup,
			}, nil)

		r := asUser(httptest.NewRequest(http.MethodPost, "/api/orders",
			strings.NewReader(`{"payment_method":"pix","delivery_type":"retirada"}`)), 5, utils.RoleCustomer)
		w := serve(h, r)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(77), body["id"])
		assert.Contains(t, w.Body.String(), "R$ 50,00")
		assert.NotEmpty(t, body["payment_instructions"])
	})
}

func TestRepeatOrder_WarnsAboutSkippedItems(t *testing.T) {
	h, deps := newTestHandler()
	deps.orders.On("Repeat", mock.Anything, uint(5), uint(3), mock.Anything, mock.Anything).
		Return(&order.RepeatResult{Added: []string{"Feijoada"}, Skipped: []string{"Sopa"}}, nil)

	r := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/3/repeat", nil), 5, utils.RoleCustomer)
	w := serve(h, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []any{"Sopa"}, body["skipped"])
	assert.NotNil(t, body["cart"])
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Customer is redirected", func(t *testing.T) {
		h, deps := newTestHandler()

		r := asUser(httptest.NewRequest(http.MethodGet, "/admin/api/products", nil), 5, utils.RoleCustomer)
		w := serve(h, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		deps.products.AssertNotCalled(t, "AdminList", mock.Anything)
	})

	t.Run("Admin lists products", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.products.On("AdminList", mock.Anything).Return([]*product.Product{{ID: 1, Name: "Feijoada"}}, nil)

		r := asUser(httptest.NewRequest(http.MethodGet, "/admin/api/products", nil), 1, utils.RoleAdmin)
		w := serve(h, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Feijoada")
	})
}

func TestDeleteProduct(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		want     bool
	}{
		{name: "Removed", disabled: false, want: true},
		{name: "Disabled because of orders", disabled: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler()
			deps.products.On("Delete", mock.Anything, uint(4)).Return(tt.disabled, nil)

			r := asUser(httptest.NewRequest(http.MethodDelete, "/admin/api/products/4", nil), 1, utils.RoleAdmin)
			w := serve(h, r)

			require.Equal(t, http.StatusOK, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.want, body["deleted"])
			assert.Equal(t, tt.disabled, body["disabled"])
		})
	}
}

func TestCreateCategory_Conflict(t *testing.T) {
	h, deps := newTestHandler()
	deps.categories.On("Create", mock.Anything, category.SaveCategoryRequest{Name: "Bebidas"}).
		Return(nil, category.ErrCategoryExists)

	r := asUser(httptest.NewRequest(http.MethodPost, "/admin/api/categories",
		strings.NewReader(`{"name":"Bebidas"}`)), 1, utils.RoleAdmin)
	w := serve(h, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClockIn(t *testing.T) {
	t.Run("Already clocked in", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.employees.On("ClockIn", mock.Anything, uint(2), fixedNow).Return(nil, employee.ErrAlreadyClockedIn)

		r := asUser(httptest.NewRequest(http.MethodPost, "/admin/api/employees/2/clock-in", nil), 1, utils.RoleAdmin)
		w := serve(h, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Opens a record", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.employees.On("ClockIn", mock.Anything, uint(2), fixedNow).
			Return(&employee.TimeRecord{ID: 10, EmployeeID: 2, ClockIn: fixedNow}, nil)

		r := asUser(httptest.NewRequest(http.MethodPost, "/admin/api/employees/2/clock-in", nil), 1, utils.RoleAdmin)
		w := serve(h, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Bad id", func(t *testing.T) {
		h, _ := newTestHandler()

		r := asUser(httptest.NewRequest(http.MethodPost, "/admin/api/employees/0/clock-in", nil), 1, utils.RoleAdmin)
		w := serve(h, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Sets the token cookie", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.users.On("Login", mock.Anything, user.LoginRequest{Username: "maria", Password: "segredo"}).
			Return("signed-token", &user.User{ID: 5, Username: "maria"}, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"maria","password":"segredo"}`))
		w := serve(h, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "signed-token", decodeBody(t, w)["token"])

		var found bool
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.AccessTokenCookie {
				found = true
				assert.Equal(t, "signed-token", c.Value)
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found)
	})

	t.Run("Bad credentials", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.users.On("Login", mock.Anything, mock.Anything).Return("", nil, user.ErrInvalidCredentials)

		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"x","password":"y"}`))
		w := serve(h, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		h, _ := newTestHandler()

		w := serve(h, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestPasswordReset_IsGeneric(t *testing.T) {
	h, deps := newTestHandler()
	deps.users.On("RequestPasswordReset", mock.Anything, user.PasswordResetRequest{Email: "nobody@example.com"}, fixedNow).
		Return(nil)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset",
		strings.NewReader(`{"email":"nobody@example.com"}`))
	w := serve(h, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resetRequestMsg, decodeBody(t, w)["message"])
}

func TestWriteError(t *testing.T) {
	t.Run("Known errors keep their message", func(t *testing.T) {
		cases := map[error]int{
			order.ErrOrderNotFound:       http.StatusNotFound,
			order.ErrInvalidTransition:   http.StatusConflict,
			cart.ErrProductUnavailable:   http.StatusUnprocessableEntity,
			user.ErrInvalidCredentials:   http.StatusUnauthorized,
			coupon.ErrPercentageTooHigh:  http.StatusBadRequest,
			employee.ErrEmployeeInactive: http.StatusConflict,
		}
		for err, code := range cases {
			w := httptest.NewRecorder()
			writeError(w, httptest.NewRequest(http.MethodGet, "/", nil), err)

			assert.Equal(t, code, w.Code, err.Error())
			assert.Equal(t, err.Error(), decodeBody(t, w)["error"])
		}
	})

	t.Run("Wrapped errors still match", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.Join(errors.New("ctx"), product.ErrProductNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown errors are hidden and logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/orders", nil).WithContext(context.Background())
		writeError(w, r, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, internalErrorMsg, decodeBody(t, w)["error"])
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "request failed", logs.All()[0].Message)
	})
}
