package handler

import (
	"context"
	"time"

	"restaurante-be/internal/cart"
	"restaurante-be/internal/category"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/order"
	"restaurante-be/internal/pricing"
	"restaurante-be/internal/product"
	"restaurante-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Products ---

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) AdminList(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) Menu(ctx context.Context, categoryID *uint, now time.Time) ([]*product.MenuItem, error) {
	args := m.Called(ctx, categoryID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.MenuItem), args.Error(1)
}

func (m *MockProductService) Featured(ctx context.Context, now time.Time) ([]*product.MenuItem, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.MenuItem), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) CheckAvailability(ctx context.Context, id uint, now time.Time) (*product.AvailabilityStatus, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.AvailabilityStatus), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req product.SaveProductRequest) (*product.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uint, req product.SaveProductRequest) (*product.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductService) ToggleAvailability(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) AddAvailability(ctx context.Context, productID uint, req product.AddAvailabilityRequest) (*product.Availability, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Availability), args.Error(1)
}

func (m *MockProductService) DeleteAvailability(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) AddIngredient(ctx context.Context, productID uint, req product.AddIngredientRequest) (*product.Ingredient, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Ingredient), args.Error(1)
}

func (m *MockProductService) DeleteIngredient(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// --- Categories ---

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uint) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, req category.SaveCategoryRequest) (*category.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uint, req category.SaveCategoryRequest) (*category.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// --- Coupons ---

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) List(ctx context.Context) ([]*coupon.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Get(ctx context.Context, id uint) (*coupon.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, req coupon.SaveCouponRequest) (*coupon.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uint, req coupon.SaveCouponRequest) (*coupon.Coupon, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCouponService) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (pricing.CouponResult, error) {
	args := m.Called(ctx, code, subtotal, now)
	return args.Get(0).(pricing.CouponResult), args.Error(1)
}

// --- Cart ---

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, c *cart.Cart, req cart.AddItemRequest, now time.Time) (*cart.Line, error) {
	args := m.Called(ctx, c, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	l := args.Get(0).(*cart.Line)
	c.Add(l)
	return l, args.Error(1)
}

func (m *MockCartService) Quote(ctx context.Context, c *cart.Cart, now time.Time) (*cart.Cart, error) {
	args := m.Called(ctx, c, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Update(ctx context.Context, c *cart.Cart, key string, qty int) error {
	return m.Called(ctx, c, key, qty).Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, c *cart.Cart, key string) error {
	return m.Called(ctx, c, key).Error(0)
}

// --- Orders ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, userID uint, c *cart.Cart, req order.PlaceOrderRequest, now time.Time) (*order.Order, error) {
	args := m.Called(ctx, userID, c, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	c.Clear()
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetForUser(ctx context.Context, userID, id uint) (*order.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) History(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) AdminList(ctx context.Context, filter order.AdminFilter, now time.Time) (*order.AdminList, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.AdminList), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uint, req order.UpdateStatusRequest) (*order.Order, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Repeat(ctx context.Context, userID, id uint, c *cart.Cart, now time.Time) (*order.RepeatResult, error) {
	args := m.Called(ctx, userID, id, c, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RepeatResult), args.Error(1)
}

// --- Users ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req user.LoginRequest) (string, *user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) RequestPasswordReset(ctx context.Context, req user.PasswordResetRequest, now time.Time) error {
	return m.Called(ctx, req, now).Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, token string, req user.ResetPasswordRequest, now time.Time) error {
	return m.Called(ctx, token, req, now).Error(0)
}

func (m *MockUserService) ListClients(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) CreateOrPromoteAdmin(ctx context.Context, req user.AdminRequest) (*user.User, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*user.User), args.Bool(1), args.Error(2)
}

// --- Employees ---

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) List(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeService) Get(ctx context.Context, id uint) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeService) Create(ctx context.Context, req employee.SaveEmployeeRequest) (*employee.Employee, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeService) Update(ctx context.Context, id uint, req employee.SaveEmployeeRequest) (*employee.Employee, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEmployeeService) ClockIn(ctx context.Context, id uint, now time.Time) (*employee.TimeRecord, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.TimeRecord), args.Error(1)
}

func (m *MockEmployeeService) ClockOut(ctx context.Context, id uint, now time.Time) (*employee.TimeRecord, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.TimeRecord), args.Error(1)
}

func (m *MockEmployeeService) TimeRecords(ctx context.Context, id uint) ([]*employee.TimeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*employee.TimeRecord), args.Error(1)
}
