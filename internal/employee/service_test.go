package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Employee), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Employee), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, req SaveEmployeeRequest) (*Employee, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Employee), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, req SaveEmployeeRequest) (*Employee, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Employee), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ClockIn(ctx context.Context, id uint, at time.Time) (*TimeRecord, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeRecord), args.Error(1)
}

func (m *MockRepository) ClockOut(ctx context.Context, id uint, at time.Time) (*TimeRecord, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeRecord), args.Error(1)
}

func (m *MockRepository) ListTimeRecords(ctx context.Context, id uint) ([]*TimeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TimeRecord), args.Error(1)
}

// --- Tests ---

func TestSaveEmployeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  SaveEmployeeRequest
		err  error
	}{
		{"valid", SaveEmployeeRequest{Name: "Ana", Email: "ana@r.com", Role: RoleDelivery}, nil},
		{"blank name", SaveEmployeeRequest{Name: "  ", Email: "ana@r.com", Role: RoleDelivery}, ErrNameRequired},
		{"bad email", SaveEmployeeRequest{Name: "Ana", Email: "ana", Role: RoleDelivery}, ErrInvalidEmail},
		{"long phone", SaveEmployeeRequest{Name: "Ana", Email: "a@b", Phone: "123456789012345678901", Role: RoleKitchen}, ErrPhoneTooLong},
		{"unknown role", SaveEmployeeRequest{Name: "Ana", Email: "a@b", Role: "gerente"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestService_Create_NormalizesEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	expected := SaveEmployeeRequest{Name: "Ana", Email: "ana@r.com", Role: RoleKitchen}
	repo.On("Create", mock.Anything, expected).Return(&Employee{ID: 1, Email: "ana@r.com"}, nil)

	e, err := svc.Create(context.Background(), SaveEmployeeRequest{Name: " Ana ", Email: " ANA@R.com", Role: RoleKitchen})
	require.NoError(t, err)
	assert.Equal(t, uint(1), e.ID)
	repo.AssertExpectations(t)
}

func TestService_Create_Invalid(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), SaveEmployeeRequest{Name: "Ana", Email: "ana@r.com"})
	assert.ErrorIs(t, err, ErrInvalidRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ClockIn(t *testing.T) {
	local := time.FixedZone("BRT", -3*3600)
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, local)

	t.Run("Active employee", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(1)).Return(&Employee{ID: 1, IsActive: true}, nil)
		repo.On("ClockIn", mock.Anything, uint(1), now.UTC()).Return(&TimeRecord{ID: 5, EmployeeID: 1, ClockIn: now.UTC()}, nil)

		rec, err := svc.ClockIn(context.Background(), 1, now)
		require.NoError(t, err)
		assert.Equal(t, uint(5), rec.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Inactive employee", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(2)).Return(&Employee{ID: 2, IsActive: false}, nil)

		_, err := svc.ClockIn(context.Background(), 2, now)
		assert.ErrorIs(t, err, ErrEmployeeInactive)
		repo.AssertNotCalled(t, "ClockIn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already clocked in", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(3)).Return(&Employee{ID: 3, IsActive: true, ClockedIn: true}, nil)

		_, err := svc.ClockIn(context.Background(), 3, now)
		assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	})

	t.Run("Unknown employee", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(4)).Return(nil, ErrEmployeeNotFound)

		_, err := svc.ClockIn(context.Background(), 4, now)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

func TestService_ClockOut(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	now := time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC)

	repo.On("GetByID", mock.Anything, uint(1)).Return(&Employee{ID: 1, IsActive: true}, nil)
	repo.On("ClockOut", mock.Anything, uint(1), now).Return(nil, ErrNotClockedIn)

	_, err := svc.ClockOut(context.Background(), 1, now)
	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestService_TimeRecords(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, uint(1)).Return(&Employee{ID: 1}, nil)
	repo.On("ListTimeRecords", mock.Anything, uint(1)).Return([]*TimeRecord{{ID: 1}}, nil)

	records, err := svc.TimeRecords(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
