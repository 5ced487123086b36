package main

import (
	"bytes"
	"context"
	"testing"

	"restaurante-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdminCreator struct {
	mock.Mock
}

func (m *MockAdminCreator) CreateOrPromoteAdmin(ctx context.Context, req user.AdminRequest) (*user.User, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*user.User), args.Bool(1), args.Error(2)
}

func TestRun(t *testing.T) {
	t.Run("Creates with defaults", func(t *testing.T) {
		svc := new(MockAdminCreator)
		svc.On("CreateOrPromoteAdmin", mock.Anything, user.AdminRequest{
			Username: "admin",
			Email:    "admin@restaurant.com",
			CPF:      defaultCPF,
			Password: "secret123",
		}).Return(&user.User{ID: 1, Username: "admin"}, true, nil)

		var out bytes.Buffer
		require.NoError(t, run(context.Background(), svc, []string{"-password", "secret123"}, &out))
		assert.Contains(t, out.String(), "created")
		svc.AssertExpectations(t)
	})

	t.Run("Promotes existing user", func(t *testing.T) {
		svc := new(MockAdminCreator)
		svc.On("CreateOrPromoteAdmin", mock.Anything, mock.MatchedBy(func(req user.AdminRequest) bool {
			return req.Username == "joao" && req.CPF == "123.456.789-00"
		})).Return(&user.User{ID: 7, Username: "joao"}, false, nil)

		var out bytes.Buffer
		args := []string{"-username", "joao", "-password", "secret123", "-cpf", "123.456.789-00"}
		require.NoError(t, run(context.Background(), svc, args, &out))
		assert.Contains(t, out.String(), "promoted")
	})

	t.Run("Password required", func(t *testing.T) {
		svc := new(MockAdminCreator)

		err := run(context.Background(), svc, nil, &bytes.Buffer{})
		assert.ErrorContains(t, err, "-password")
		svc.AssertNotCalled(t, "CreateOrPromoteAdmin", mock.Anything, mock.Anything)
	})

	t.Run("Service error", func(t *testing.T) {
		svc := new(MockAdminCreator)
		svc.On("CreateOrPromoteAdmin", mock.Anything, mock.Anything).Return(nil, false, user.ErrPasswordTooShort)

		err := run(context.Background(), svc, []string{"-password", "x"}, &bytes.Buffer{})
		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	})
}
