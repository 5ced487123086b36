package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "email", "cpf", "phone", "password_hash", "is_admin", "created_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	newUser := func() *User {
		return &User{Username: "maria", Email: "maria@example.com", CPF: "123", Phone: "11999990000", PasswordHash: "hashed"}
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(username, email, cpf, phone, password_hash, is_admin\)`).
			WithArgs("maria", "maria@example.com", "123", "11999990000", "hashed", false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		u, err := repo.Create(ctx, newUser())
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	duplicates := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", ErrUsernameExists},
		{"users_email_key", ErrEmailExists},
		{"users_cpf_key", ErrCPFExists},
	}
	for _, d := range duplicates {
		t.Run("Duplicate "+d.constraint, func(t *testing.T) {
			mock.ExpectQuery(`INSERT INTO users`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: d.constraint})

			_, err := repo.Create(ctx, newUser())
			assert.ErrorIs(t, err, d.want)
		})
	}

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, newUser())
		assert.EqualError(t, err, "db error")
	})
}

func TestRepository_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("maria").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "maria", "maria@example.com", "123", "", "hashed", true, time.Now()))

		u, err := repo.FindByUsername(ctx, "maria")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
		assert.Equal(t, "hashed", u.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE reset_token = \$1 AND reset_token_expiration > \$2`).
		WithArgs("tok", now).
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).FindByResetToken(context.Background(), "tok", now)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exp := time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE users SET reset_token = \$1, reset_token_expiration = \$2 WHERE id = \$3`).
		WithArgs("tok", exp, uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewRepository(db).SetResetToken(context.Background(), 1, "tok", exp))
}

func TestRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`SET password_hash = \$1, reset_token = NULL, reset_token_expiration = NULL WHERE id = \$2`).
		WithArgs("newhash", uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdatePassword(context.Background(), 1, "newhash"))

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePassword(context.Background(), 2, "newhash"), ErrUserNotFound)
}

func TestRepository_ListClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE is_admin = FALSE ORDER BY username ASC`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "ana", "ana@example.com", "1", "11999990000", "h", false, time.Now()).
			AddRow(3, "bia", "bia@example.com", "2", "", "h", false, time.Now()))

	users, err := NewRepository(db).ListClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestRepository_UpsertAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`ON CONFLICT \(username\) DO UPDATE SET is_admin = TRUE`).
		WithArgs("admin", "admin@example.com", "000", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "created"}).AddRow(1, time.Now(), false))

	u, created, err := repo.UpsertAdmin(context.Background(), &User{Username: "admin", Email: "admin@example.com", CPF: "000", PasswordHash: "hashed"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, u.IsAdmin)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	_, _, err = repo.UpsertAdmin(context.Background(), &User{Username: "other"})
	assert.ErrorIs(t, err, ErrEmailExists)
}
