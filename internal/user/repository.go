package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurante-be/internal/db"
	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	ListClients(ctx context.Context) ([]*User, error)
	UpsertAdmin(ctx context.Context, u *User) (*User, bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectUser = `
	SELECT id, username, email, cpf, COALESCE(phone, ''), COALESCE(password_hash, ''), is_admin, created_at
	FROM users
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CPF, &u.Phone, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// uniqueErr maps the users table constraints to their domain errors.
func uniqueErr(err error) error {
	switch {
	case db.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameExists
	case db.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailExists
	case db.IsUniqueViolation(err, "users_cpf_key"):
		return ErrCPFExists
	}
	return err
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("username", u.Username),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, cpf, phone, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		u.Username, u.Email, u.CPF, u.Phone, u.PasswordHash, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if mapped := uniqueErr(err); mapped != err {
			log.Warn("duplicate user", zap.Error(mapped))
			return nil, mapped
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Uint("user_id", u.ID))
	return u, nil
}

func (r *repository) findOne(ctx context.Context, where string, args ...any) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	return r.findOne(ctx, ` WHERE id = $1`, id)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, ` WHERE username = $1`, username)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, ` WHERE email = $1`, email)
}

// FindByResetToken only matches tokens that are still unexpired at now.
func (r *repository) FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error) {
	return r.findOne(ctx, ` WHERE reset_token = $1 AND reset_token_expiration > $2`, token, now)
}

func (r *repository) SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token = $1, reset_token_expiration = $2 WHERE id = $3`,
		token, expiresAt, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to store reset token",
			zap.String("layer", "repository"),
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword also clears any pending reset token.
func (r *repository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expiration = NULL
		WHERE id = $2`,
		hash, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) ListClients(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` WHERE is_admin = FALSE ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpsertAdmin inserts an admin or promotes the existing user with the same
// username, resetting their password. created is false on promotion.
func (r *repository) UpsertAdmin(ctx context.Context, u *User) (*User, bool, error) {
	var created bool
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, cpf, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (username) DO UPDATE
		SET is_admin = TRUE, password_hash = EXCLUDED.password_hash
		RETURNING id, created_at, (xmax = 0)`,
		u.Username, u.Email, u.CPF, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &created)
	if err != nil {
		return nil, false, uniqueErr(err)
	}
	u.IsAdmin = true
	return u, created, nil
}
