package user

import (
	"strings"
	"time"

	"restaurante-be/internal/utils"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
	minPasswordLen  = 6
)

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CPF          string    `json:"cpf"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Role() string {
	if u.IsAdmin {
		return utils.RoleAdmin
	}
	return utils.RoleCustomer
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CPF             string `json:"cpf"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.CPF = strings.TrimSpace(r.CPF)

	switch {
	case len(r.Username) < 3:
		return ErrUsernameTooShort
	case len(r.Username) > 80:
		return ErrUsernameTooLong
	case !strings.Contains(r.Email, "@"):
		return ErrInvalidEmail
	case len(r.Phone) < 10 || len(r.Phone) > 20:
		return ErrInvalidPhone
	case r.CPF == "" || len(r.CPF) > 14:
		return ErrCPFRequired
	}
	return validatePassword(r.Password, r.ConfirmPassword)
}

func validatePassword(password, confirm string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validatePassword(r.Password, r.ConfirmPassword)
}

type AdminRequest struct {
	Username string
	Email    string
	CPF      string
	Password string
}

func (r *AdminRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.CPF = strings.TrimSpace(r.CPF)

	switch {
	case len(r.Username) < 3:
		return ErrUsernameTooShort
	case !strings.Contains(r.Email, "@"):
		return ErrInvalidEmail
	case r.CPF == "":
		return ErrCPFRequired
	case len(r.Password) < minPasswordLen:
		return ErrPasswordTooShort
	}
	return nil
}
