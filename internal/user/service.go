package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/mailer"
	"restaurante-be/internal/metrics"
	"restaurante-be/internal/utils"

	"go.uber.org/zap"
)

const (
	resetMailTimeout = 30 * time.Second
	resetMailSubject = "Redefinição de Senha - Sistema de Restaurante"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (string, *User, error)
	RequestPasswordReset(ctx context.Context, req PasswordResetRequest, now time.Time) error
	ResetPassword(ctx context.Context, token string, req ResetPasswordRequest, now time.Time) error
	ListClients(ctx context.Context) ([]*User, error)
	CreateOrPromoteAdmin(ctx context.Context, req AdminRequest) (*User, bool, error)
}

type service struct {
	repo    Repository
	tokens  *auth.TokenManager
	mail    mailer.Sender
	baseURL string

	// dispatch runs the reset mail delivery; a goroutine outside tests.
	dispatch func(func())
}

func NewService(repo Repository, tokens *auth.TokenManager, mail mailer.Sender, baseURL string) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		mail:     mail,
		baseURL:  strings.TrimRight(baseURL, "/"),
		dispatch: func(f func()) { go f() },
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	if err := req.Validate(); err != nil {
		log.Warn("invalid registration", zap.Error(err))
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		Username:     req.Username,
		Email:        req.Email,
		CPF:          req.CPF,
		Phone:        req.Phone,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("username", u.Username),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", req.Username),
	)

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, ErrUserNotFound) {
		log.Warn("username not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(req.Password, u.PasswordHash) {
		log.Warn("password not match")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Username, u.Role())
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", nil, err
	}

	log.Info("login succeeded", zap.Uint("user_id", u.ID))
	return token, u, nil
}

// RequestPasswordReset answers the same way whether or not the email is
// registered, so callers cannot probe for accounts.
func (s *service) RequestPasswordReset(ctx context.Context, req PasswordResetRequest, now time.Time) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RequestPasswordReset"),
	)

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(resetTokenBytes)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, u.ID, token, now.UTC().Add(resetTokenTTL)); err != nil {
		return err
	}

	msg := mailer.Message{
		To:      []string{u.Email},
		Subject: resetMailSubject,
		Body:    resetMailBody(s.baseURL + "/reset-password/" + token),
	}

	// The request may finish before the mail does.
	mailCtx := context.WithoutCancel(ctx)
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(mailCtx, resetMailTimeout)
		defer cancel()

		if err := s.mail.Send(ctx, msg); err != nil {
			metrics.ResetMailsFailed.Inc()
			logger.FromCtx(ctx).Error("reset mail not delivered",
				zap.Uint("user_id", u.ID),
				zap.Error(err),
			)
			return
		}
		metrics.ResetMailsSent.Inc()
	})

	log.Info("reset token issued", zap.Uint("user_id", u.ID))
	return nil
}

func resetMailBody(link string) string {
	return fmt.Sprintf(`Para redefinir sua senha, visite o seguinte link:
%s

Se você não fez esta solicitação, simplesmente ignore este email e nenhuma alteração será feita.
`, link)
}

func (s *service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest, now time.Time) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ResetPassword"),
	)

	u, err := s.repo.FindByResetToken(ctx, token, now.UTC())
	if errors.Is(err, ErrUserNotFound) {
		log.Warn("invalid or expired reset token")
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}

	log.Info("password reset", zap.Uint("user_id", u.ID))
	return nil
}

func (s *service) ListClients(ctx context.Context) ([]*User, error) {
	return s.repo.ListClients(ctx)
}

func (s *service) CreateOrPromoteAdmin(ctx context.Context, req AdminRequest) (*User, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, false, err
	}

	u, created, err := s.repo.UpsertAdmin(ctx, &User{
		Username:     req.Username,
		Email:        req.Email,
		CPF:          req.CPF,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, false, err
	}

	logger.FromCtx(ctx).Info("admin ensured",
		zap.Uint("user_id", u.ID),
		zap.Bool("created", created),
	)
	return u, created, nil
}
