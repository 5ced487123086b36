package middleware

import (
	"net/http"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/session"
	"restaurante-be/internal/utils"

	"go.uber.org/zap"
)

const (
	LoginPath = "/login"

	loginRequiredMsg = "Por favor, faça login para acessar esta página."
	adminOnlyMsg     = "Acesso restrito a administradores."
)

type TokenParser interface {
	Parse(tokenStr string) (*auth.CustomClaims, error)
}

type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, level session.Level, msg string) error
}

// Auth resolves the caller from the access token cookie or bearer header.
// Requests without a usable token continue anonymously; a stale cookie is
// cleared so the browser stops sending it.
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("discarding unusable access token", zap.Error(err))
				if _, cerr := r.Cookie(auth.AccessTokenCookie); cerr == nil {
					auth.ClearAccessTokenCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username, claims.Role)
			ctx = logger.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser sends anonymous callers to the login page with a notice.
func RequireUser(flash Flasher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				redirectToLogin(w, r, flash, loginRequiredMsg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(flash Flasher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				redirectToLogin(w, r, flash, loginRequiredMsg)
				return
			}
			if !utils.IsAdmin(r.Context()) {
				logger.FromCtx(r.Context()).Warn("non-admin tried an admin route",
					zap.String("path", r.URL.Path),
				)
				redirectToLogin(w, r, flash, adminOnlyMsg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, flash Flasher, msg string) {
	if err := flash.AddFlash(w, r, session.LevelWarning, msg); err != nil {
		logger.FromCtx(r.Context()).Error("failed to store flash notice", zap.Error(err))
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
