package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/cart"
	"restaurante-be/internal/category"
	"restaurante-be/internal/config"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/db"
	"restaurante-be/internal/employee"
	"restaurante-be/internal/expense"
	"restaurante-be/internal/handler"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/mailer"
	"restaurante-be/internal/middleware"
	"restaurante-be/internal/order"
	"restaurante-be/internal/product"
	"restaurante-be/internal/promotion"
	"restaurante-be/internal/report"
	"restaurante-be/internal/session"
	"restaurante-be/internal/user"
	"restaurante-be/internal/utils"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires every repository and service onto the HTTP stack. ctx
// bounds the background visitor cleanup of the rate limiter.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (*http.Server, error) {
	store, err := newSessionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	sessMgr := session.NewManager(store)
	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenTTL)
	loc := cfg.Location()

	productSvc := product.NewService(product.NewRepository(database))
	couponSvc := coupon.NewService(coupon.NewRepository(database))
	cartSvc := cart.NewService(productSvc)

	h := &handler.Handler{
		Categories: category.NewService(category.NewRepository(database)),
		Products:   productSvc,
		Coupons:    couponSvc,
		Carts:      cartSvc,
		Orders:     order.NewService(order.NewRepository(database), couponSvc, cartSvc),
		Reports:    report.NewService(report.NewRepository(database), loc),
		Employees:  employee.NewService(employee.NewRepository(database)),
		Promotions: promotion.NewService(promotion.NewRepository(database)),
		Expenses:   expense.NewService(expense.NewRepository(database)),
		Users: user.NewService(
			user.NewRepository(database), tokens, mailer.NewSMTPSender(cfg), cfg.PublicBaseURL,
		),

		Sessions:     sessMgr,
		CartStore:    cart.NewRepository(sessMgr),
		Tokens:       tokens,
		Location:     loc,
		SecureCookie: cfg.IsProduction(),
	}

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	var app http.Handler = h.Routes()
	app = csrfProtect(cfg)(app)
	app = skipCSRFForTokenClients(cfg.InternalSecretKey)(app)
	app = limiter.Middleware(app)
	app = middleware.LoggingMiddleware(app)
	app = middleware.Auth(tokens)(app)
	app = middleware.SecurityHeaders(cfg.IsProduction())(app)
	app = logger.RequestIDMiddleware(app)

	return &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}, nil
}

// newSessionStore keeps sessions on disk when a directory is configured
// and falls back to signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionDir != "" {
		return session.NewFilesystemStore(cfg)
	}
	if cfg.SessionSecret == "" {
		return nil, session.ErrNoSecret
	}
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

func csrfProtect(cfg *config.Config) func(http.Handler) http.Handler {
	secret := cfg.CSRFKey
	if secret == "" {
		secret = cfg.SessionSecret
	}
	key := sha256.Sum256([]byte(secret))

	protect := csrf.Protect(key[:],
		csrf.Secure(cfg.IsProduction()),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	)
	if cfg.IsProduction() {
		return protect
	}

	return func(next http.Handler) http.Handler {
		inner := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	logger.FromCtx(r.Context()).Warn("csrf check failed",
		zap.String("path", r.URL.Path),
		zap.Error(csrf.FailureReason(r)),
	)
	utils.WriteJSONError(w, "Token CSRF inválido ou ausente", http.StatusForbidden)
}

// skipCSRFForTokenClients exempts callers that do not authenticate with
// cookies, such as bearer-token clients and trusted internal services.
func skipCSRFForTokenClients(internalKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, cookieErr := r.Cookie(auth.AccessTokenCookie)
			bearer := cookieErr != nil && strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
			internal := internalKey != "" && r.Header.Get(middleware.ServiceAuthHeader) == internalKey
			if bearer || internal {
				r = csrf.UnsafeSkipCheck(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}
