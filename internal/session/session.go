package session

import (
	"errors"
	"net/http"
	"os"

	"restaurante-be/internal/config"
	"restaurante-be/internal/logger"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	CookieName = "restaurante_session"

	maxAge       = 7 * 24 * 60 * 60
	maxValueSize = 64 * 1024
)

var ErrNoSecret = errors.New("session secret is not configured")

// NewFilesystemStore keeps session payloads on disk, leaving only the
// signed session id in the cookie.
func NewFilesystemStore(cfg *config.Config) (*sessions.FilesystemStore, error) {
	if cfg.SessionSecret == "" {
		return nil, ErrNoSecret
	}

	dir := cfg.SessionDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	store := sessions.NewFilesystemStore(dir, []byte(cfg.SessionSecret))
	store.MaxLength(maxValueSize)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

type Manager struct {
	store sessions.Store
}

func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// Get never fails on a tampered or expired cookie: it hands back a fresh
// session instead.
func (m *Manager) Get(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("discarding unreadable session", zap.Error(err))
	}
	if sess == nil {
		sess = sessions.NewSession(m.store, CookieName)
		sess.IsNew = true
		sess.Options = &sessions.Options{Path: "/", MaxAge: maxAge, HttpOnly: true}
	}
	return sess
}

func (m *Manager) Load(r *http.Request, key string) (string, bool) {
	v, ok := m.Get(r).Values[key].(string)
	return v, ok
}

func (m *Manager) Store(w http.ResponseWriter, r *http.Request, key, value string) error {
	sess := m.Get(r)
	sess.Values[key] = value
	return sess.Save(r, w)
}

func (m *Manager) Delete(w http.ResponseWriter, r *http.Request, key string) error {
	sess := m.Get(r)
	delete(sess.Values, key)
	return sess.Save(r, w)
}

// Destroy expires the session cookie and its stored payload.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess := m.Get(r)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
