package cart

import (
	"encoding/json"
	"net/http"

	"restaurante-be/internal/logger"
	"restaurante-be/internal/session"

	"go.uber.org/zap"
)

const sessionKey = "cart"

// Repository persists a visitor's cart in their server-side session.
type Repository interface {
	Load(r *http.Request) *Cart
	Save(w http.ResponseWriter, r *http.Request, c *Cart) error
}

type repository struct {
	sessions *session.Manager
}

func NewRepository(sessions *session.Manager) Repository {
	return &repository{sessions: sessions}
}

// Load returns an empty cart when none is stored or the payload is unreadable.
func (r *repository) Load(req *http.Request) *Cart {
	raw, ok := r.sessions.Load(req, sessionKey)
	if !ok || raw == "" {
		return New()
	}

	c := New()
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		logger.FromCtx(req.Context()).Warn("discarding corrupt cart",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return New()
	}
	if c.Lines == nil {
		c.Lines = []*Line{}
	}
	return c
}

func (r *repository) Save(w http.ResponseWriter, req *http.Request, c *Cart) error {
	if c.IsEmpty() {
		return r.sessions.Delete(w, req, sessionKey)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.sessions.Store(w, req, sessionKey, string(raw))
}
