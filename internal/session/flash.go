package session

import (
	"net/http"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

var levels = []Level{LevelError, LevelWarning, LevelSuccess, LevelInfo}

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func flashKey(l Level) string {
	return "_flash_" + string(l)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, level Level, msg string) error {
	sess := m.Get(r)
	sess.AddFlash(msg, flashKey(level))
	return sess.Save(r, w)
}

// PopFlashes returns and clears pending notices, most severe first.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) ([]Notice, error) {
	sess := m.Get(r)

	notices := []Notice{}
	for _, l := range levels {
		for _, f := range sess.Flashes(flashKey(l)) {
			if msg, ok := f.(string); ok {
				notices = append(notices, Notice{Level: l, Message: msg})
			}
		}
	}
	if len(notices) == 0 {
		return notices, nil
	}
	return notices, sess.Save(r, w)
}
