package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func StrPtr(s string) *string {
	return &s
}

// ToUint parses a decimal id that fits the platform uint.
func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, strconv.IntSize)
	return uint(n), err
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteJSON answers with payload. API responses are per-user, so they are
// never cached.
func WriteJSON(w http.ResponseWriter, code int, payload any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}
