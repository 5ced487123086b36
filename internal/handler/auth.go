package handler

import (
	"net/http"

	"restaurante-be/internal/auth"
	"restaurante-be/internal/session"
	"restaurante-be/internal/user"
)

const (
	registeredMsg    = "Registro bem-sucedido! Por favor, faça login."
	loggedOutMsg     = "Você saiu da sua conta."
	resetRequestMsg  = "Se o email estiver cadastrado, você receberá instruções para redefinir sua senha."
	resetCompleteMsg = "Sua senha foi redefinida com sucesso!"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Users.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.flash(w, r, session.LevelSuccess, registeredMsg)
	writeJSON(w, http.StatusCreated, u)
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Login sets the access token cookie and also returns the token for
// clients that prefer the Authorization header.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.Users.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetAccessTokenCookie(w, token, h.Tokens.TTL(), h.SecureCookie)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

// Logout drops the token cookie. The cart survives in the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAccessTokenCookie(w)
	h.flash(w, r, session.LevelInfo, loggedOutMsg)
	writeMessage(w, http.StatusOK, loggedOutMsg)
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req user.PasswordResetRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Users.RequestPasswordReset(r.Context(), req, h.now()); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resetRequestMsg)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req user.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Users.ResetPassword(r.Context(), r.PathValue("token"), req, h.now()); err != nil {
		writeError(w, r, err)
		return
	}

	h.flash(w, r, session.LevelSuccess, resetCompleteMsg)
	writeMessage(w, http.StatusOK, resetCompleteMsg)
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Users.ListClients(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}
