package handler

import (
	"log/slog"
	"net/http"

	"github.com/voclio/admin/internal/auth"
	"github.com/voclio/admin/internal/model"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	credential *auth.Credential
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(credential *auth.Credential, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{credential: credential, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	res, ok := h.credential.Login(req.Email, req.Password)
	if !ok {
		h.logger.Warn("login rejected", slog.String("remote_addr", r.RemoteAddr))
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.logger.Info("admin logged in", slog.String("user_id", res.User.ID))
	writeJSON(w, http.StatusOK, res)
}

// Logout handles POST /auth/logout. The fixture token is static, so there
// is nothing to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.SessionFromContext(r.Context()); ok {
		h.logger.Info("admin logged out", slog.String("user_id", user.ID))
	}
	writeMessage(w, http.StatusOK, "Logged out")
}
