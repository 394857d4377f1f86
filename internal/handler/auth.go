package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/personal-site/internal/apperror"
	"github.com/sakif/personal-site/internal/auth"
	"github.com/sakif/personal-site/internal/service"
)

// AuthHandler serves login and the token self-check.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// HandleLogin exchanges a username and password for a bearer token.
//
// HTTP: POST /api/login
// REQUEST BODY: {"username": "admin", "password": "..."}
// RESPONSE: {"token": "<jwt>"} or 401 {"error": "Invalid credentials"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// HandleMe reports who the presented token belongs to.
//
// HTTP: GET /api/me (bearer)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperror.Unauthenticated(auth.MsgAccessDenied))
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{UserID: id.UserID, Username: id.Username})
}
