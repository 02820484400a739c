package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Register creates a user and returns a signed token for it.
	Register(ctx context.Context, email, password, role string) (string, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Logger records request failures.
	Logger *zap.Logger
}

// registerRequest is the JSON payload for user registration.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// loginRequest is the JSON payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the issued bearer token.
type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /auth/register.
// It expects a JSON body with non-empty email, password and role fields,
// creates the user and responds with a signed token. A taken email
// yields 409, an invalid role 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" || req.Role == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	token, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Login handles POST /auth/login.
// It verifies the email/password pair and responds with a signed token;
// bad credentials yield 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
