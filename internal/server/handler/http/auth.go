package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finflow/finflow/internal/middleware"
	"github.com/finflow/finflow/internal/models"
)

// AuthService defines the interface for account operations required by the
// HTTP handlers.
type AuthService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, name, email, password, investmentProfile string) (*models.User, error)
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	// UpdateUser applies the non-nil fields to the user.
	UpdateUser(ctx context.Context, uid int64, name, password, investmentProfile *string) (*models.User, error)
	// DeleteUser removes the user.
	DeleteUser(ctx context.Context, uid int64) error
}

// AuthHandler handles HTTP requests for registration, login, and account
// management.
type AuthHandler struct {
	// AuthService performs the underlying account operations.
	AuthService AuthService
}

// SignupRequest represents the JSON payload for user registration.
type SignupRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	InvestmentProfile string `json:"investment_profile"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the JSON payload for account updates.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name              *string `json:"name"`
	Password          *string `json:"password"`
	InvestmentProfile *string `json:"investment_profile"`
}

// Signup handles user registration requests.
// It expects a JSON body with non-empty name, email, and password, and a
// well-formed email address. On success it returns 201 with the sanitized
// user; the password hash is never part of the response.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password, req.InvestmentProfile)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles login requests.
// It expects a JSON body with email and password and returns a bearer
// token on success. Unknown email and wrong password produce the same
// 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated caller's sanitized profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles PATCH /users/{user_id}. Callers may only update their own
// account.
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	uid, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if user == nil || user.UID != uid {
		writeError(w, http.StatusForbidden, "not authorized to update this user")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.AuthService.UpdateUser(r.Context(), uid, req.Name, req.Password, req.InvestmentProfile)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /users/{user_id}. Callers may only delete their own
// account.
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	uid, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if user == nil || user.UID != uid {
		writeError(w, http.StatusForbidden, "not authorized to delete this user")
		return
	}

	if err := h.AuthService.DeleteUser(r.Context(), uid); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "user deleted"})
}
