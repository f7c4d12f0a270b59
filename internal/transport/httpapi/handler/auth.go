package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/platform/session"
	"github.com/carteira-app/carteira/internal/transport/httpapi/middleware"
)

// SessionServiceInterface defines the session operations needed by AuthHandler
type SessionServiceInterface interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	Signup(ctx context.Context, name, email, password string) (session.Session, error)
	Logout(ctx context.Context, id uuid.UUID) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	sessions SessionServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions SessionServiceInterface) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is what the client keeps: an opaque session ID.
// The backend token never leaves this service.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionResponse(s session.Session) SessionResponse {
	return SessionResponse{
		SessionID: s.ID.String(),
		AccountID: s.AccountID,
		ExpiresAt: s.ExpiresAt,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if bankapi.IsUnauthorized(err) {
			respondError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		respondError(w, "failed to login", http.StatusBadGateway)
		return
	}

	respondJSON(w, sessionResponse(sess), http.StatusOK)
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var apiErr *bankapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			respondError(w, "account with this email already exists", http.StatusConflict)
			return
		}
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
			respondError(w, "invalid signup data", http.StatusUnprocessableEntity)
			return
		}
		respondError(w, "failed to sign up", http.StatusBadGateway)
		return
	}

	respondJSON(w, sessionResponse(sess), http.StatusCreated)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	idStr, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, "invalid session", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Logout(r.Context(), id); err != nil {
		respondError(w, "failed to logout", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
