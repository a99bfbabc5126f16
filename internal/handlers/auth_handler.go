// File: internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/repository/user"
	"github.com/medbridge/go-medbridge/internal/services/users"
)

// AuthHandler serves registration, login, and the current-user lookup.
type AuthHandler struct {
	users *users.Service
}

func NewAuthHandler(us *users.Service) *AuthHandler {
	return &AuthHandler{users: us}
}

// Register creates a new account and returns its public profile.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Sanitize()
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	account, err := h.users.Register(r.Context(), users.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[AuthHandler] registration failed: %v", err)
		writeError(w, "Could not create account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.UserFromDomain(account))
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Printf("[AuthHandler] login failed: %v", err)
		writeError(w, "Could not log in", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the profile behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	account, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Token is valid but the account is gone.
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("[AuthHandler] loading current user failed: %v", err)
		writeError(w, "Could not load user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.UserFromDomain(account))
}
