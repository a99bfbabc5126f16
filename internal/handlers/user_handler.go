// File: internal/handlers/user_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/repository/user"
	"github.com/medbridge/go-medbridge/internal/services/records"
	"github.com/medbridge/go-medbridge/internal/services/users"
)

// UserHandler serves the profile and dashboard views.
type UserHandler struct {
	users   *users.Service
	records *records.Service
}

func NewUserHandler(us *users.Service, rs *records.Service) *UserHandler {
	return &UserHandler{users: us, records: rs}
}

// Profile returns the current user's account details plus their record count.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	account, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("[UserHandler] loading profile failed: %v", err)
		writeError(w, "Could not load profile", http.StatusInternalServerError)
		return
	}

	count, err := h.records.Count(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] counting records failed: %v", err)
		writeError(w, "Could not load profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ProfileFromDomain(account, count))
}

// UpdateProfile edits email, full name, or password for the current user.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	account, err := h.users.UpdateProfile(r.Context(), userID, users.UpdateInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			writeError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrUserNotFound):
			writeError(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("[UserHandler] profile update failed: %v", err)
			writeError(w, "Could not update profile", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, dtos.UserFromDomain(account))
}

// Dashboard summarizes the current user's records.
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.records.Dashboard(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] dashboard failed: %v", err)
		writeError(w, "Could not load dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.DashboardResponse{
		TotalRecords:           stats.TotalRecords,
		RecordsWithTranslation: stats.RecordsWithTranslation,
		RecordsWithSuggestions: stats.RecordsWithSuggestions,
		RecentRecords:          dtos.SummariesFromDomain(stats.RecentRecords),
	})
}
