// File: internal/dtos/user.go
package dtos

import (
	"strings"
	"time"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Sanitize trims surrounding whitespace from every field except the
// password, which is kept verbatim.
func (r *RegisterRequest) Sanitize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
}

// Validate returns one message per invalid field, keyed by field name.
// An empty map means the payload is acceptable.
func (r *RegisterRequest) Validate() map[string]string {
	problems := map[string]string{}
	if len(r.Username) < 3 || len(r.Username) > 50 {
		problems["username"] = "Username must be 3-50 characters."
	}
	if !strings.Contains(r.Email, "@") {
		problems["email"] = "A valid email address is required."
	}
	if len(r.Password) < 8 {
		problems["password"] = "Password must be at least 8 characters."
	}
	return problems
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the login response, shaped after the OAuth2 password
// flow the original clients expect.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateProfileRequest is the payload for PUT /api/users/me. Absent fields
// stay unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

// Validate checks only the fields that are present.
func (r *UpdateProfileRequest) Validate() map[string]string {
	problems := map[string]string{}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		problems["email"] = "A valid email address is required."
	}
	if r.Password != nil && len(*r.Password) < 8 {
		problems["password"] = "Password must be at least 8 characters."
	}
	return problems
}

// UserResponse is the public projection of a user. The password hash never
// leaves the domain layer.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProfileResponse extends the public projection with record statistics for
// GET /api/users/me.
type ProfileResponse struct {
	UserResponse
	RecordCount int64 `json:"record_count"`
}

// DashboardResponse is the aggregate view behind GET /api/users/dashboard.
type DashboardResponse struct {
	TotalRecords           int64           `json:"total_records"`
	RecordsWithTranslation int64           `json:"records_with_translation"`
	RecordsWithSuggestions int64           `json:"records_with_suggestions"`
	RecentRecords          []RecordSummary `json:"recent_records"`
}

// UserFromDomain maps a domain user to its public projection.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// ProfileFromDomain maps a domain user plus their record count to the
// profile projection.
func ProfileFromDomain(user *domain.User, recordCount int64) ProfileResponse {
	return ProfileResponse{
		UserResponse: UserFromDomain(user),
		RecordCount:  recordCount,
	}
}
