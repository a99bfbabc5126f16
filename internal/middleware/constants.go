// File: internal/middleware/constants.go
package middleware

// Context keys for values the middleware chain hands to handlers.
type contextKey string

const (
	// UserIDKey carries the authenticated user's ID (uint).
	UserIDKey contextKey = "user_id"
)
