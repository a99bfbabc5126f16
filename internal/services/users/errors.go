// File: internal/services/users/errors.go
package users

import "errors"

// Sentinel errors mapped by the HTTP layer; their text is the wire message.
var (
	ErrUsernameTaken      = errors.New("Username already registered")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Incorrect username or password")
)
