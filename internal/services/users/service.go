// File: internal/services/users/service.go
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medbridge/go-medbridge/internal/auth"
	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/repository/user"
)

// Logger interface for the users service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateInput carries profile edits; nil means "leave unchanged".
type UpdateInput struct {
	Email    *string
	FullName *string
	Password *string
}

// Service handles registration, login, and profile management.
type Service struct {
	users         user.UserRepository
	jwtSecret     []byte
	tokenLifetime time.Duration
	logger        Logger
}

// NewService creates a users service.
func NewService(users user.UserRepository, jwtSecret string, expiryMinutes int, logger Logger) *Service {
	return &Service{
		users:         users,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: time.Duration(expiryMinutes) * time.Minute,
		logger:        logger,
	}
}

// Register creates a new account. Duplicate usernames and emails surface
// the package sentinels so the HTTP layer can answer 400.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	newUser := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
	}
	if err := newUser.IsValid(); err != nil {
		return nil, err
	}
	if err := newUser.HashPassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		s.logger.Warn("registration rejected, username taken", "username", mask(input.Username))
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		s.logger.Warn("registration rejected, email taken", "username", mask(input.Username))
		return nil, ErrEmailTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "username", mask(created.Username))
	return created, nil
}

// Login verifies credentials and returns a signed bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	account, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed, user not found", "username", mask(username))
		return "", ErrInvalidCredentials
	}
	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed, wrong password", "username", mask(username), "user_id", account.ID)
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(account.ID, s.jwtSecret, s.tokenLifetime)
	if err != nil {
		s.logger.Error("token generation failed", "user_id", account.ID, "error", err)
		return "", fmt.Errorf("generating token: %w", err)
	}

	s.logger.Info("login successful", "user_id", account.ID, "username", mask(username))
	return token, nil
}

// ValidateToken checks a bearer token and returns the user ID it carries.
// The auth middleware consumes this through its TokenValidator interface.
func (s *Service) ValidateToken(token string) (uint, error) {
	return auth.ValidateToken(token, s.jwtSecret)
}

// Get loads one user by ID.
func (s *Service) Get(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile edits the current user's email, full name, or password.
// Changing the email to one another account holds surfaces ErrEmailTaken.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, input UpdateInput) (*domain.User, error) {
	account, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != account.Email {
		existing, err := s.users.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		account.Email = *input.Email
	}
	if input.FullName != nil {
		account.FullName = *input.FullName
	}
	if input.Password != nil {
		if err := account.HashPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if err := account.IsValid(); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", account.ID)
	return account, nil
}

// mask hides most of an identifier in logs.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
