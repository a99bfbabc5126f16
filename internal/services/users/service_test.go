// File: internal/services/users/service_test.go
package users

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/repository/user"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return NewService(user.NewGormUserRepository(db), "test-secret", 60, noopLogger{})
}

func register(t *testing.T, svc *Service, username, email, password string) *domain.User {
	t.Helper()
	created, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)
	return created
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := register(t, svc, "alice", "alice@example.com", "secret123")
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "secret123", created.Password, "password is stored hashed")

	token, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID, "the token authorizes the registered user")
}

func TestRegisterDuplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	register(t, svc, "alice", "alice@example.com", "secret123")

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ab", Email: "a@b.com", Password: "secret123"})
	assert.Error(t, err, "short usernames are rejected")

	_, err = svc.Register(ctx, RegisterInput{Username: "carol", Email: "c@d.com", Password: "short"})
	assert.Error(t, err, "short passwords are rejected")
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	register(t, svc, "alice", "alice@example.com", "secret123")

	_, err := svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and wrong password look identical")

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := register(t, svc, "alice", "alice@example.com", "secret123")
	register(t, svc, "bob", "bob@example.com", "secret123")

	newName := "Alice Q."
	updated, err := svc.UpdateProfile(ctx, alice.ID, UpdateInput{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alice Q.", updated.FullName)

	taken := "bob@example.com"
	_, err = svc.UpdateProfile(ctx, alice.ID, UpdateInput{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	same := "alice@example.com"
	_, err = svc.UpdateProfile(ctx, alice.ID, UpdateInput{Email: &same})
	require.NoError(t, err, "keeping the current email is not a conflict")
}

func TestUpdateProfilePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := register(t, svc, "alice", "alice@example.com", "secret123")

	newPassword := "evenbetter456"
	_, err := svc.UpdateProfile(ctx, alice.ID, UpdateInput{Password: &newPassword})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old password stops working")

	token, err := svc.Login(ctx, "alice", "evenbetter456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
