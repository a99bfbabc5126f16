// File: internal/repository/user/gorm_user_repository_test.go
package user

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medbridge/go-medbridge/internal/domain"
)

func newTestRepository(t *testing.T) UserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "opening in-memory database should succeed")
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return NewGormUserRepository(db)
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Username: "pat",
		Email:    "pat@example.com",
		FullName: "Pat Doe",
		Password: "hashed-by-caller",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byUsername, err := repo.FindByUsername(ctx, "pat")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.FindByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pat", byID.Username)
}

func TestFindMissingReturnsSentinel(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateRejectsInvalidUser(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "ab", Email: "a@b.com"})
	assert.Error(t, err, "short usernames are rejected before hitting the database")

	_, err = repo.Create(ctx, &domain.User{Username: "valid", Email: "not-an-email"})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Username: "pat",
		Email:    "pat@example.com",
		Password: "hash",
	})
	require.NoError(t, err)

	created.FullName = "Pat Q. Doe"
	require.NoError(t, repo.Update(ctx, created))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat Q. Doe", reloaded.FullName)

	assert.Error(t, repo.Update(ctx, &domain.User{}), "zero ID is rejected")
}
