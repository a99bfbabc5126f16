// File: internal/repository/knowledge/gorm_knowledge_repository_test.go
package knowledge

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

func newTestRepository(t *testing.T) KnowledgeRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "opening in-memory database should succeed")
	require.NoError(t, db.AutoMigrate(&domain.KnowledgeEntry{}))
	return NewGormKnowledgeRepository(db)
}

func TestCreateAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	source := "WHO fact sheet"
	for _, entry := range []domain.KnowledgeEntry{
		{Title: "Hypertension basics", Content: "Blood pressure above 140/90 is high.", Source: &source},
		{Title: "Hydration", Content: "Adults need roughly two liters of water daily."},
		{Title: "Sleep", Content: "Seven to nine hours is the adult range."},
	} {
		e := entry
		_, err := repo.Create(ctx, &e)
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Hydration", page[0].Title)
	assert.Equal(t, "Sleep", page[1].Title)
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Create(context.Background(), &domain.KnowledgeEntry{Title: "Empty"})
	assert.Error(t, err)
}
