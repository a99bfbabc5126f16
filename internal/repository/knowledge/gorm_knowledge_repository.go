// File: internal/repository/knowledge/gorm_knowledge_repository.go
package knowledge

import (
	"context"
	"errors"
	"log"

	"github.com/medbridge/go-medbridge/internal/domain"
	"gorm.io/gorm"
)

type gormKnowledgeRepository struct {
	db *gorm.DB
}

// NewGormKnowledgeRepository creates a GORM-backed knowledge repository.
func NewGormKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &gormKnowledgeRepository{db: db}
}

func (r *gormKnowledgeRepository) Create(ctx context.Context, entry *domain.KnowledgeEntry) (*domain.KnowledgeEntry, error) {
	if entry.Content == "" {
		return nil, errors.New("knowledge entry content cannot be empty")
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[KnowledgeRepository] Database error during entry creation: %v", err)
		return nil, errors.New("database error creating knowledge entry")
	}
	return entry, nil
}

func (r *gormKnowledgeRepository) List(ctx context.Context, skip, limit int) ([]domain.KnowledgeEntry, error) {
	var entries []domain.KnowledgeEntry
	err := r.db.WithContext(ctx).Order("id asc").Offset(skip).Limit(limit).Find(&entries).Error
	if err != nil {
		log.Printf("[KnowledgeRepository] Database error listing entries: %v", err)
		return nil, errors.New("database error listing knowledge entries")
	}
	return entries, nil
}
