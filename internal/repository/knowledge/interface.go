// File: internal/repository/knowledge/interface.go
package knowledge

import (
	"context"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// KnowledgeRepository persists curated knowledge base entries. The
// embedding index is the search surface; this table is the durable copy.
type KnowledgeRepository interface {
	Create(ctx context.Context, entry *domain.KnowledgeEntry) (*domain.KnowledgeEntry, error)
	List(ctx context.Context, skip, limit int) ([]domain.KnowledgeEntry, error)
}
