// File: internal/domain/knowledge.go
package domain

import "time"

// KnowledgeEntry is a curated reference note (title, content, optional
// source). Entries are separate from the vector index: they are plain
// rows, listable over the API, not embedded.
type KnowledgeEntry struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	Source    *string
	CreatedAt time.Time
}
