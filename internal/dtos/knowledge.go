// File: internal/dtos/knowledge.go
package dtos

import (
	"strings"
	"time"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// CreateKnowledgeRequest is the body for POST /api/knowledge.
type CreateKnowledgeRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Source  *string `json:"source"`
}

func (r *CreateKnowledgeRequest) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Title) == "" {
		problems["title"] = "Title is required."
	}
	if strings.TrimSpace(r.Content) == "" {
		problems["content"] = "Content is required."
	}
	return problems
}

// ToDomain maps the payload to a knowledge entry row.
func (r *CreateKnowledgeRequest) ToDomain() *domain.KnowledgeEntry {
	return &domain.KnowledgeEntry{
		Title:   r.Title,
		Content: r.Content,
		Source:  r.Source,
	}
}

// KnowledgeResponse is the stored entry projection.
type KnowledgeResponse struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Source    *string `json:"source"`
	CreatedAt string  `json:"created_at"`
}

// KnowledgeFromDomain maps an entry row to its projection.
func KnowledgeFromDomain(entry *domain.KnowledgeEntry) KnowledgeResponse {
	return KnowledgeResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		Source:    entry.Source,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}

// KnowledgeListFromDomain maps a page of entries, never nil.
func KnowledgeListFromDomain(entries []domain.KnowledgeEntry) []KnowledgeResponse {
	out := make([]KnowledgeResponse, len(entries))
	for i := range entries {
		out[i] = KnowledgeFromDomain(&entries[i])
	}
	return out
}
