// File: internal/handlers/knowledge_handler.go
package handlers

import (
	"log"
	"net/http"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/repository/knowledge"
)

// KnowledgeHandler serves the curated knowledge base. Entries go straight
// to the repository; there is no service layer in between because the
// endpoints are plain persistence.
type KnowledgeHandler struct {
	knowledge knowledge.KnowledgeRepository
}

func NewKnowledgeHandler(kr knowledge.KnowledgeRepository) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: kr}
}

// Create adds a curated entry.
func (h *KnowledgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	var req dtos.CreateKnowledgeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	entry, err := h.knowledge.Create(r.Context(), req.ToDomain())
	if err != nil {
		log.Printf("[KnowledgeHandler] create failed: %v", err)
		writeError(w, "Could not create knowledge entry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.KnowledgeFromDomain(entry))
}

// List pages through the knowledge base.
func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	skip, limit := pagination(r, 100)
	entries, err := h.knowledge.List(r.Context(), skip, limit)
	if err != nil {
		log.Printf("[KnowledgeHandler] list failed: %v", err)
		writeError(w, "Could not list knowledge entries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.KnowledgeListFromDomain(entries))
}
