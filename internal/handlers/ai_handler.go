// File: internal/handlers/ai_handler.go
package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/services/ai"
	"github.com/medbridge/go-medbridge/internal/services/chat"
	"github.com/medbridge/go-medbridge/internal/services/records"
)

const unconfiguredMessage = "AI service is not configured. Set GROQ_API_KEY, HUGGINGFACE_API_KEY, or OLLAMA_BASE_URL in environment variables."

// AIHandler serves the on-demand AI endpoints: translate, suggestions,
// per-record explain, and the RAG chat.
type AIHandler struct {
	gateway *ai.CompletionGateway
	records *records.Service
	chat    *chat.Service
}

func NewAIHandler(gw *ai.CompletionGateway, rs *records.Service, cs *chat.Service) *AIHandler {
	return &AIHandler{gateway: gw, records: rs, chat: cs}
}

// Translate renders medical text in plain language, without caching.
func (h *AIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	var req dtos.TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeFieldErrors(w, map[string]string{"text": "Text is required."})
		return
	}

	if !h.gateway.IsConfigured() {
		writeError(w, unconfiguredMessage, http.StatusServiceUnavailable)
		return
	}

	result, err := h.gateway.Complete(r.Context(), ai.TranslationPrompt(req.Text))
	if err != nil {
		log.Printf("[AIHandler] translation failed: %v", err)
		writeError(w, "Failed to translate medical text. Please try again.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.AIResponse{Result: result, Cached: false})
}

// Suggestions produces lifestyle advice for a condition, without caching.
func (h *AIHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	var req dtos.SuggestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Condition = strings.TrimSpace(req.Condition)
	if req.Condition == "" {
		writeFieldErrors(w, map[string]string{"condition": "Condition is required."})
		return
	}

	if !h.gateway.IsConfigured() {
		writeError(w, unconfiguredMessage, http.StatusServiceUnavailable)
		return
	}

	result, err := h.gateway.Complete(r.Context(), ai.SuggestionsPrompt(req.Condition))
	if err != nil {
		log.Printf("[AIHandler] suggestions failed: %v", err)
		writeError(w, "Failed to generate lifestyle suggestions. Please try again.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.AIResponse{Result: result, Cached: false})
}

// Explain translates one record and suggests lifestyle changes, caching both
// on the record row. ?force_refresh=true bypasses the cache.
func (h *AIHandler) Explain(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	result, err := h.records.Explain(r.Context(), userID, recordID, queryBool(r, "force_refresh"))
	if err != nil {
		switch {
		case records.IsNotFound(err):
			writeError(w, "Medical record not found", http.StatusNotFound)
		case records.IsUnavailable(err):
			h.writeUnavailable(w)
		default:
			log.Printf("[AIHandler] explain failed: %v", err)
			writeError(w, "Something went wrong on our end.", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, dtos.ExplainResponse{
		Translation: result.Translation,
		Suggestions: result.Suggestions,
		Cached:      result.Cached,
	})
}

// Chat answers one patient message, optionally grounded in the user's own
// records and the medication reference.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dtos.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeFieldErrors(w, map[string]string{"message": "Message is required."})
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		writeFieldErrors(w, map[string]string{"image": "Image must be base64 encoded."})
		return
	}

	response, err := h.chat.Chat(r.Context(), userID, chat.Input{
		Message:        req.Message,
		IncludeContext: req.IncludeContext,
		Image:          image,
	})
	if err != nil {
		if ai.IsUnavailable(err) {
			h.writeUnavailable(w)
			return
		}
		log.Printf("[AIHandler] chat failed: %v", err)
		writeError(w, "Something went wrong on our end.", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ChatResponse{Response: response})
}

func (h *AIHandler) writeUnavailable(w http.ResponseWriter) {
	if !h.gateway.IsConfigured() {
		writeError(w, unconfiguredMessage, http.StatusServiceUnavailable)
		return
	}
	writeError(w, "AI providers are currently unavailable. Please try again.", http.StatusServiceUnavailable)
}

// decodeImage accepts a raw base64 payload or a data URL.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	if i := strings.Index(encoded, ","); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
