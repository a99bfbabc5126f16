// File: internal/dtos/ai.go
package dtos

// TranslateRequest is the body for POST /api/ai/translate.
type TranslateRequest struct {
	Text string `json:"text"`
}

// SuggestionsRequest is the body for POST /api/ai/suggestions.
type SuggestionsRequest struct {
	Condition string `json:"condition"`
}

// AIResponse answers the on-demand translate and suggestions endpoints.
// These endpoints never serve from cache, so Cached is always false; the
// field exists to keep the shape aligned with the explain endpoint.
type AIResponse struct {
	Result string `json:"result"`
	Cached bool   `json:"cached"`
}

// ChatRequest is the body for POST /api/ai/chat. Image is optional,
// base64-encoded; IncludeContext asks for retrieval over the caller's
// indexed records.
type ChatRequest struct {
	Message        string `json:"message"`
	IncludeContext bool   `json:"include_context"`
	Image          string `json:"image"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
