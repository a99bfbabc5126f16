// File: internal/services/chat/types.go
package chat

import (
	"context"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/services/ai"
	"github.com/medbridge/go-medbridge/internal/services/index"
)

// Logger interface for the chat service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Gateway is the slice of the completion gateway the chat flow needs.
type Gateway interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
	IsConfigured() bool
}

// Searcher retrieves similar fragments for RAG context.
type Searcher interface {
	Query(ctx context.Context, text string, topN int) []index.SearchHit
}

// MedicationExtractor finds known medications mentioned in the message.
type MedicationExtractor interface {
	ExtractContext(ctx context.Context, text string) ([]domain.MedicationHit, error)
}

// Input is one chat turn from the patient.
type Input struct {
	Message        string
	IncludeContext bool
	Image          []byte
}
