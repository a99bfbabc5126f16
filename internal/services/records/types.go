// File: internal/services/records/types.go
package records

import (
	"context"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/services/ai"
)

// Logger interface for the records service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Gateway is the slice of the completion gateway this service needs.
type Gateway interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
	IsConfigured() bool
}

// Indexer receives record text for similarity search. Add is best-effort:
// implementations swallow their own failures.
type Indexer interface {
	Add(ctx context.Context, id, text string, metadata map[string]interface{}) error
}

// TextExtractor recognizes text in an uploaded image.
type TextExtractor interface {
	ExtractText(image []byte) (text string, confidence float64, err error)
}

// CreateInput is the JSON creation path.
type CreateInput struct {
	Title        string
	OriginalText string
	RecordType   string
}

// CreateImageInput is the multipart creation path.
type CreateImageInput struct {
	Title      string
	RecordType string
	Image      []byte
}

// UpdateInput carries the editable fields; nil means "leave unchanged".
type UpdateInput struct {
	Title        *string
	OriginalText *string
	RecordType   *string
}

// ExplainResult is the explain response: either half may be nil when the
// corresponding provider call failed on a refresh.
type ExplainResult struct {
	Translation *string
	Suggestions *string
	Cached      bool
}

// DashboardStats summarizes a user's records for the dashboard view.
type DashboardStats struct {
	TotalRecords           int64
	RecordsWithTranslation int64
	RecordsWithSuggestions int64
	RecentRecords          []domain.MedicalRecord
}
