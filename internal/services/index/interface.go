// File: internal/services/index/interface.go
package index

import "context"

// Embedder produces the vectors stored and compared by the index.
// Satisfied by the AI completion gateway.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchHit is one ranked retrieval result.
type SearchHit struct {
	Text     string
	Score    float64
	Metadata map[string]interface{}
}

// Logger interface for index operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
