// File: internal/services/ai/interface.go
package ai

import "context"

// CompletionRequest carries one prompt exchange to a provider. Image is
// optional; the gateway routes image requests only to providers that
// accept them.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Image        []byte
	Temperature  float32
	MaxTokens    int
}

// ProviderResult is the outcome of a single provider attempt. Exactly one
// side is meaningful: a success carries non-empty Text and a nil Err.
type ProviderResult struct {
	Text string
	Err  error
}

func Success(text string) ProviderResult { return ProviderResult{Text: text} }

func Failure(err error) ProviderResult { return ProviderResult{Err: err} }

// OK reports whether the attempt produced usable text.
func (r ProviderResult) OK() bool { return r.Err == nil && r.Text != "" }

// Provider is a single completion backend. Complete never panics and never
// returns a bare Go error; every attempt resolves to a ProviderResult.
type Provider interface {
	Name() string
	Configured() bool
	SupportsVision() bool
	Complete(ctx context.Context, req CompletionRequest) ProviderResult
}

// Embedder produces fixed-length embedding vectors for the retrieval index.
type Embedder interface {
	Name() string
	Configured() bool
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Logger interface for AI operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
