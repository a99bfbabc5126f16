// File: internal/services/ai/ollama_provider.go
package ai

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaProvider runs completions against a local Ollama server. A local
// model may need to load from disk on first use, hence the long timeout.
type OllamaProvider struct {
	config *Config
	client *api.Client
}

func NewOllamaProvider(config *Config) (*OllamaProvider, error) {
	p := &OllamaProvider{config: config}
	if config.OllamaBaseURL == "" {
		return p, nil
	}

	base, err := url.Parse(config.OllamaBaseURL)
	if err != nil {
		return nil, NewConfigError("invalid OLLAMA_BASE_URL: " + err.Error())
	}
	p.client = api.NewClient(base, &http.Client{Timeout: config.LocalTimeout})
	return p, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Configured() bool { return p.client != nil }

func (p *OllamaProvider) SupportsVision() bool { return false }

func (p *OllamaProvider) Complete(ctx context.Context, req CompletionRequest) ProviderResult {
	if !p.Configured() {
		return Failure(NewConfigError("OLLAMA_BASE_URL is not set"))
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.LocalTimeout)
	defer cancel()

	messages := make([]api.Message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, api.Message{Role: "user", Content: req.UserPrompt})

	stream := false
	chatReq := &api.ChatRequest{
		Model:    p.config.OllamaModel,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	var sb strings.Builder
	err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return Failure(NewProviderError(p.Name(), "completion", "chat request failed", err))
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Failure(NewProviderError(p.Name(), "completion", "empty completion response", nil))
	}
	return Success(text)
}

// Embed produces embeddings from the local embedding model, used when the
// hosted feature-extraction pipeline is unavailable. The local model must
// produce vectors of the same dimension as the hosted one.
func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if !p.Configured() {
		return nil, NewConfigError("OLLAMA_BASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.LocalTimeout)
	defer cancel()

	resp, err := p.client.Embed(ctx, &api.EmbedRequest{
		Model: p.config.OllamaEmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, NewProviderError(p.Name(), "embedding", "embed request failed", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, NewProviderError(p.Name(), "embedding", "empty embedding response", nil)
	}
	return resp.Embeddings[0], nil
}
