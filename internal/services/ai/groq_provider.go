// File: internal/services/ai/groq_provider.go
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// GroqProvider talks to Groq's OpenAI-compatible chat API. It is the only
// provider that accepts images.
type GroqProvider struct {
	config *Config
	client *openai.Client
}

func NewGroqProvider(config *Config) *GroqProvider {
	clientConfig := openai.DefaultConfig(config.GroqAPIKey)
	clientConfig.BaseURL = config.GroqBaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: config.HostedTimeout}

	return &GroqProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Configured() bool { return p.config.GroqAPIKey != "" }

func (p *GroqProvider) SupportsVision() bool { return true }

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) ProviderResult {
	ctx, cancel := context.WithTimeout(ctx, p.config.HostedTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(req))
	if err != nil {
		return Failure(NewProviderError(p.Name(), "completion", "request failed", err))
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Failure(NewProviderError(p.Name(), "completion", "empty completion response", nil))
	}
	return Success(resp.Choices[0].Message.Content)
}

func (p *GroqProvider) buildRequest(req CompletionRequest) openai.ChatCompletionRequest {
	out := openai.ChatCompletionRequest{
		Model:       p.config.GroqModel,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if len(req.Image) > 0 {
		// Vision models reject a separate system message; fold it into
		// the text part.
		text := req.UserPrompt
		if req.SystemPrompt != "" {
			text = req.SystemPrompt + "\n\n" + req.UserPrompt
		}
		out.Model = p.config.GroqVisionModel
		out.Messages = []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: text},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL(req.Image)},
				},
			},
		}}
		return out
	}

	if req.SystemPrompt != "" {
		out.Messages = append(out.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	out.Messages = append(out.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})
	return out
}

// imageDataURL inlines image bytes as a base64 data URL, sniffing the MIME
// type from the payload.
func imageDataURL(image []byte) string {
	mime := http.DetectContentType(image)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))
}
