// File: internal/services/ai/huggingface_provider.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HuggingFaceProvider calls the HF Inference API directly. Chat requests
// use the Llama-3 instruct template; embeddings go through the
// feature-extraction pipeline. Text-only.
type HuggingFaceProvider struct {
	config *Config
	client *http.Client
}

func NewHuggingFaceProvider(config *Config) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		config: config,
		client: &http.Client{Timeout: config.HostedTimeout},
	}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

func (p *HuggingFaceProvider) Configured() bool { return p.config.HuggingFaceAPIKey != "" }

func (p *HuggingFaceProvider) SupportsVision() bool { return false }

func (p *HuggingFaceProvider) Complete(ctx context.Context, req CompletionRequest) ProviderResult {
	payload := map[string]interface{}{
		"inputs": llama3Prompt(req.SystemPrompt, req.UserPrompt),
		"parameters": map[string]interface{}{
			"max_new_tokens":   req.MaxTokens,
			"temperature":      req.Temperature,
			"return_full_text": false,
		},
	}

	url := fmt.Sprintf("%s/models/%s", p.config.HuggingFaceBaseURL, p.config.HuggingFaceModel)
	body, err := p.post(ctx, url, payload)
	if err != nil {
		return Failure(err)
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return Failure(NewProviderError(p.Name(), "completion", "unexpected response body", err))
	}
	if len(results) == 0 {
		return Failure(NewProviderError(p.Name(), "completion", "empty completion response", nil))
	}

	text := strings.TrimSpace(results[0].GeneratedText)
	if text == "" {
		return Failure(NewProviderError(p.Name(), "completion", "empty completion response", nil))
	}
	return Success(text)
}

// Embed calls the feature-extraction pipeline. The API returns either a
// flat vector or a batch of one, depending on the model wrapper.
func (p *HuggingFaceProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if !p.Configured() {
		return nil, NewConfigError("HUGGINGFACE_API_KEY is not set")
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", p.config.HuggingFaceBaseURL, p.config.EmbeddingModel)
	body, err := p.post(ctx, url, map[string]interface{}{"inputs": text})
	if err != nil {
		return nil, err
	}

	var nested [][]float32
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []float32
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, NewProviderError(p.Name(), "embedding", "unexpected embedding response shape", nil)
}

func (p *HuggingFaceProvider) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.HostedTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewProviderError(p.Name(), "request", "invalid payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, NewProviderError(p.Name(), "request", "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.HuggingFaceAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &AIError{Type: ErrTypeNetwork, Provider: p.Name(), Operation: "request", Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AIError{Type: ErrTypeNetwork, Provider: p.Name(), Operation: "request", Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AIError{
			Type:      ErrTypeProvider,
			Code:      resp.StatusCode,
			Provider:  p.Name(),
			Operation: "request",
			Message:   strings.TrimSpace(string(responseBody)),
		}
	}
	return responseBody, nil
}

// llama3Prompt renders the instruct-template wrapper Llama-3 checkpoints
// expect when called through the raw inference endpoint.
func llama3Prompt(system, user string) string {
	return fmt.Sprintf("<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n\n%s<|eot_id|><|start_header_id|>user<|end_header_id|>\n\n%s<|eot_id|><|start_header_id|>assistant<|end_header_id|>\n\n", system, user)
}
