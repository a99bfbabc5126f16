// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Groq (priority 1): hosted, OpenAI-compatible, vision-capable.
	GroqAPIKey      string
	GroqBaseURL     string
	GroqModel       string
	GroqVisionModel string

	// HuggingFace Inference API (priority 2): hosted, text-only. The
	// embedding model is served through the feature-extraction pipeline.
	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
	HuggingFaceModel   string
	EmbeddingModel     string

	// Ollama (priority 3): local server. An empty base URL means the
	// provider is unconfigured and is skipped without a network call.
	OllamaBaseURL        string
	OllamaModel          string
	OllamaEmbeddingModel string

	// Model parameters applied when a request leaves them unset
	Temperature float32
	MaxTokens   int

	// Per-attempt timeouts. A local model may need to load from disk on
	// first use, so the local timeout is much longer than the hosted one.
	HostedTimeout time.Duration
	LocalTimeout  time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		GroqBaseURL:          "https://api.groq.com/openai/v1",
		GroqModel:            "llama-3.3-70b-versatile",
		GroqVisionModel:      "llama-3.2-11b-vision-preview",
		HuggingFaceBaseURL:   "https://api-inference.huggingface.co",
		HuggingFaceModel:     "meta-llama/Meta-Llama-3-8B-Instruct",
		EmbeddingModel:       "sentence-transformers/all-MiniLM-L6-v2",
		OllamaModel:          "llama3",
		OllamaEmbeddingModel: "all-minilm:l6-v2",
		Temperature:          0.3,
		MaxTokens:            1000,
		HostedTimeout:        30 * time.Second,
		LocalTimeout:         120 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if c.HostedTimeout <= 0 || c.LocalTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.GroqAPIKey != "" && c.GroqModel == "" {
		return fmt.Errorf("GROQ_MODEL is required when GROQ_API_KEY is set")
	}
	if c.HuggingFaceAPIKey != "" && c.HuggingFaceModel == "" {
		return fmt.Errorf("HUGGINGFACE_MODEL is required when HUGGINGFACE_API_KEY is set")
	}
	if c.OllamaBaseURL != "" && c.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL is required when OLLAMA_BASE_URL is set")
	}
	return nil
}
