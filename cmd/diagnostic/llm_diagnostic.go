// File: cmd/diagnostic/llm_diagnostic.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/medbridge/go-medbridge/internal/config"
	"github.com/medbridge/go-medbridge/internal/services/ai"
)

// Probes every configured completion provider with a one-line prompt, then
// exercises the embedding index. Run from the project root so the .env and
// index files resolve.
func main() {
	log.Println("--- MedBridge provider diagnostic ---")

	cfg := config.Load()
	aiConfig := buildAIConfig(cfg)

	providers := []ai.Provider{
		ai.NewGroqProvider(aiConfig),
		ai.NewHuggingFaceProvider(aiConfig),
	}
	if ollama, err := ai.NewOllamaProvider(aiConfig); err != nil {
		log.Printf("ollama: init failed: %v", err)
	} else {
		providers = append(providers, ollama)
	}

	probe := ai.CompletionRequest{
		UserPrompt: "Reply with the single word: ok",
		MaxTokens:  8,
	}

	configured := 0
	for _, p := range providers {
		if !p.Configured() {
			log.Printf("%-12s not configured, skipping", p.Name())
			continue
		}
		configured++

		ctx, cancel := context.WithTimeout(context.Background(), aiConfig.LocalTimeout)
		start := time.Now()
		result := p.Complete(ctx, probe)
		cancel()

		if result.OK() {
			log.Printf("%-12s OK in %v: %q", p.Name(), time.Since(start), result.Text)
		} else {
			log.Printf("%-12s FAILED in %v: %v", p.Name(), time.Since(start), result.Err)
		}
	}
	if configured == 0 {
		log.Println("No completion provider configured; AI endpoints will answer 503")
	}

	diagnoseIndex(cfg, aiConfig)
}

func buildAIConfig(cfg *config.Config) *ai.Config {
	aiConfig := ai.DefaultConfig()
	aiConfig.GroqAPIKey = cfg.GroqAPIKey
	aiConfig.GroqModel = cfg.GroqModel
	aiConfig.GroqVisionModel = cfg.GroqVisionModel
	aiConfig.HuggingFaceAPIKey = cfg.HuggingFaceAPIKey
	aiConfig.HuggingFaceModel = cfg.HuggingFaceModel
	aiConfig.EmbeddingModel = cfg.EmbeddingModel
	aiConfig.OllamaBaseURL = cfg.OllamaBaseURL
	aiConfig.OllamaModel = cfg.OllamaModel
	aiConfig.OllamaEmbeddingModel = cfg.OllamaEmbeddingModel
	aiConfig.Temperature = cfg.AITemperature
	aiConfig.MaxTokens = cfg.AIMaxTokens
	return aiConfig
}
