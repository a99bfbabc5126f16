// File: cmd/diagnostic/index_diagnostic.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/medbridge/go-medbridge/internal/config"
	"github.com/medbridge/go-medbridge/internal/services"
	"github.com/medbridge/go-medbridge/internal/services/ai"
	"github.com/medbridge/go-medbridge/internal/services/index"
)

const (
	indexTestRuns = 5
	indexTopK     = 3
)

// diagnoseIndex opens the flat-file embedding index and times a few probe
// queries through whichever embedding provider is configured.
func diagnoseIndex(cfg *config.Config, aiConfig *ai.Config) {
	log.Println("--- Embedding index diagnostic ---")

	logger := services.NewLogger("diagnostic")
	gateway, err := ai.NewCompletionGateway(aiConfig, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI gateway: %v", err)
	}

	idx, err := index.New(&index.Config{Path: cfg.KnowledgeBasePath}, gateway, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to open embedding index: %v", err)
	}
	log.Printf("Index %s holds %d entries", cfg.KnowledgeBasePath, idx.Len())

	if cfg.HuggingFaceAPIKey == "" && cfg.OllamaBaseURL == "" {
		log.Println("No embedding provider configured; skipping query probes")
		return
	}

	testQuery := "What is the standard dosage for metoprolol?"
	log.Printf("Test query: %q", testQuery)

	var total time.Duration
	for i := 1; i <= indexTestRuns; i++ {
		start := time.Now()
		hits := idx.Query(context.Background(), testQuery, indexTopK)
		took := time.Since(start)
		total += took
		log.Printf("Run %d: %d hits in %v", i, len(hits), took)
	}
	log.Printf("Average query latency: %v", total/indexTestRuns)
}
