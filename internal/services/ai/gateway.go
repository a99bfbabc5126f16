// File: internal/services/ai/gateway.go
package ai

import "context"

// CompletionGateway tries providers in fixed priority order until one
// produces text. Provider failures never escape as panics; total failure
// is reported as a typed unavailable error.
type CompletionGateway struct {
	config    *Config
	providers []Provider
	embedders []Embedder
	logger    Logger
}

// NewCompletionGateway wires the standard provider chain: Groq, then
// HuggingFace, then a local Ollama server.
func NewCompletionGateway(config *Config, logger Logger) (*CompletionGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	groq := NewGroqProvider(config)
	hf := NewHuggingFaceProvider(config)
	ollama, err := NewOllamaProvider(config)
	if err != nil {
		return nil, err
	}

	return &CompletionGateway{
		config:    config,
		providers: []Provider{groq, hf, ollama},
		embedders: []Embedder{hf, ollama},
		logger:    logger,
	}, nil
}

// NewGatewayFromProviders wires an explicit provider chain; used by tests
// and the diagnostic tool.
func NewGatewayFromProviders(config *Config, logger Logger, providers []Provider, embedders []Embedder) *CompletionGateway {
	return &CompletionGateway{
		config:    config,
		providers: providers,
		embedders: embedders,
		logger:    logger,
	}
}

// IsConfigured reports whether at least one completion provider has
// credentials. The HTTP layer checks this before calling Complete.
func (g *CompletionGateway) IsConfigured() bool {
	for _, p := range g.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

// Complete returns the first non-empty completion in provider priority
// order. Unconfigured providers are skipped without a network call, and a
// request that carries an image only goes to vision-capable providers.
// Timeouts, transport errors, and empty responses are treated alike: log
// and fall through to the next provider.
func (g *CompletionGateway) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	req = g.normalize(req)

	for _, p := range g.providers {
		if !p.Configured() {
			continue
		}
		if len(req.Image) > 0 && !p.SupportsVision() {
			g.logger.Debug("skipping text-only provider for image request", "provider", p.Name())
			continue
		}

		result := p.Complete(ctx, req)
		if result.OK() {
			g.logger.Info("completion served", "provider", p.Name())
			return result.Text, nil
		}

		err := result.Err
		if err == nil {
			err = NewProviderError(p.Name(), "completion", "empty completion response", nil)
		}
		g.logger.Warn("provider failed, falling through", "provider", p.Name(), "error", err.Error())
	}

	return "", NewUnavailableError("completion")
}

// Embed returns an embedding vector from the first working embedding
// provider.
func (g *CompletionGateway) Embed(ctx context.Context, text string) ([]float32, error) {
	for _, e := range g.embedders {
		if !e.Configured() {
			continue
		}

		vector, err := e.Embed(ctx, text)
		if err != nil {
			g.logger.Warn("embedder failed, falling through", "embedder", e.Name(), "error", err.Error())
			continue
		}
		if len(vector) > 0 {
			return vector, nil
		}
	}
	return nil, NewUnavailableError("embedding")
}

// normalize fills unset model parameters from the gateway configuration.
func (g *CompletionGateway) normalize(req CompletionRequest) CompletionRequest {
	if req.Temperature == 0 {
		req.Temperature = g.config.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = g.config.MaxTokens
	}
	return req
}
