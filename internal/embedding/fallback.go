package embedding

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
)

// FallbackProvider wraps primary and fallback providers
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   logging.Logger
}

// NewFallbackProvider creates a provider with primary and optional fallback
func NewFallbackProvider(ctx context.Context, cfg *config.EmbeddingConfig, logger logging.Logger) (*FallbackProvider, error) {
	primary, err := createProvider(ctx, &cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary provider: %w", err)
	}

	var fallback Provider
	if cfg.Fallback.Provider != "" && cfg.Fallback.APIKey != "" {
		fallback, err = createProvider(ctx, &cfg.Fallback)
		if err != nil {
			logger.Warn("Failed to create fallback embedding provider", "provider", cfg.Fallback.Provider, "error", err)
		}
	}

	return NewFallback(primary, fallback, logger), nil
}

// NewFallback combines two providers; fallback may be nil
func NewFallback(primary, fallback Provider, logger logging.Logger) *FallbackProvider {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// createProvider creates a provider based on config
func createProvider(ctx context.Context, cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Dimensions)
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Embed generates an embedding with fallback on failure
func (p *FallbackProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding, err := p.primary.Embed(ctx, text)
	if err == nil {
		return embedding, nil
	}

	if p.fallback == nil {
		return nil, fmt.Errorf("primary embedding failed (no fallback): %w", err)
	}

	p.logger.Warn("Primary embedding failed, trying fallback", "error", err)
	return p.fallback.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts with fallback
func (p *FallbackProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings, err := p.primary.EmbedBatch(ctx, texts)
	if err == nil {
		return embeddings, nil
	}

	if p.fallback == nil {
		return nil, fmt.Errorf("primary embedding failed (no fallback): %w", err)
	}

	p.logger.Warn("Primary batch embedding failed, trying fallback", "texts", len(texts), "error", err)
	return p.fallback.EmbedBatch(ctx, texts)
}

// Close releases resources
func (p *FallbackProvider) Close() error {
	err := p.primary.Close()
	if p.fallback != nil {
		if ferr := p.fallback.Close(); err == nil {
			err = ferr
		}
	}
	return err
}
