package processor

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/embedding"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/pkg/models"
)

// SemanticSource narrows the candidate pool to the indexed defects nearest
// to the draft. Results span all projects, best score first.
type SemanticSource struct {
	embedder embedding.Provider
	store    VectorStore
	limit    int
	minScore float64
}

// NewSemanticSource creates a vector-search candidate source
func NewSemanticSource(ctx context.Context, cfg *config.Config, logger logging.Logger) (*SemanticSource, error) {
	embedder, store, err := openIndex(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewSemanticSourceWith(embedder, store, &cfg.Semantic), nil
}

// NewSemanticSourceWith creates a semantic source on top of existing backends
func NewSemanticSourceWith(embedder embedding.Provider, store VectorStore, cfg *config.SemanticConfig) *SemanticSource {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 50
	}
	return &SemanticSource{
		embedder: embedder,
		store:    store,
		limit:    limit,
		minScore: cfg.MinScore,
	}
}

// Candidates embeds the draft and returns its nearest indexed defects
func (s *SemanticSource) Candidates(ctx context.Context, draft models.Draft) ([]models.Defect, error) {
	if draft.IsBlank() {
		return []models.Defect{}, nil
	}

	vector, err := s.embedder.Embed(ctx, embedding.PrepareDefectText(draft.Summary, draft.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	results, err := s.store.Search(ctx, vector, "", s.limit, s.minScore)
	if err != nil {
		return nil, err
	}

	defects := make([]models.Defect, len(results))
	for i, r := range results {
		defects[i] = r.Defect
	}
	return defects, nil
}

// Close releases resources
func (s *SemanticSource) Close() error {
	s.embedder.Close()
	return s.store.Close()
}
