package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/embedding"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/pkg/models"
)

// Searcher handles interactive similarity searches
type Searcher struct {
	embedder embedding.Provider
	store    VectorStore
	minScore float64
}

// NewSearcher creates a new searcher
func NewSearcher(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Searcher, error) {
	embedder, store, err := openIndex(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewSearcherWith(embedder, store, cfg.Semantic.MinScore), nil
}

// NewSearcherWith creates a searcher on top of existing backends
func NewSearcherWith(embedder embedding.Provider, store VectorStore, minScore float64) *Searcher {
	return &Searcher{embedder: embedder, store: store, minScore: minScore}
}

// Close releases resources
func (s *Searcher) Close() error {
	s.embedder.Close()
	return s.store.Close()
}

// Search finds defects semantically close to a free-text query.
// An empty projectID searches every project.
func (s *Searcher) Search(ctx context.Context, query, projectID string, limit int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []models.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	vector, err := s.embedder.Embed(ctx, embedding.TruncateText(query, 6000))
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	return s.store.Search(ctx, vector, projectID, limit, s.minScore)
}
