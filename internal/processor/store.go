package processor

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/embedding"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/vectordb"
	"github.com/luizchimenes/debugae/pkg/models"
)

// VectorStore is the defect index; *vectordb.Client implements it
type VectorStore interface {
	EnsureCollection(ctx context.Context, dimensions int) ([]string, error)
	Upsert(ctx context.Context, defect *models.Defect, vector []float32) error
	UpsertBatch(ctx context.Context, defects []*models.Defect, vectors [][]float32) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, vector []float32, projectID string, limit int, minScore float64) ([]models.SearchResult, error)
	Close() error
}

var _ VectorStore = (*vectordb.Client)(nil)

// openIndex connects the embedding providers and Qdrant from config
func openIndex(ctx context.Context, cfg *config.Config, logger logging.Logger) (embedding.Provider, VectorStore, error) {
	embedder, err := embedding.NewFallbackProvider(ctx, &cfg.Embedding, logger)
	if err != nil {
		return nil, nil, err
	}

	vdb, err := vectordb.NewClient(&cfg.Qdrant)
	if err != nil {
		embedder.Close()
		return nil, nil, fmt.Errorf("failed to open index: %w", err)
	}

	return embedder, vdb, nil
}
