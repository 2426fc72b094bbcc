package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/embedding"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/luizchimenes/debugae/pkg/models"
)

// DefaultBatchSize is the number of defects embedded per request
const DefaultBatchSize = 100

// Indexer handles bulk indexing of defects
type Indexer struct {
	embedder   embedding.Provider
	store      VectorStore
	dimensions int
	logger     logging.Logger
	dryRun     bool
}

// NewIndexer creates a new bulk indexer
func NewIndexer(ctx context.Context, cfg *config.Config, logger logging.Logger, dryRun bool) (*Indexer, error) {
	embedder, store, err := openIndex(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewIndexerWith(embedder, store, cfg.Embedding.Primary.Dimensions, logger, dryRun), nil
}

// NewIndexerWith creates an indexer on top of existing backends
func NewIndexerWith(embedder embedding.Provider, store VectorStore, dimensions int, logger logging.Logger, dryRun bool) *Indexer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Indexer{
		embedder:   embedder,
		store:      store,
		dimensions: dimensions,
		logger:     logger,
		dryRun:     dryRun,
	}
}

// Close releases resources
func (idx *Indexer) Close() error {
	idx.embedder.Close()
	return idx.store.Close()
}

// IndexAll indexes every defect of a listing source.
// Failed batches are counted in the stats rather than aborting the run.
func (idx *Indexer) IndexAll(ctx context.Context, src source.Source, batchSize int) (*models.IndexStats, error) {
	start := time.Now()
	stats := &models.IndexStats{}

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}

	defects, err := src.Candidates(ctx, models.Draft{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch defects: %w", err)
	}
	stats.TotalDefects = len(defects)
	idx.logger.Info("Fetched defects", "count", len(defects))

	pending := make([]*models.Defect, 0, len(defects))
	for i := range defects {
		if isBlank(&defects[i]) {
			stats.Skipped++
			continue
		}
		pending = append(pending, &defects[i])
	}

	for i := 0; i < len(pending); i += batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		end := i + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		if err := idx.indexBatch(ctx, batch); err != nil {
			idx.logger.Warn("Batch failed", "from", i, "to", end, "error", err)
			stats.Errors += len(batch)
			continue
		}

		stats.Indexed += len(batch)
		idx.logger.Info("Indexed defects", "indexed", stats.Indexed, "total", stats.TotalDefects)
	}

	stats.DurationMs = int(time.Since(start).Milliseconds())
	return stats, nil
}

func (idx *Indexer) ensureCollection(ctx context.Context) error {
	if idx.dryRun {
		return nil
	}
	failed, err := idx.store.EnsureCollection(ctx, idx.dimensions)
	if err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	for _, field := range failed {
		idx.logger.Warn("Failed to create payload index", "field", field)
	}
	return nil
}

// indexBatch embeds and upserts a batch of defects
func (idx *Indexer) indexBatch(ctx context.Context, defects []*models.Defect) error {
	texts := make([]string, len(defects))
	for i, d := range defects {
		texts[i] = embedding.PrepareDefectText(d.Summary, d.Description)
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if idx.dryRun {
		return nil
	}

	if err := idx.store.UpsertBatch(ctx, defects, vectors); err != nil {
		return fmt.Errorf("failed to upsert batch: %w", err)
	}

	return nil
}

// IndexDefect indexes a single defect
func (idx *Indexer) IndexDefect(ctx context.Context, defect *models.Defect) error {
	if isBlank(defect) {
		return fmt.Errorf("defect %s/%s has no text to index", defect.ProjectID, defect.ID)
	}

	text := embedding.PrepareDefectText(defect.Summary, defect.Description)
	vector, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	if idx.dryRun {
		return nil
	}

	if err := idx.ensureCollection(ctx); err != nil {
		return err
	}
	if err := idx.store.Upsert(ctx, defect, vector); err != nil {
		return fmt.Errorf("failed to upsert defect: %w", err)
	}

	return nil
}

// DeleteDefect removes a defect from the index
func (idx *Indexer) DeleteDefect(ctx context.Context, projectID, id string) error {
	if idx.dryRun {
		return nil
	}
	return idx.store.Delete(ctx, models.DefectUUID(projectID, id))
}

func isBlank(d *models.Defect) bool {
	return strings.TrimSpace(d.Summary) == "" && strings.TrimSpace(d.Description) == ""
}
