package vectordb

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/qdrant/go-client/qdrant"
)

// Search finds the defects closest to vector, best first.
// A non-empty projectID restricts results to that project.
func (c *Client) Search(ctx context.Context, vector []float32, projectID string, limit int, minScore float64) ([]models.SearchResult, error) {
	return c.SearchFiltered(ctx, vector, limit, minScore, ProjectFilter(projectID))
}

// SearchFiltered searches with an arbitrary payload filter
func (c *Client) SearchFiltered(ctx context.Context, vector []float32, limit int, minScore float64, filter *qdrant.Filter) ([]models.SearchResult, error) {
	scoreThreshold := float32(minScore)

	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		ScoreThreshold: &scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         filter,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	// Qdrant returns points ordered by score
	results := make([]models.SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, models.SearchResult{
			Defect: payloadToDefect(point.Payload),
			Score:  float64(point.Score),
		})
	}

	return results, nil
}

// ProjectFilter matches defects of one project; empty projectID means no filter
func ProjectFilter(projectID string) *qdrant.Filter {
	if projectID == "" {
		return nil
	}
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(fieldProjectID, projectID),
		},
	}
}
