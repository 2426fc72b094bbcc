package vectordb

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/qdrant/go-client/qdrant"
)

// Upsert inserts or updates a single defect vector
func (c *Client) Upsert(ctx context.Context, defect *models.Defect, vector []float32) error {
	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points:         []*qdrant.PointStruct{defectToPoint(defect, vector)},
	})
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates multiple defect vectors
func (c *Client) UpsertBatch(ctx context.Context, defects []*models.Defect, vectors [][]float32) error {
	if len(defects) != len(vectors) {
		return fmt.Errorf("defects and vectors length mismatch")
	}

	points := make([]*qdrant.PointStruct, len(defects))
	for i, d := range defects {
		points[i] = defectToPoint(d, vectors[i])
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("batch upsert failed: %w", err)
	}
	return nil
}

// Delete removes a point by ID
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.DeleteBatch(ctx, []string{id})
}

// DeleteBatch removes multiple points by ID
func (c *Client) DeleteBatch(ctx context.Context, ids []string) error {
	pointIds := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIds[i] = qdrant.NewIDUUID(id)
	}

	_, err := c.qdrant.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: pointIds,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
