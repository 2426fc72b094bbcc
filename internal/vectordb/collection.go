package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// EnsureCollection creates the defect collection if it doesn't exist.
// It returns the names of payload indexes that could not be created.
func (c *Client) EnsureCollection(ctx context.Context, dimensions int) ([]string, error) {
	exists, err := c.qdrant.CollectionExists(ctx, c.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil, nil
	}

	err = c.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: c.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	// Payload indexes for filtering
	var failed []string
	for _, field := range []string{fieldProjectID, fieldStatus} {
		_, err = c.qdrant.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: c.collection,
			FieldName:      field,
			FieldType:      qdrant.PtrOf(qdrant.FieldType_FieldTypeKeyword),
		})
		if err != nil {
			// Index creation failure is not fatal
			failed = append(failed, field)
		}
	}

	return failed, nil
}

// DeleteCollection removes the defect collection
func (c *Client) DeleteCollection(ctx context.Context) error {
	return c.qdrant.DeleteCollection(ctx, c.collection)
}

// CollectionExists checks if the defect collection exists
func (c *Client) CollectionExists(ctx context.Context) (bool, error) {
	return c.qdrant.CollectionExists(ctx, c.collection)
}
