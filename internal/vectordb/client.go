package vectordb

import (
	"fmt"
	"strings"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

const defaultGRPCPort = 6334

// Client wraps Qdrant operations on the defect collection
type Client struct {
	qdrant     *qdrant.Client
	collection string
}

// NewClient creates a new Qdrant client
func NewClient(cfg *config.QdrantConfig) (*Client, error) {
	host, port := parseHostPort(cfg.URL)

	// Qdrant Cloud only accepts TLS
	useTLS := strings.HasPrefix(cfg.URL, "https://") ||
		strings.Contains(host, "qdrant.io") || strings.Contains(host, "qdrant.cloud")

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "debugae_defects"
	}

	return &Client{qdrant: client, collection: collection}, nil
}

// parseHostPort extracts host and port from URL string
func parseHostPort(url string) (string, int) {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimSuffix(url, "/")

	if idx := strings.LastIndex(url, ":"); idx != -1 {
		host := url[:idx]
		var port int
		_, _ = fmt.Sscanf(url[idx+1:], "%d", &port)
		if port == 0 {
			port = defaultGRPCPort
		}
		return host, port
	}

	return url, defaultGRPCPort
}

// Collection returns the name of the defect collection
func (c *Client) Collection() string {
	return c.collection
}

// Close closes the connection
func (c *Client) Close() error {
	if c.qdrant != nil {
		return c.qdrant.Close()
	}
	return nil
}
