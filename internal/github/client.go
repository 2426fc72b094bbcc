package github

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

// restClient is the part of api.RESTClient used here
type restClient interface {
	Get(path string, response interface{}) error
}

// Client wraps GitHub API operations
type Client struct {
	rest restClient
}

// NewClient creates a new GitHub client using the gh CLI credentials
func NewClient() (*Client, error) {
	rest, err := api.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	return &Client{rest: rest}, nil
}

// Close releases resources
func (c *Client) Close() error {
	return nil
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}
