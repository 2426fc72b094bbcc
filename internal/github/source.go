package github

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
)

// Source lists the issues of the configured repositories as candidate defects
type Source struct {
	client *Client
	repos  []string
	state  string
	per    int
}

// NewSource creates a candidate source backed by GitHub issues
func NewSource(client *Client, cfg *config.GitHubConfig) *Source {
	return &Source{
		client: client,
		repos:  cfg.Repositories,
		state:  cfg.State,
		per:    cfg.PerPage,
	}
}

// Candidates returns every issue of every configured repository.
// The draft is not used: cross-repository issues are part of the pool.
func (s *Source) Candidates(ctx context.Context, _ models.Draft) ([]models.Defect, error) {
	var pool []models.Defect
	for _, full := range s.repos {
		org, repo, err := ParseRepo(full)
		if err != nil {
			return nil, err
		}

		defects, err := s.client.ListAllIssues(ctx, org, repo, s.state, s.per)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", full, err)
		}
		pool = append(pool, defects...)
	}
	return pool, nil
}

// Close releases the underlying client
func (s *Source) Close() error {
	return s.client.Close()
}
