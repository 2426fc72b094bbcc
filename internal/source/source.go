// Package source provides the pools of existing defects a draft is checked against.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/luizchimenes/debugae/internal/backend"
	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/github"
	"github.com/luizchimenes/debugae/pkg/models"
)

// ErrUnknownSource is returned for a source type New cannot build
var ErrUnknownSource = errors.New("unknown candidate source")

// Source supplies candidate defects for a draft.
// Listing sources ignore the draft and return their whole pool.
type Source interface {
	Candidates(ctx context.Context, draft models.Draft) ([]models.Defect, error)
	Close() error
}

// New builds the listing source selected in config.
// The semantic source needs an index and is wired by the caller.
func New(cfg *config.Config) (Source, error) {
	switch cfg.Source.Type {
	case config.SourceFile:
		return NewFileSource(cfg.Source.Path), nil
	case config.SourceBackend:
		return backend.NewClient(&cfg.Backend), nil
	case config.SourceGitHub:
		client, err := github.NewClient()
		if err != nil {
			return nil, err
		}
		return github.NewSource(client, &cfg.GitHub), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source.Type)
	}
}

// Static is an in-memory pool
type Static []models.Defect

// Candidates returns a copy of the pool
func (s Static) Candidates(_ context.Context, _ models.Draft) ([]models.Defect, error) {
	out := make([]models.Defect, len(s))
	copy(out, s)
	return out, nil
}

// Close is a no-op
func (s Static) Close() error {
	return nil
}
