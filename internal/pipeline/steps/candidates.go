package steps

import (
	"fmt"

	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/internal/source"
)

// CandidateFetch loads the pool of existing defects from a source.
type CandidateFetch struct {
	src    source.Source
	logger logging.Logger
}

// NewCandidateFetch creates a new candidate fetch step
func NewCandidateFetch(src source.Source, logger logging.Logger) *CandidateFetch {
	return &CandidateFetch{src: src, logger: logger}
}

func (s *CandidateFetch) Name() string {
	return "candidates"
}

func (s *CandidateFetch) Run(ctx *core.Context) error {
	candidates, err := s.src.Candidates(ctx.Ctx, ctx.Draft)
	if err != nil {
		return fmt.Errorf("failed to fetch candidates: %w", err)
	}

	ctx.Candidates = candidates
	ctx.Result.CandidateCount = len(candidates)
	s.logger.Debug("Fetched candidates", "count", len(candidates), "project", ctx.Draft.ProjectID)
	return nil
}
