package steps

import (
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/internal/similarity"
)

// SimilarityCheck runs the matcher at both presets over the fetched pool.
type SimilarityCheck struct {
	matcher *similarity.Matcher
	logger  logging.Logger
}

// NewSimilarityCheck creates a new similarity check step
func NewSimilarityCheck(matcher *similarity.Matcher, logger logging.Logger) *SimilarityCheck {
	return &SimilarityCheck{matcher: matcher, logger: logger}
}

func (s *SimilarityCheck) Name() string {
	return "similarity"
}

func (s *SimilarityCheck) Run(ctx *core.Context) error {
	similar := s.matcher.FindSimilarBugs(ctx.Draft, ctx.Candidates)
	duplicates := s.matcher.FindDuplicateBugs(ctx.Draft, ctx.Candidates)

	ctx.Result.Similar = similar
	ctx.Result.Duplicates = duplicates
	ctx.Result.Blocked = len(similar) > 0

	if ctx.Result.Blocked {
		s.logger.Info("Possible duplicates found",
			"project", ctx.Draft.ProjectID,
			"candidates", len(ctx.Candidates),
			"similar", len(similar),
			"duplicates", len(duplicates),
		)
	}
	return nil
}
