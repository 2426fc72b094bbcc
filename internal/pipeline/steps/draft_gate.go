package steps

import (
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/pkg/models"
)

// DraftGate stops the pipeline when the draft carries no text to compare.
type DraftGate struct{}

// NewDraftGate creates a new draft gate step
func NewDraftGate() *DraftGate {
	return &DraftGate{}
}

func (s *DraftGate) Name() string {
	return "draft_gate"
}

func (s *DraftGate) Run(ctx *core.Context) error {
	if !ctx.Draft.IsBlank() {
		return nil
	}

	ctx.Result.Similar = []models.Defect{}
	ctx.Result.Duplicates = []models.Defect{}
	ctx.SkipReason = "blank draft"
	return core.ErrSkipPipeline
}
