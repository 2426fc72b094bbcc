package core

import (
	"context"
	"errors"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
)

// ErrSkipPipeline indicates that the rest of the pipeline should be skipped purely for logic reasons
// (e.g. blank draft). It is not an error condition.
var ErrSkipPipeline = errors.New("skip pipeline")

// CheckResult contains the complete result of a pre-submit check
type CheckResult struct {
	Draft          models.Draft    `json:"draft"`
	CandidateCount int             `json:"candidate_count"`
	Similar        []models.Defect `json:"similar"`
	Duplicates     []models.Defect `json:"duplicates"`
	// Blocked is true when at least one similar defect was found and the
	// submission should be confirmed by the user.
	Blocked    bool   `json:"blocked"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
	Report     string `json:"report,omitempty"`
}

// Context carries state through the pipeline steps.
type Context struct {
	// Base Inputs
	Ctx    context.Context
	Draft  models.Draft
	Config *config.Config

	// Result accumulates the final output structure
	Result *CheckResult

	// Candidates holds the pool fetched from the source
	Candidates []models.Defect

	// SkipReason is set when ErrSkipPipeline is returned to explain why
	SkipReason string
}

// Step defines a single unit of work in the pipeline.
type Step interface {
	// Name returns the unique identifier for this step (used in config/logs)
	Name() string
	// Run executes the step logic.
	// Returning ErrSkipPipeline gracefully stops execution.
	// Returning any other error halts execution and is treated as a failure.
	Run(ctx *Context) error
}
