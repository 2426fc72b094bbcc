package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/internal/similarity"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/luizchimenes/debugae/pkg/models"
)

// Checker runs drafts through the pre-submit check pipeline.
// It is safe for concurrent use as long as its source is.
type Checker struct {
	cfg     *config.Config
	matcher *similarity.Matcher
	logger  logging.Logger

	// pipeline is the sequence of steps run for every draft
	pipeline []core.Step
}

// NewChecker creates a checker reading candidates from src
func NewChecker(cfg *config.Config, src source.Source, logger logging.Logger) *Checker {
	if logger == nil {
		logger = logging.Nop()
	}

	matcher := similarity.NewFromConfig(&cfg.Matcher)

	builder := NewBuilder(cfg, src, matcher, logger)
	pipe, err := builder.BuildFromConfig()
	if err != nil {
		logger.Warn("Invalid pipeline configuration, using default pipeline", "error", err)
		pipe = builder.BuildDefault()
	}

	return &Checker{
		cfg:      cfg,
		matcher:  matcher,
		logger:   logger,
		pipeline: pipe,
	}
}

// Matcher returns the matcher built from config
func (c *Checker) Matcher() *similarity.Matcher {
	return c.matcher
}

// Steps returns the names of the configured steps in order
func (c *Checker) Steps() []string {
	names := make([]string, len(c.pipeline))
	for i, s := range c.pipeline {
		names[i] = s.Name()
	}
	return names
}

// Check runs a draft through the configured pipeline
func (c *Checker) Check(ctx context.Context, draft models.Draft) (*core.CheckResult, error) {
	pCtx := &core.Context{
		Ctx:    ctx,
		Draft:  draft,
		Config: c.cfg,
		Result: &core.CheckResult{Draft: draft},
	}

	for _, step := range c.pipeline {
		if err := step.Run(pCtx); err != nil {
			if errors.Is(err, core.ErrSkipPipeline) {
				pCtx.Result.Skipped = true
				pCtx.Result.SkipReason = pCtx.SkipReason
				break
			}
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
	}

	return pCtx.Result, nil
}

// PrintResult outputs the check result to stdout
func PrintResult(result *core.CheckResult) {
	FprintResult(os.Stdout, result)
}

// FprintResult writes the human-readable check result to w
func FprintResult(w io.Writer, result *core.CheckResult) {
	fmt.Fprintln(w, "\n=== Duplicate Check Result ===")
	if result.Draft.ProjectID != "" {
		fmt.Fprintf(w, "Project: %s\n", result.Draft.ProjectID)
	}

	if result.Skipped {
		fmt.Fprintf(w, "Skipped: %s\n", result.SkipReason)
		return
	}

	fmt.Fprintf(w, "Candidates checked: %d\n", result.CandidateCount)

	if !result.Blocked {
		fmt.Fprintln(w, "No similar defects found.")
		return
	}

	fmt.Fprintf(w, "Similar: %d\n", len(result.Similar))
	fmt.Fprintf(w, "Likely duplicates: %d\n", len(result.Duplicates))
	if result.Report != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, result.Report)
	}
}
