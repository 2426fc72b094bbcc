package pipeline

import (
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/internal/pipeline/steps"
	"github.com/luizchimenes/debugae/internal/similarity"
	"github.com/luizchimenes/debugae/internal/source"
)

// Builder constructs a pipeline of steps.
type Builder struct {
	cfg     *config.Config
	src     source.Source
	matcher *similarity.Matcher
	logger  logging.Logger
}

// NewBuilder creates a new pipeline builder
func NewBuilder(cfg *config.Config, src source.Source, matcher *similarity.Matcher, logger logging.Logger) *Builder {
	return &Builder{
		cfg:     cfg,
		src:     src,
		matcher: matcher,
		logger:  logger,
	}
}

// BuildDefault creates the standard pipeline
func (b *Builder) BuildDefault() []core.Step {
	return []core.Step{
		steps.NewDraftGate(),
		steps.NewCandidateFetch(b.src, b.logger),
		steps.NewSimilarityCheck(b.matcher, b.logger),
		steps.NewReportBuilder(),
	}
}

// BuildFromConfig creates a pipeline based on the order defined in config.
// If config is empty, returns default.
func (b *Builder) BuildFromConfig() ([]core.Step, error) {
	if len(b.cfg.Pipeline.Steps) == 0 {
		return b.BuildDefault(), nil
	}

	var pipe []core.Step
	for _, name := range b.cfg.Pipeline.Steps {
		step, err := b.createStep(name)
		if err != nil {
			return nil, err
		}
		pipe = append(pipe, step)
	}
	return pipe, nil
}

func (b *Builder) createStep(name string) (core.Step, error) {
	switch name {
	case "draft_gate":
		return steps.NewDraftGate(), nil
	case "candidates":
		return steps.NewCandidateFetch(b.src, b.logger), nil
	case "similarity":
		return steps.NewSimilarityCheck(b.matcher, b.logger), nil
	case "report":
		return steps.NewReportBuilder(), nil
	default:
		return nil, fmt.Errorf("unknown step: %s", name)
	}
}
