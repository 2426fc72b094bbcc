package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline"
	"github.com/luizchimenes/debugae/internal/processor"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/spf13/cobra"
)

// ErrMatchesFound is returned by check when the draft looks like an existing
// defect and --force was not given
var ErrMatchesFound = errors.New("possible duplicate defects found")

const (
	modeSimilar   = "similar"
	modeDuplicate = "duplicate"
)

func newCheckCmd() *cobra.Command {
	var (
		draft      models.Draft
		candidates string
		mode       string
		force      bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a defect draft against existing defects",
		Long: `Check a defect draft before submitting it.

Exits with status 1 when similar defects are found, unless --force is given.
With --mode duplicate only the stricter duplicate matches block.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if mode != modeSimilar && mode != modeDuplicate {
				return fmt.Errorf("invalid mode %q (expected %s or %s)", mode, modeSimilar, modeDuplicate)
			}

			cfg, err := loadConfig(candidates != "")
			if err != nil {
				return err
			}

			logger := logging.Nop()
			if !asJSON {
				if logger, err = newLogger(cfg); err != nil {
					return err
				}
			}
			defer logger.Close()

			src, err := openSource(ctx, cmd, cfg, candidates, logger)
			if err != nil {
				return err
			}
			defer src.Close()

			result, err := pipeline.NewChecker(cfg, src, logger).Check(ctx, draft)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				pipeline.FprintResult(out, result)
			}

			blocked := result.Blocked
			if mode == modeDuplicate {
				blocked = len(result.Duplicates) > 0
			}
			if blocked && !force {
				return ErrMatchesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Summary, "summary", "", "draft summary")
	cmd.Flags().StringVar(&draft.Description, "description", "", "draft description")
	cmd.Flags().StringVar(&draft.ProjectID, "project", "", "project the draft belongs to")
	cmd.Flags().StringVar(&candidates, "candidates", "", "YAML or JSON file with existing defects (overrides the configured source)")
	cmd.Flags().StringVar(&mode, "mode", modeSimilar, "blocking preset: similar or duplicate")
	cmd.Flags().BoolVar(&force, "force", false, "report matches but exit successfully")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// openSource picks the candidate source: an explicit file, or the configured one
func openSource(ctx context.Context, cmd *cobra.Command, cfg *config.Config, candidates string, logger logging.Logger) (source.Source, error) {
	if candidates != "" {
		return source.NewFileSource(candidates), nil
	}

	if err := checkErrors(cmd, config.Validate(cfg)); err != nil {
		return nil, err
	}

	if cfg.Source.Type == config.SourceSemantic {
		src, err := processor.NewSemanticSource(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create semantic source: %w", err)
		}
		return src, nil
	}

	src, err := source.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate source: %w", err)
	}
	return src, nil
}
