package cli

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/processor"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		project string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed defects by meaning (debugging/testing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}

			if err := checkErrors(cmd, config.ValidateIndex(cfg)); err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			searcher, err := processor.NewSearcher(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create searcher: %w", err)
			}
			defer searcher.Close()

			results, err := searcher.Search(ctx, args[0], project, limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No similar defects found")
				return nil
			}

			fmt.Fprintf(out, "Found %d similar defects:\n\n", len(results))
			for i, r := range results {
				fmt.Fprintf(out, "%d. #%s - %s\n", i+1, r.Defect.ID, r.Defect.Summary)
				fmt.Fprintf(out, "   Project: %s | Similarity: %.1f%% | Status: %s\n\n",
					r.Defect.ProjectID, r.Score*100, r.Defect.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "limit search to one project")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results to return")

	return cmd
}
