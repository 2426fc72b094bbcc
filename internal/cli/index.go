package cli

import (
	"context"
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/processor"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Bulk index existing defects into the vector database",
		Long: `Index every defect of the configured listing source (file, backend or github)
into Qdrant so that the semantic source and the search command can use them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}

			if cfg.Source.Type == config.SourceSemantic {
				return fmt.Errorf("source type %q cannot be indexed; configure a listing source", cfg.Source.Type)
			}
			errs := append(config.Validate(cfg), config.ValidateIndex(cfg)...)
			if err := checkErrors(cmd, errs); err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			src, err := source.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to create candidate source: %w", err)
			}
			defer src.Close()

			indexer, err := processor.NewIndexer(ctx, cfg, logger, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create indexer: %w", err)
			}
			defer indexer.Close()

			stats, err := indexer.IndexAll(ctx, src, batchSize)
			if err != nil {
				return fmt.Errorf("indexing failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d/%d defects (%d skipped, %d errors) in %dms\n",
				stats.Indexed, stats.TotalDefects, stats.Skipped, stats.Errors, stats.DurationMs)

			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", processor.DefaultBatchSize, "number of defects to embed per batch")

	return cmd
}
