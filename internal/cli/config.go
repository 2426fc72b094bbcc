package cli

import (
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Fprintf(out, "Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Fprintln(out, "\nValidation errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Fprintln(out, "\nConfiguration is valid!")
			fmt.Fprintf(out, "  - Thresholds: similar %.2f, duplicate %.2f\n", cfg.Matcher.SimilarThreshold, cfg.Matcher.DuplicateThreshold)
			fmt.Fprintf(out, "  - Terminal statuses: %v\n", cfg.Matcher.TerminalStatuses)
			fmt.Fprintf(out, "  - Source: %s\n", cfg.Source.Type)
			if cfg.Qdrant.URL != "" {
				fmt.Fprintf(out, "  - Qdrant: %s (%s)\n", cfg.Qdrant.URL, cfg.Qdrant.Collection)
			}
			if cfg.Embedding.Primary.Provider != "" {
				fmt.Fprintf(out, "  - Primary embedding: %s (%s)\n", cfg.Embedding.Primary.Provider, cfg.Embedding.Primary.Model)
			}

			return nil
		},
	}
}
