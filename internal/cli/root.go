package cli

import (
	"fmt"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dryRun  bool
	version = "dev"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "debugae",
		Short: "Duplicate defect checker",
		Long: `debugae warns about possibly duplicate defect reports before they are submitted.

Drafts are compared against existing defects by edit distance and shared
keywords. Candidates come from a file, the tracker backend, GitHub issues or a
Qdrant semantic index.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all writes to the index")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "debugae version %s\n", version)
		},
	}
}

// loadConfig finds and loads the config file. When optional is set a missing
// file yields the defaults instead of an error.
func loadConfig(optional bool) (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		if optional {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file not found")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// checkErrors prints validation errors and fails if there are any
func checkErrors(cmd *cobra.Command, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "config error: %v\n", e)
	}
	return fmt.Errorf("invalid configuration")
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
