package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/pipeline"
	"github.com/luizchimenes/debugae/internal/server"
	"github.com/luizchimenes/debugae/internal/similarity"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the duplicate check HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			// /api/bugs/check needs a usable source; the match endpoints do not
			var checker *pipeline.Checker
			if errs := config.Validate(cfg); len(errs) > 0 {
				for _, e := range errs {
					logger.Warn("Check endpoint disabled", "reason", e.Error())
				}
			} else {
				src, err := openSource(ctx, cmd, cfg, "", logger)
				if err != nil {
					return err
				}
				defer src.Close()
				checker = pipeline.NewChecker(cfg, src, logger)
			}

			srv := server.New(&cfg.Server, similarity.NewFromConfig(&cfg.Matcher), checker, logger)
			if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
