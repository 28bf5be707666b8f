package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/config"
	"github.com/zxinyun/ai-humanizer-zh/internal/server"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(g *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, cfg, log, err := g.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			server.Version = version
			log.Info("Starting humanizer",
				zap.String("version", version),
				zap.String("commit", commit),
				zap.String("build_date", date),
				zap.Int("port", cfg.Server.Port),
			)

			srv, err := server.New(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			if loader.ConfigFile() != "" {
				loader.Watch(func(c *config.Config) {
					if err := srv.UpdateDefaults(c.Humanize); err != nil {
						log.Warn("Keeping previous rewrite defaults", zap.Error(err))
					}
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverErrors := make(chan error, 1)
			go func() {
				log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
				serverErrors <- srv.Start(ctx)
			}()

			select {
			case err := <-serverErrors:
				if err != nil {
					log.Error("Server error", zap.Error(err))
				}
				return err
			case <-ctx.Done():
				log.Info("Shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shutdown server gracefully: %w", err)
			}
			log.Info("Server shutdown complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Listen port (default from config)")
	return cmd
}
