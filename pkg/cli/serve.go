package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/cli/config"
	controller "github.com/m-mizutani/md5calc/pkg/controller/http"
	"github.com/m-mizutani/md5calc/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		digestCfg config.Digest
	)

	flags := append(serverCfg.Flags(), digestCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server of MD5 calculator page",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := digestCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting md5calc server",
				slog.String("addr", serverCfg.Addr),
				slog.Int64("max_upload_memory", serverCfg.MaxUploadMemory),
				slog.Int("max_parallel", digestCfg.MaxParallel),
			)

			// Create use cases
			digestUC := usecase.NewDigest(usecase.WithMaxParallel(digestCfg.MaxParallel))

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				digestUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithMaxUploadMemory(serverCfg.MaxUploadMemory),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
