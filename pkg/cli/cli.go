package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/cli/config"
	"github.com/m-mizutani/md5calc/pkg/domain/types"
	"github.com/m-mizutani/md5calc/pkg/utils/errs"
	"github.com/urfave/cli/v3"
)

// Option is a functional option for Run
type Option func(*cli.Command)

// WithWriter replaces the output of command results. Default is stdout.
func WithWriter(w io.Writer) Option {
	return func(c *cli.Command) {
		c.Writer = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	defer sentry.Flush(2 * time.Second)

	// Env vars from .env feed flag sources, so it is loaded before parsing
	if err := loadDotEnv(".env"); err != nil {
		errs.Handle(ctx, err)
		return err
	}

	app := &cli.Command{
		Name:    "md5calc",
		Usage:   "Calculate MD5 digest of selected files",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			if err := sentryCfg.Configure(logger); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdHash(),
		},
	}

	for _, opt := range opts {
		opt(app)
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		errs.Handle(ctxlog.With(ctx, logger), goerr.Wrap(err, "CLI execution failed"))
		return err
	}

	return nil
}

// loadDotEnv loads env vars from path. A missing file is not an error and
// variables already set are not overwritten.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}
