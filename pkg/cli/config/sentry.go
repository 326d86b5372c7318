package config

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds Sentry error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("MD5CALC_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("MD5CALC_SENTRY_ENV"),
		},
	}
}

// Configure initializes Sentry client. It does nothing if DSN is empty.
func (c *Sentry) Configure(logger *slog.Logger) error {
	if c.DSN == "" {
		logger.Debug("Sentry is disabled")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry")
	}

	logger.Info("Sentry is enabled", slog.Any("sentry", c))
	return nil
}
