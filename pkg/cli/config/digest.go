package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Digest holds digest calculation configuration
type Digest struct {
	MaxParallel int
}

// Flags returns CLI flags for digest calculation
func (c *Digest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-parallel",
			Usage:       "Maximum number of files read at once (0 means unlimited)",
			Value:       0,
			Destination: &c.MaxParallel,
			Sources:     cli.EnvVars("MD5CALC_MAX_PARALLEL"),
		},
	}
}

// Validate checks the configuration
func (c *Digest) Validate() error {
	if c.MaxParallel < 0 {
		return goerr.New("max-parallel must not be negative", goerr.V("max_parallel", c.MaxParallel))
	}
	return nil
}
