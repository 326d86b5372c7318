package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/cli/config"
	"github.com/m-mizutani/md5calc/pkg/controller/report"
	"github.com/m-mizutani/md5calc/pkg/infra/localfs"
	"github.com/m-mizutani/md5calc/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHash() *cli.Command {
	var (
		digestCfg config.Digest
		format    string
		template  string
	)

	flags := append(digestCfg.Flags(),
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text, json, toml, template)",
			Value:       string(report.FormatText),
			Destination: &format,
			Sources:     cli.EnvVars("MD5CALC_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "template",
			Usage:       "Line template for template format, {name} and {md5} are replaced",
			Value:       report.DefaultTemplate,
			Destination: &template,
		},
	)

	return &cli.Command{
		Name:      "hash",
		Usage:     "Calculate MD5 digest of local files and directories",
		ArgsUsage: "PATH...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := digestCfg.Validate(); err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			files, err := localfs.Collect(c.Args().Slice()...)
			if err != nil {
				return err
			}
			logger.Debug("Collected files", "file_count", len(files))

			digestUC := usecase.NewDigest(usecase.WithMaxParallel(digestCfg.MaxParallel))
			batch, err := digestUC.CalculateMD5(ctx, files)
			if err != nil {
				return err
			}

			if err := report.Render(c.Root().Writer, batch,
				report.WithFormat(f),
				report.WithTemplate(template),
			); err != nil {
				return goerr.Wrap(err, "failed to write report")
			}
			return nil
		},
	}
}
