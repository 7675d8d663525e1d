package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/cli/config"
	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdShow() *cli.Command {
	var backendCfg config.Backend

	return &cli.Command{
		Name:  "show",
		Usage: "Refresh once and print the workbench dashboard",
		Flags: backendCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			wb := usecase.New(backend)
			if err := wb.Refresh(ctx); err != nil {
				return goerr.Wrap(err, "failed to refresh registry")
			}

			renderView(os.Stdout, wb.Snapshot())
			return nil
		},
	}
}
