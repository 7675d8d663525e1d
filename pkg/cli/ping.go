package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdPing() *cli.Command {
	var backendCfg config.Backend

	return &cli.Command{
		Name:  "ping",
		Usage: "Check backend reachability",
		Flags: backendCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			if err := backend.Health(ctx); err != nil {
				fmt.Println(color.RedString("backend unreachable"))
				return goerr.Wrap(err, "backend health check failed")
			}

			fmt.Println(color.GreenString("backend is healthy"))
			return nil
		},
	}
}
