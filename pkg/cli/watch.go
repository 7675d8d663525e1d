package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/cli/config"
	"github.com/osint-lab/argus/pkg/service/worker"
	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/osint-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var backendCfg config.Backend
	var profileCfg config.Profile

	flags := backendCfg.Flags()
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:  "watch",
		Usage: "Keep the dashboard refreshed and redraw it on every cycle",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			backend, err := backendCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize backend")
			}

			profile, err := profileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workbench profile")
			}
			interval, err := profile.Interval()
			if err != nil {
				return err
			}

			wb := usecase.New(backend)

			refreshWorker := worker.NewRegistryRefreshWorker(wb, interval)
			if err := refreshWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start registry refresh worker")
			}
			defer refreshWorker.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					renderView(os.Stdout, wb.Snapshot())
				case sig := <-sigCh:
					logging.Default().Info("Received shutdown signal", "signal", sig)
					return nil
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}
