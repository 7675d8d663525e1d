package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/cli/config"
	httpctrl "github.com/osint-lab/argus/pkg/controller/http"
	"github.com/osint-lab/argus/pkg/service/worker"
	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/osint-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var backendCfg config.Backend
	var profileCfg config.Profile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":7700",
			Sources:     cli.EnvVars("ARGUS_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, backendCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the workbench view over HTTP",
		Flags:   flags,
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

			httpHandler, err := httpctrl.New(wb, httpctrl.WithBackendHealth(backend))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				refreshWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				refreshWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
