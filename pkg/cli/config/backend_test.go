package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func configureBackend(t *testing.T, args ...string) (*config.Backend, error) {
	t.Helper()
	var cfg config.Backend
	var err error
	cmd := &cli.Command{
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			_, err = cfg.Configure(ctx)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return &cfg, err
}

func TestBackendConfigure(t *testing.T) {
	t.Run("memory mode needs no URL", func(t *testing.T) {
		cfg, err := configureBackend(t, "--backend-mode", "memory")
		gt.NoError(t, err)
		gt.Value(t, cfg.Mode()).Equal("memory")
	})

	t.Run("http mode validates the base URL", func(t *testing.T) {
		_, err := configureBackend(t, "--backend-mode", "http", "--backend-url", "ftp://example.com")
		gt.Error(t, err)
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := configureBackend(t, "--backend-mode", "carrier-pigeon")
		gt.Error(t, err)
	})
}
