package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/repository/memory"
	"github.com/osint-lab/argus/pkg/service/backend"
	"github.com/osint-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Backend holds CLI flags for intelligence backend configuration
type Backend struct {
	mode    string
	baseURL string
	timeout time.Duration
}

// Flags returns CLI flags for backend configuration
func (b *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-mode",
			Usage:       "Backend mode (http or memory)",
			Value:       "http",
			Sources:     cli.EnvVars("ARGUS_BACKEND_MODE"),
			Destination: &b.mode,
		},
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the intelligence backend (required for http mode)",
			Value:       "http://localhost:8000",
			Sources:     cli.EnvVars("ARGUS_BACKEND_URL"),
			Destination: &b.baseURL,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Per-request timeout for backend calls",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("ARGUS_BACKEND_TIMEOUT"),
			Destination: &b.timeout,
		},
	}
}

// Mode returns the configured backend mode
func (b *Backend) Mode() string {
	return b.mode
}

// Configure initializes and returns a backend based on the configured mode
func (b *Backend) Configure(ctx context.Context) (interfaces.Backend, error) {
	switch b.mode {
	case "http":
		client, err := backend.New(b.baseURL, backend.WithTimeout(b.timeout))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize backend client")
		}
		logging.Default().Info("Using HTTP backend",
			"base_url", b.baseURL,
			"timeout", b.timeout.String(),
		)
		return client, nil

	case "memory":
		logging.Default().Info("Using in-memory backend (offline mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid backend mode", goerr.V("mode", b.mode))
	}
}
