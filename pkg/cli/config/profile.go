package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Profile holds the CLI flag pointing at an optional workbench profile file
type Profile struct {
	path string
}

// Flags returns CLI flags for profile configuration
func (p *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to a workbench profile file (TOML)",
			Sources:     cli.EnvVars("ARGUS_PROFILE"),
			Destination: &p.path,
		},
	}
}

// WorkbenchProfile is the optional per-analyst configuration loaded from TOML.
// It controls the background refresh cadence and the default template for
// quickly opened cases.
type WorkbenchProfile struct {
	RefreshInterval string       `toml:"refresh_interval"`
	Case            CaseTemplate `toml:"case"`
}

// CaseTemplate is the default payload used when a case is created without
// explicit title or query
type CaseTemplate struct {
	Title     string   `toml:"title"`
	Query     string   `toml:"query"`
	Platforms []string `toml:"platforms"`
}

// Validate checks if the WorkbenchProfile is valid
func (w *WorkbenchProfile) Validate() error {
	if _, err := w.Interval(); err != nil {
		return err
	}
	for _, p := range w.Case.Platforms {
		if _, err := types.ParsePlatform(p); err != nil {
			return goerr.Wrap(err, "invalid platform in case template")
		}
	}
	return nil
}

// Interval parses the configured refresh interval
func (w *WorkbenchProfile) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(w.RefreshInterval)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid refresh interval", goerr.V("value", w.RefreshInterval))
	}
	if d < time.Second {
		return 0, goerr.New("refresh interval must be at least 1s", goerr.V("value", w.RefreshInterval))
	}
	return d, nil
}

// DefaultWorkbenchProfile returns the profile used when no file is configured
func DefaultWorkbenchProfile() *WorkbenchProfile {
	return &WorkbenchProfile{
		RefreshInterval: "30s",
	}
}

// Configure loads and validates the workbench profile. Without a configured
// path the defaults are returned.
func (p *Profile) Configure() (*WorkbenchProfile, error) {
	if p.path == "" {
		return DefaultWorkbenchProfile(), nil
	}

	// #nosec G304 - path comes from CLI configuration
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile file", goerr.V("path", p.path))
	}

	profile := DefaultWorkbenchProfile()
	if err := toml.Unmarshal(data, profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile file", goerr.V("path", p.path))
	}
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile", goerr.V("path", p.path))
	}

	return profile, nil
}
