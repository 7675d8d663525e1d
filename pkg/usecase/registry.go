package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Refresh fetches the case list, global metrics, connector statuses and
// source catalog concurrently, and replaces the cached copies only if all
// four calls succeed. On any failure the previous cached state stays as-is
// (stale but available) and a single availability error is reported.
//
// On the first successful refresh with no active case, the first case of the
// returned order becomes active. Every refresh re-runs the artifact fan-out
// so newly available stage outputs become visible without a case switch.
func (x *Workbench) Refresh(ctx context.Context) error {
	x.setError("")

	var (
		cases      []model.Case
		metrics    *model.GlobalMetrics
		connectors []model.ConnectorStatus
		catalog    []model.SourceCatalogEntry
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cases, err = x.backend.ListCases(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		metrics, err = x.backend.GlobalMetrics(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		connectors, err = x.backend.Connectors(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		catalog, err = x.backend.SourceCatalog(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		x.setError(msgBackendUnavailable)
		logging.From(ctx).Warn("registry refresh failed, keeping cached state", "error", err)
		return goerr.Wrap(err, "registry refresh failed")
	}

	x.mu.Lock()
	x.cases = cases
	x.metrics = *metrics
	x.connectors = connectors
	x.catalog = catalog
	if !x.refreshed && x.activeID == "" && len(cases) > 0 {
		x.activeID = cases[0].ID
	}
	x.refreshed = true
	active := x.activeID
	x.mu.Unlock()

	x.loadArtifacts(ctx, active)
	return nil
}

// SelectCase makes the given case active. It is a pure local state change
// that always succeeds; selecting the already-active case is a no-op.
// Changing the selection discards cached artifacts and starts a fresh
// fan-out load.
func (x *Workbench) SelectCase(ctx context.Context, id types.CaseID) {
	x.mu.Lock()
	if x.activeID == id {
		x.mu.Unlock()
		return
	}
	x.activeID = id
	x.mu.Unlock()

	x.loadArtifacts(ctx, id)
}

func (x *Workbench) setError(msg string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.errMsg = msg
}
