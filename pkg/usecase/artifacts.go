package usecase

import (
	"context"
	"sync"

	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/utils/logging"
)

// attempt runs one artifact fetch and degrades any failure to the zero value
// of the artifact kind. A missing downstream product (no report before
// analysis) is a normal, displayable condition, not an error.
func attempt[T any](ctx context.Context, kind string, fn func(context.Context) (T, error)) T {
	v, err := fn(ctx)
	if err != nil {
		logging.From(ctx).Debug("artifact fetch degraded to empty",
			"kind", kind, "error", err)
		var zero T
		return zero
	}
	return v
}

// loadArtifacts discards the cached artifact bundle synchronously, then — if
// a case is selected — fetches all seven artifact kinds concurrently and
// replaces the bundle atomically once every fetch has settled. A load whose
// target no longer matches the active case when it completes is discarded so
// stale results never resurface.
func (x *Workbench) loadArtifacts(ctx context.Context, id types.CaseID) {
	x.mu.Lock()
	x.loadSeq++
	seq := x.loadSeq
	x.artifacts = model.CaseArtifacts{}
	x.mu.Unlock()

	if id == "" {
		return
	}

	var loaded model.CaseArtifacts
	var wg sync.WaitGroup
	wg.Add(7)

	go func() {
		defer wg.Done()
		loaded.Graph = attempt(ctx, "graph", func(ctx context.Context) (*model.Graph, error) {
			return x.backend.Graph(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.Items = attempt(ctx, "items", func(ctx context.Context) ([]model.ContentItem, error) {
			return x.backend.Items(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.Alerts = attempt(ctx, "alerts", func(ctx context.Context) ([]model.Alert, error) {
			return x.backend.Alerts(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.Evidence = attempt(ctx, "evidence", func(ctx context.Context) ([]model.Evidence, error) {
			return x.backend.Evidence(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.Timeline = attempt(ctx, "timeline", func(ctx context.Context) ([]model.TimelineEvent, error) {
			return x.backend.Timeline(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.MediaChecks = attempt(ctx, "media-verification", func(ctx context.Context) ([]model.MediaVerification, error) {
			return x.backend.MediaVerification(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		loaded.Report = attempt(ctx, "report", func(ctx context.Context) (*model.Report, error) {
			return x.backend.Report(ctx, id)
		})
	}()

	wg.Wait()

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.loadSeq != seq || x.activeID != id {
		logging.From(ctx).Debug("discarding stale artifact load", "case_id", id)
		return
	}
	x.artifacts = loaded
}
