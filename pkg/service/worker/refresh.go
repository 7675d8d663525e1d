package worker

import (
	"context"
	"time"

	"github.com/osint-lab/argus/pkg/usecase"
	"github.com/osint-lab/argus/pkg/utils/async"
	"github.com/osint-lab/argus/pkg/utils/logging"
)

// RegistryRefreshWorker manages background refresh of the case registry
// from the backend into the workbench.
//
// Architecture assumptions:
// - Single workbench instance (no distributed locking)
// - Refresh failures keep the last good registry snapshot
type RegistryRefreshWorker struct {
	workbench *usecase.Workbench
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewRegistryRefreshWorker creates a new worker for refreshing the registry
func NewRegistryRefreshWorker(wb *usecase.Workbench, interval time.Duration) *RegistryRefreshWorker {
	return &RegistryRefreshWorker{
		workbench: wb,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial refresh and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *RegistryRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Registry refresh worker starting",
		"interval", w.interval.String())

	async.Dispatch(ctx, func(ctx context.Context) error {
		w.run(ctx)
		return nil
	})

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *RegistryRefreshWorker) Stop() {
	logging.Default().Info("Registry refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Registry refresh worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *RegistryRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.workbench.Refresh(ctx); err != nil {
		logging.Default().Error("Initial registry refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.workbench.Refresh(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Registry refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Registry refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Registry refresh worker context cancelled")
			return
		}
	}
}
