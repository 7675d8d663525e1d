package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/repository/memory"
	"github.com/osint-lab/argus/pkg/usecase"
)

func TestArtifactFailureIsolation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing report degrades to absent, not an error", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Collected but unanalyzed")
		gt.R1(client.Collect(ctx, created.ID)).NoError(t)

		wb := usecase.New(client)
		gt.NoError(t, wb.Refresh(ctx))

		view := wb.Snapshot()
		gt.Value(t, view.ErrorMessage).Equal("")
		gt.Value(t, view.Artifacts.Report).Nil()
		gt.Number(t, len(view.Artifacts.Alerts)).Equal(0)
		// The other kinds still load.
		gt.Number(t, len(view.Artifacts.Items)).Equal(8)
		gt.True(t, len(view.Artifacts.Timeline) > 0)
		gt.Value(t, view.Artifacts.Graph).NotNil()
	})

	t.Run("single fetch failure never blocks the load", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Analyzed investigation")
		gt.R1(client.RunAll(ctx, created.ID)).NoError(t)

		stub := &stubBackend{
			Backend: client,
			itemsFn: func(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
				return nil, goerr.New("items endpoint down")
			},
		}
		wb := usecase.New(stub)
		gt.NoError(t, wb.Refresh(ctx))

		view := wb.Snapshot()
		gt.Value(t, view.ErrorMessage).Equal("")
		gt.Number(t, len(view.Artifacts.Items)).Equal(0)
		gt.True(t, len(view.Artifacts.Alerts) > 0)
		gt.True(t, len(view.Artifacts.Evidence) > 0)
		gt.True(t, len(view.Artifacts.MediaChecks) > 0)
		gt.Value(t, view.Artifacts.Report).NotNil()
		gt.Value(t, view.Artifacts.Graph).NotNil()
	})
}

func TestStaleLoadDiscarded(t *testing.T) {
	ctx := context.Background()
	client := memory.New()
	caseA := seedCase(t, client, "Investigation alpha")
	caseB := seedCase(t, client, "Investigation beta")
	gt.R1(client.RunAll(ctx, caseA.ID)).NoError(t)
	gt.R1(client.RunAll(ctx, caseB.ID)).NoError(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	stub := &stubBackend{
		Backend: client,
		itemsFn: func(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
			if id == caseA.ID {
				once.Do(func() { close(started) })
				<-release
			}
			return client.Items(ctx, id)
		},
	}

	wb := usecase.New(stub)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wb.SelectCase(ctx, caseA.ID)
	}()

	// Switch to case B while A's fan-out is still in flight.
	<-started
	wb.SelectCase(ctx, caseB.ID)

	mid := wb.Snapshot()
	gt.Value(t, wb.ActiveCaseID()).Equal(caseB.ID)
	for _, item := range mid.Artifacts.Items {
		gt.Value(t, item.CaseID).Equal(caseB.ID)
	}

	close(release)
	wg.Wait()

	// A's completed load must have been discarded, not applied.
	final := wb.Snapshot()
	gt.Value(t, wb.ActiveCaseID()).Equal(caseB.ID)
	gt.True(t, len(final.Artifacts.Items) > 0)
	for _, item := range final.Artifacts.Items {
		gt.Value(t, item.CaseID).Equal(caseB.ID)
	}
}

func TestSwitchClearsArtifactsBeforeLoad(t *testing.T) {
	ctx := context.Background()
	client := memory.New()
	caseA := seedCase(t, client, "Investigation alpha")
	caseB := seedCase(t, client, "Investigation beta")
	gt.R1(client.RunAll(ctx, caseA.ID)).NoError(t)

	startedB := make(chan struct{})
	blockB := make(chan struct{})
	var once sync.Once
	stub := &stubBackend{
		Backend: client,
		itemsFn: func(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
			if id == caseB.ID {
				once.Do(func() { close(startedB) })
				<-blockB
			}
			return client.Items(ctx, id)
		},
	}

	wb := usecase.New(stub)
	wb.SelectCase(ctx, caseA.ID)
	gt.True(t, len(wb.Snapshot().Artifacts.Items) > 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wb.SelectCase(ctx, caseB.ID)
	}()

	// While B's load is pending, no artifact of A may still be visible.
	<-startedB
	gt.Value(t, pollArtifactItems(wb, 50*time.Millisecond)).Equal(0)

	close(blockB)
	wg.Wait()
}

func pollArtifactItems(wb *usecase.Workbench, d time.Duration) int {
	deadline := time.Now().Add(d)
	max := 0
	for time.Now().Before(deadline) {
		if n := len(wb.Snapshot().Artifacts.Items); n > max {
			max = n
		}
		time.Sleep(time.Millisecond)
	}
	return max
}
