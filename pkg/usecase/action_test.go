package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/repository/memory"
	"github.com/osint-lab/argus/pkg/usecase"
)

func TestRunAction(t *testing.T) {
	ctx := context.Background()

	t.Run("collect reflects backend post-stage state after refresh", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Fresh investigation")
		wb := usecase.New(client)
		gt.NoError(t, wb.Refresh(ctx))

		gt.NoError(t, wb.RunAction(ctx, created.ID, usecase.ActionCollect))

		view := wb.Snapshot()
		gt.Value(t, view.ActiveCase).NotNil()
		gt.Value(t, view.ActiveCase.Status).Equal(types.CaseStatusCollecting)
		gt.Number(t, view.ActiveCase.ItemCount).Equal(8)
		gt.Number(t, view.Metrics.TotalItems).Equal(8)
	})

	t.Run("action marks the acted-upon case active", func(t *testing.T) {
		client := memory.New()
		seedCase(t, client, "First investigation")
		other := seedCase(t, client, "Other investigation")
		wb := usecase.New(client)
		gt.NoError(t, wb.Refresh(ctx))

		gt.NoError(t, wb.RunAction(ctx, other.ID, usecase.ActionRunAll))
		gt.Value(t, wb.ActiveCaseID()).Equal(other.ID)

		view := wb.Snapshot()
		gt.Value(t, view.ActiveCase.Status).Equal(types.CaseStatusReady)
		gt.Value(t, view.Artifacts.Report).NotNil()
	})

	t.Run("failed action reports a stage-specific message and keeps state", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Stable investigation")
		stub := &stubBackend{
			Backend: client,
			collectFn: func(ctx context.Context, id types.CaseID) (*model.Case, error) {
				return nil, goerr.New("ingestion exploded")
			},
		}
		wb := usecase.New(stub)
		gt.NoError(t, wb.Refresh(ctx))
		before := wb.Snapshot()

		gt.Error(t, wb.RunAction(ctx, created.ID, usecase.ActionCollect))

		after := wb.Snapshot()
		gt.True(t, strings.Contains(after.ErrorMessage, "collect"))
		gt.Number(t, len(after.Cases)).Equal(len(before.Cases))
		gt.Value(t, after.ActiveCase.Status).Equal(types.CaseStatusDraft)
		gt.False(t, after.Busy)
	})

	t.Run("generate-products before analysis fails without state change", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Draft investigation")
		wb := usecase.New(client)
		gt.NoError(t, wb.Refresh(ctx))

		gt.Error(t, wb.RunAction(ctx, created.ID, usecase.ActionGenerateProducts))
		view := wb.Snapshot()
		gt.Value(t, view.ActiveCase.Status).Equal(types.CaseStatusDraft)
		gt.Value(t, view.ErrorMessage).NotEqual("")
	})

	t.Run("invalid inputs rejected", func(t *testing.T) {
		wb := usecase.New(memory.New())
		gt.Error(t, wb.RunAction(ctx, "", usecase.ActionCollect))
		gt.Error(t, wb.RunAction(ctx, "case_x", usecase.StageAction("reticulate")))
	})
}

func TestBusyFlag(t *testing.T) {
	ctx := context.Background()
	client := memory.New()
	created := seedCase(t, client, "Slow investigation")

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	stub := &stubBackend{
		Backend: client,
		collectFn: func(ctx context.Context, id types.CaseID) (*model.Case, error) {
			once.Do(func() { close(started) })
			<-release
			return client.Collect(ctx, id)
		},
	}

	wb := usecase.New(stub)
	gt.NoError(t, wb.Refresh(ctx))
	gt.False(t, wb.Snapshot().Busy)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = wb.RunAction(ctx, created.ID, usecase.ActionCollect)
	}()

	<-started
	gt.True(t, wb.Snapshot().Busy)

	close(release)
	wg.Wait()
	gt.False(t, wb.Snapshot().Busy)
}

func TestCreateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("created case becomes active with draft state", func(t *testing.T) {
		client := memory.New()
		wb := usecase.New(client)
		gt.NoError(t, wb.Refresh(ctx))

		created, err := wb.CreateCase(ctx, model.CreateCaseInput{
			Title:     "Test investigation",
			Query:     "q-narrative",
			Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.Status).Equal(types.CaseStatusDraft)
		gt.Number(t, created.ItemCount).Equal(0)
		gt.Value(t, created.Analysis).Nil()

		view := wb.Snapshot()
		gt.Value(t, view.ActiveCase).NotNil()
		gt.Value(t, view.ActiveCase.ID).Equal(created.ID)
	})

	t.Run("invalid input never reaches the backend", func(t *testing.T) {
		wb := usecase.New(memory.New())
		_, err := wb.CreateCase(ctx, model.CreateCaseInput{Title: "x", Query: "q"})
		gt.Error(t, err)
	})
}

func TestStepwiseMatchesRunAll(t *testing.T) {
	ctx := context.Background()

	stepwise := usecase.New(memory.New())
	gt.NoError(t, stepwise.Refresh(ctx))
	caseA := gt.R1(stepwise.CreateCase(ctx, model.CreateCaseInput{
		Title:     "Test investigation",
		Query:     "narrative wave",
		Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
	})).NoError(t)
	gt.NoError(t, stepwise.RunAction(ctx, caseA.ID, usecase.ActionCollect))
	gt.NoError(t, stepwise.RunAction(ctx, caseA.ID, usecase.ActionAnalyze))
	gt.NoError(t, stepwise.RunAction(ctx, caseA.ID, usecase.ActionGenerateProducts))

	oneshot := usecase.New(memory.New())
	gt.NoError(t, oneshot.Refresh(ctx))
	caseB := gt.R1(oneshot.CreateCase(ctx, model.CreateCaseInput{
		Title:     "Test investigation",
		Query:     "narrative wave",
		Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
	})).NoError(t)
	gt.NoError(t, oneshot.RunAction(ctx, caseB.ID, usecase.ActionRunAll))

	viewA := stepwise.Snapshot()
	viewB := oneshot.Snapshot()
	gt.Value(t, viewA.ActiveCase.Status).Equal(viewB.ActiveCase.Status)
	gt.Number(t, viewA.ActiveCase.ItemCount).Equal(viewB.ActiveCase.ItemCount)
	gt.Value(t, viewA.ActiveCase.Severity).Equal(viewB.ActiveCase.Severity)
	gt.Number(t, len(viewA.Artifacts.Alerts)).Equal(len(viewB.Artifacts.Alerts))
	gt.Value(t, viewA.Artifacts.Report).NotNil()
	gt.Value(t, viewB.Artifacts.Report).NotNil()
}

func TestParseStageAction(t *testing.T) {
	for _, action := range usecase.AllStageActions() {
		parsed, err := usecase.ParseStageAction(action.String())
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(action)
	}
	_, err := usecase.ParseStageAction("deploy")
	gt.Error(t, err)
}
