package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/repository/memory"
	"github.com/osint-lab/argus/pkg/usecase"
)

func seedCase(t *testing.T, client *memory.Client, title string) *model.Case {
	t.Helper()
	created, err := client.CreateCase(context.Background(), model.CreateCaseInput{
		Title:     title,
		Query:     "coordinated wave",
		Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
	})
	gt.NoError(t, err).Required()
	return created
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("first refresh selects the first case", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Narrative pulse watch")
		wb := usecase.New(client)

		gt.NoError(t, wb.Refresh(ctx))

		view := wb.Snapshot()
		gt.Number(t, len(view.Cases)).Equal(1)
		gt.Value(t, view.ActiveCase).NotNil()
		gt.Value(t, view.ActiveCase.ID).Equal(created.ID)
		gt.Value(t, view.ErrorMessage).Equal("")
		gt.Number(t, len(view.Connectors)).Equal(5)
		gt.Number(t, len(view.SourceCatalog)).Equal(7)
	})

	t.Run("empty backend yields empty view without error", func(t *testing.T) {
		wb := usecase.New(memory.New())
		gt.NoError(t, wb.Refresh(ctx))

		view := wb.Snapshot()
		gt.Number(t, len(view.Cases)).Equal(0)
		gt.Value(t, view.ActiveCase).Nil()
		gt.Number(t, view.Metrics.TotalItems).Equal(0)
	})

	t.Run("refresh keeps an explicit selection", func(t *testing.T) {
		client := memory.New()
		seedCase(t, client, "First investigation")
		second := seedCase(t, client, "Second investigation")
		wb := usecase.New(client)

		gt.NoError(t, wb.Refresh(ctx))
		wb.SelectCase(ctx, second.ID)
		gt.NoError(t, wb.Refresh(ctx))

		gt.Value(t, wb.ActiveCaseID()).Equal(second.ID)
	})

	t.Run("partial failure leaves cached state untouched", func(t *testing.T) {
		client := memory.New()
		created := seedCase(t, client, "Stale but available")
		stub := &stubBackend{Backend: client}
		wb := usecase.New(stub)

		gt.NoError(t, wb.Refresh(ctx))
		before := wb.Snapshot()
		gt.Number(t, len(before.Cases)).Equal(1)

		// Grow backend state, then fail one of the four registry calls.
		seedCase(t, client, "Should not appear yet")
		stub.sourceCatalogFn = func(ctx context.Context) ([]model.SourceCatalogEntry, error) {
			return nil, goerr.New("catalog fetch failed")
		}

		gt.Error(t, wb.Refresh(ctx))

		after := wb.Snapshot()
		gt.Number(t, len(after.Cases)).Equal(1)
		gt.Value(t, after.Cases[0].ID).Equal(created.ID)
		gt.Number(t, len(after.Connectors)).Equal(len(before.Connectors))
		gt.Number(t, len(after.SourceCatalog)).Equal(len(before.SourceCatalog))
		gt.Value(t, after.ErrorMessage).NotEqual("")

		// Recovery clears the error and applies the new state.
		stub.sourceCatalogFn = nil
		gt.NoError(t, wb.Refresh(ctx))
		recovered := wb.Snapshot()
		gt.Number(t, len(recovered.Cases)).Equal(2)
		gt.Value(t, recovered.ErrorMessage).Equal("")
	})
}

func TestSelectCase(t *testing.T) {
	ctx := context.Background()
	client := memory.New()
	first := seedCase(t, client, "First investigation")
	second := seedCase(t, client, "Second investigation")
	wb := usecase.New(client)
	gt.NoError(t, wb.Refresh(ctx))

	t.Run("selection changes the active case", func(t *testing.T) {
		wb.SelectCase(ctx, first.ID)
		gt.Value(t, wb.ActiveCaseID()).Equal(first.ID)

		wb.SelectCase(ctx, second.ID)
		gt.Value(t, wb.ActiveCaseID()).Equal(second.ID)
	})

	t.Run("reselecting the active case keeps artifacts", func(t *testing.T) {
		wb.SelectCase(ctx, second.ID)
		before := wb.Snapshot()
		gt.True(t, len(before.Artifacts.Timeline) > 0)

		wb.SelectCase(ctx, second.ID)
		after := wb.Snapshot()
		gt.Number(t, len(after.Artifacts.Timeline)).Equal(len(before.Artifacts.Timeline))
	})

	t.Run("selecting none clears artifacts", func(t *testing.T) {
		wb.SelectCase(ctx, "")
		view := wb.Snapshot()
		gt.Value(t, view.ActiveCase).Nil()
		gt.Number(t, len(view.Artifacts.Timeline)).Equal(0)
	})
}
