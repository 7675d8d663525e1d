package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/repository/memory"
)

func newDraftCase(t *testing.T, client *memory.Client) *model.Case {
	t.Helper()
	created, err := client.CreateCase(context.Background(), model.CreateCaseInput{
		Title:     "Test investigation",
		Query:     "coordinated wave",
		Platforms: []types.Platform{types.PlatformX, types.PlatformWeb},
	})
	gt.NoError(t, err).Required()
	return created
}

func TestCreateCase(t *testing.T) {
	client := memory.New()
	ctx := context.Background()

	created := newDraftCase(t, client)
	gt.Value(t, created.Status).Equal(types.CaseStatusDraft)
	gt.Number(t, created.ItemCount).Equal(0)
	gt.Value(t, created.Analysis).Nil()
	gt.Value(t, created.Severity).Equal(types.SeverityR1)

	t.Run("case is listed", func(t *testing.T) {
		cases := gt.R1(client.ListCases(ctx)).NoError(t)
		gt.Number(t, len(cases)).Equal(1)
		gt.Value(t, cases[0].ID).Equal(created.ID)
	})

	t.Run("creation adds a timeline event", func(t *testing.T) {
		events := gt.R1(client.Timeline(ctx, created.ID)).NoError(t)
		gt.Number(t, len(events)).Equal(1)
		gt.Value(t, events[0].EventType).Equal("case_created")
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		_, err := client.CreateCase(ctx, model.CreateCaseInput{Title: "x", Query: "q"})
		gt.Error(t, err)
	})
}

func TestCollect(t *testing.T) {
	client := memory.New()
	ctx := context.Background()
	created := newDraftCase(t, client)

	updated := gt.R1(client.Collect(ctx, created.ID)).NoError(t)
	gt.Value(t, updated.Status).Equal(types.CaseStatusCollecting)
	gt.Number(t, updated.ItemCount).Equal(8) // 4 items per platform, 2 platforms

	items := gt.R1(client.Items(ctx, created.ID)).NoError(t)
	gt.Number(t, len(items)).Equal(8)
	for _, item := range items {
		gt.Value(t, item.CaseID).Equal(created.ID)
		gt.True(t, item.Platform.IsValid())
	}

	t.Run("repeat collect appends", func(t *testing.T) {
		again := gt.R1(client.Collect(ctx, created.ID)).NoError(t)
		gt.Number(t, again.ItemCount).Equal(16)
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := client.Collect(ctx, "case_missing")
		gt.Error(t, err)
	})
}

func TestAnalyze(t *testing.T) {
	client := memory.New()
	ctx := context.Background()
	created := newDraftCase(t, client)
	gt.R1(client.Collect(ctx, created.ID)).NoError(t)

	analyzed := gt.R1(client.Analyze(ctx, created.ID)).NoError(t)
	gt.Value(t, analyzed.Status).Equal(types.CaseStatusReady)
	gt.Value(t, analyzed.Analysis).NotNil()
	gt.True(t, analyzed.RiskScore > 0)
	gt.True(t, analyzed.Severity.IsValid())
	gt.Value(t, analyzed.Severity).Equal(analyzed.Analysis.Severity)

	t.Run("products exist after analyze", func(t *testing.T) {
		alerts := gt.R1(client.Alerts(ctx, created.ID)).NoError(t)
		gt.True(t, len(alerts) >= 1)
		gt.Value(t, alerts[0].Status).Equal(types.AlertStatusOpen)

		evidence := gt.R1(client.Evidence(ctx, created.ID)).NoError(t)
		gt.Number(t, len(evidence)).Equal(analyzed.ItemCount)
		for _, ev := range evidence {
			gt.Number(t, len(ev.EvidenceHash)).Equal(40)
		}

		report := gt.R1(client.Report(ctx, created.ID)).NoError(t)
		gt.Value(t, report.CaseID).Equal(created.ID)
		gt.True(t, len(report.ExecutiveSummary) > 0)
	})

	t.Run("graph reflects items", func(t *testing.T) {
		graph := gt.R1(client.Graph(ctx, created.ID)).NoError(t)
		gt.True(t, len(graph.Nodes) > 0)
		gt.True(t, len(graph.Edges) > 0)
	})
}

func TestRunAllEquivalence(t *testing.T) {
	ctx := context.Background()

	stepwise := memory.New()
	a := newDraftCase(t, stepwise)
	gt.R1(stepwise.Collect(ctx, a.ID)).NoError(t)
	gt.R1(stepwise.Analyze(ctx, a.ID)).NoError(t)
	caseA := gt.R1(stepwise.GenerateProducts(ctx, a.ID)).NoError(t)

	oneshot := memory.New()
	b := newDraftCase(t, oneshot)
	caseB := gt.R1(oneshot.RunAll(ctx, b.ID)).NoError(t)

	gt.Value(t, caseA.Status).Equal(caseB.Status)
	gt.Number(t, caseA.ItemCount).Equal(caseB.ItemCount)
	gt.Value(t, caseA.Severity).Equal(caseB.Severity)
	gt.Value(t, caseA.Analysis.Severity).Equal(caseB.Analysis.Severity)
}

func TestGenerateProductsRequiresAnalysis(t *testing.T) {
	client := memory.New()
	ctx := context.Background()
	created := newDraftCase(t, client)

	_, err := client.GenerateProducts(ctx, created.ID)
	gt.Error(t, err).Is(memory.ErrAnalysisRequired)
}

func TestReportBeforeGeneration(t *testing.T) {
	client := memory.New()
	ctx := context.Background()
	created := newDraftCase(t, client)

	_, err := client.Report(ctx, created.ID)
	gt.Error(t, err)
}

func TestGlobalMetrics(t *testing.T) {
	client := memory.New()
	ctx := context.Background()

	t.Run("empty store yields zero metrics", func(t *testing.T) {
		metrics := gt.R1(client.GlobalMetrics(ctx)).NoError(t)
		gt.Number(t, metrics.TotalCases).Equal(0)
		gt.Number(t, metrics.OpenAlerts).Equal(0)
		gt.Value(t, metrics.AvgRisk).Equal(0.0)
	})

	t.Run("metrics reflect analyzed cases", func(t *testing.T) {
		created := newDraftCase(t, client)
		gt.R1(client.RunAll(ctx, created.ID)).NoError(t)

		metrics := gt.R1(client.GlobalMetrics(ctx)).NoError(t)
		gt.Number(t, metrics.TotalCases).Equal(1)
		gt.True(t, metrics.OpenAlerts >= 1)
		gt.True(t, metrics.AvgRisk > 0)
	})
}

func TestReferenceData(t *testing.T) {
	client := memory.New()
	ctx := context.Background()

	connectors := gt.R1(client.Connectors(ctx)).NoError(t)
	gt.Number(t, len(connectors)).Equal(5)

	catalog := gt.R1(client.SourceCatalog(ctx)).NoError(t)
	gt.Number(t, len(catalog)).Equal(7)
}
