package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// ErrCaseNotFound is returned when a case ID does not exist in the store
var ErrCaseNotFound = goerr.New("case not found")

// ErrAnalysisRequired is returned when generate-products runs before analyze
var ErrAnalysisRequired = goerr.New("analyze the case first")

// Client is an in-process backend with the same pipeline semantics as the
// remote one: collect synthesizes items, analyze scores and classifies, and
// product generation builds alerts, evidence, media checks and a report.
// Used for offline demo mode and as a test fixture.
type Client struct {
	mu       sync.RWMutex
	cases    map[types.CaseID]*model.Case
	items    map[types.CaseID][]model.ContentItem
	alerts   map[types.CaseID][]model.Alert
	evidence map[types.CaseID][]model.Evidence
	timeline map[types.CaseID][]model.TimelineEvent
	media    map[types.CaseID][]model.MediaVerification
	reports  map[types.CaseID]*model.Report
}

var _ interfaces.Backend = (*Client)(nil)

// New creates an empty in-process backend
func New() *Client {
	return &Client{
		cases:    make(map[types.CaseID]*model.Case),
		items:    make(map[types.CaseID][]model.ContentItem),
		alerts:   make(map[types.CaseID][]model.Alert),
		evidence: make(map[types.CaseID][]model.Evidence),
		timeline: make(map[types.CaseID][]model.TimelineEvent),
		media:    make(map[types.CaseID][]model.MediaVerification),
		reports:  make(map[types.CaseID]*model.Report),
	}
}

func newCaseID() types.CaseID {
	return types.CaseID("case_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

func copyCase(c *model.Case) *model.Case {
	copied := *c
	copied.Platforms = append([]types.Platform(nil), c.Platforms...)
	if c.Analysis != nil {
		analysis := *c.Analysis
		analysis.NarrativeClusters = copyCounts(c.Analysis.NarrativeClusters)
		analysis.LanguageDist = copyCounts(c.Analysis.LanguageDist)
		analysis.TopEntities = append([]string(nil), c.Analysis.TopEntities...)
		analysis.TopAccounts = append([]string(nil), c.Analysis.TopAccounts...)
		copied.Analysis = &analysis
	}
	return &copied
}

func copyCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (c *Client) getCase(id types.CaseID) (*model.Case, error) {
	cs, ok := c.cases[id]
	if !ok {
		return nil, goerr.Wrap(ErrCaseNotFound, "unknown case", goerr.V("case_id", id))
	}
	return cs, nil
}

func (c *Client) addTimelineEvent(id types.CaseID, eventType, summary string, metadata map[string]any) {
	events := c.timeline[id]
	c.timeline[id] = append(events, model.TimelineEvent{
		ID:        fmt.Sprintf("evt_%d_%s", len(events)+1, tail(id.String(), 4)),
		CaseID:    id,
		EventType: eventType,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
		Metadata:  metadata,
	})
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Health always succeeds for the in-process backend
func (c *Client) Health(ctx context.Context) error {
	return nil
}

// ListCases returns all cases, most recently updated first
func (c *Client) ListCases(ctx context.Context) ([]model.Case, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Case, 0, len(c.cases))
	for _, cs := range c.cases {
		out = append(out, *copyCase(cs))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetCase returns a single case by ID
func (c *Client) GetCase(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cs, err := c.getCase(id)
	if err != nil {
		return nil, err
	}
	return copyCase(cs), nil
}

// CreateCase creates a new draft case
func (c *Client) CreateCase(ctx context.Context, input model.CreateCaseInput) (*model.Case, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	cs := &model.Case{
		ID:        newCaseID(),
		Title:     input.Title,
		Query:     input.Query,
		Platforms: append([]types.Platform(nil), input.Platforms...),
		Status:    types.CaseStatusDraft,
		Severity:  types.SeverityR1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.cases[cs.ID] = cs
	c.addTimelineEvent(cs.ID, "case_created", "Investigation case created.", nil)
	return copyCase(cs), nil
}

// Collect synthesizes items for the case's query and platforms, appends them,
// and moves the case to collecting
func (c *Client) Collect(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cs, err := c.getCase(id)
	if err != nil {
		return nil, err
	}
	c.appendItems(cs, collectCaseItems(cs.ID, cs.Query, cs.Platforms))
	return copyCase(cs), nil
}

func (c *Client) appendItems(cs *model.Case, newItems []model.ContentItem) {
	cs.Status = types.CaseStatusCollecting
	cs.UpdatedAt = time.Now().UTC()
	c.items[cs.ID] = append(c.items[cs.ID], newItems...)
	cs.ItemCount = len(c.items[cs.ID])
	c.addTimelineEvent(cs.ID, "collection_completed",
		fmt.Sprintf("Collected %d new items.", len(newItems)),
		map[string]any{"item_count": len(newItems)})
}

// Analyze scores the collected items, classifies severity, and synthesizes
// the downstream products. The case ends up ready.
func (c *Client) Analyze(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cs, err := c.getCase(id)
	if err != nil {
		return nil, err
	}
	c.runAnalysis(cs)
	return copyCase(cs), nil
}

func (c *Client) runAnalysis(cs *model.Case) {
	cs.Status = types.CaseStatusAnalyzing
	analysis := analyzeItems(c.items[cs.ID])

	cs.Status = types.CaseStatusReady
	cs.RiskScore = analysis.Score
	cs.Severity = analysis.Severity
	cs.Analysis = &analysis
	cs.UpdatedAt = time.Now().UTC()
	c.addTimelineEvent(cs.ID, "analysis_completed",
		fmt.Sprintf("Analysis completed with score %.2f (%s).", analysis.Score, analysis.Severity),
		map[string]any{"score": analysis.Score, "severity": analysis.Severity.String()})

	c.generateProducts(cs)
}

func (c *Client) generateProducts(cs *model.Case) {
	items := c.items[cs.ID]
	c.alerts[cs.ID] = buildAlerts(cs.ID, cs.Analysis)
	c.addTimelineEvent(cs.ID, "alerts_generated",
		fmt.Sprintf("Generated %d alerts.", len(c.alerts[cs.ID])), nil)

	c.evidence[cs.ID] = buildEvidence(cs.ID, items)
	c.addTimelineEvent(cs.ID, "evidence_captured",
		fmt.Sprintf("Captured %d evidence records.", len(c.evidence[cs.ID])), nil)

	c.media[cs.ID] = verifyMedia(items)
	c.addTimelineEvent(cs.ID, "media_verified",
		fmt.Sprintf("Media verification completed for %d items.", len(c.media[cs.ID])), nil)

	c.reports[cs.ID] = buildReport(cs.ID, cs.Analysis, items)
	c.addTimelineEvent(cs.ID, "report_generated",
		"Executive and technical report generated.", nil)
}

// RunAll performs collect, analyze and product generation in one step
func (c *Client) RunAll(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cs, err := c.getCase(id)
	if err != nil {
		return nil, err
	}
	c.appendItems(cs, collectCaseItems(cs.ID, cs.Query, cs.Platforms))
	c.runAnalysis(cs)
	return copyCase(cs), nil
}

// GenerateProducts rebuilds alerts, evidence, media checks and the report
// from the existing analysis
func (c *Client) GenerateProducts(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cs, err := c.getCase(id)
	if err != nil {
		return nil, err
	}
	if cs.Analysis == nil {
		return nil, goerr.Wrap(ErrAnalysisRequired, "cannot generate products", goerr.V("case_id", id))
	}
	c.generateProducts(cs)
	cs.UpdatedAt = time.Now().UTC()
	return copyCase(cs), nil
}

// Graph builds the entity graph from the case's current items
func (c *Client) Graph(ctx context.Context, id types.CaseID) (*model.Graph, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return buildGraph(c.items[id]), nil
}

// Items returns the case's collected items
func (c *Client) Items(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return append([]model.ContentItem(nil), c.items[id]...), nil
}

// Alerts returns the case's alerts
func (c *Client) Alerts(ctx context.Context, id types.CaseID) ([]model.Alert, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return append([]model.Alert(nil), c.alerts[id]...), nil
}

// Evidence returns the case's evidence records
func (c *Client) Evidence(ctx context.Context, id types.CaseID) ([]model.Evidence, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return append([]model.Evidence(nil), c.evidence[id]...), nil
}

// Timeline returns the case's timeline events
func (c *Client) Timeline(ctx context.Context, id types.CaseID) ([]model.TimelineEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return append([]model.TimelineEvent(nil), c.timeline[id]...), nil
}

// MediaVerification returns the case's media verification results
func (c *Client) MediaVerification(ctx context.Context, id types.CaseID) ([]model.MediaVerification, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	return append([]model.MediaVerification(nil), c.media[id]...), nil
}

// Report returns the case's report, or an error if not generated yet
func (c *Client) Report(ctx context.Context, id types.CaseID) (*model.Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getCase(id); err != nil {
		return nil, err
	}
	report, ok := c.reports[id]
	if !ok {
		return nil, goerr.New("report not generated", goerr.V("case_id", id))
	}
	copied := *report
	return &copied, nil
}

// GlobalMetrics computes the aggregate snapshot over all cases
func (c *Client) GlobalMetrics(ctx context.Context) (*model.GlobalMetrics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	metrics := &model.GlobalMetrics{TotalCases: len(c.cases)}
	var riskSum float64
	for _, cs := range c.cases {
		riskSum += cs.RiskScore
		if cs.Severity.Rank() >= types.SeverityR3.Rank() {
			metrics.HighSeverityCases++
		}
	}
	if len(c.cases) > 0 {
		metrics.AvgRisk = riskSum / float64(len(c.cases))
	}
	for _, alerts := range c.alerts {
		for _, alert := range alerts {
			if alert.Status == types.AlertStatusOpen {
				metrics.OpenAlerts++
			}
		}
	}
	return metrics, nil
}

// Connectors returns the static connector health snapshot
func (c *Client) Connectors(ctx context.Context) ([]model.ConnectorStatus, error) {
	return append([]model.ConnectorStatus(nil), connectorHealth...), nil
}

// SourceCatalog returns the static source catalog
func (c *Client) SourceCatalog(ctx context.Context) ([]model.SourceCatalogEntry, error) {
	return append([]model.SourceCatalogEntry(nil), sourceCatalog...), nil
}
