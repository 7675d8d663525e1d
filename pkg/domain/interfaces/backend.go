package interfaces

import (
	"context"

	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// Backend is the contract of the remote intelligence backend. One method per
// endpoint; implementations are the HTTP resource client and the in-process
// demo backend.
type Backend interface {
	// Health checks backend reachability
	Health(ctx context.Context) error

	// Case lifecycle
	ListCases(ctx context.Context) ([]model.Case, error)
	GetCase(ctx context.Context, id types.CaseID) (*model.Case, error)
	CreateCase(ctx context.Context, input model.CreateCaseInput) (*model.Case, error)

	// Pipeline stage actions. Each performs the stage synchronously on the
	// backend and returns the post-stage case.
	Collect(ctx context.Context, id types.CaseID) (*model.Case, error)
	Analyze(ctx context.Context, id types.CaseID) (*model.Case, error)
	RunAll(ctx context.Context, id types.CaseID) (*model.Case, error)
	GenerateProducts(ctx context.Context, id types.CaseID) (*model.Case, error)

	// Per-case artifact reads
	Graph(ctx context.Context, id types.CaseID) (*model.Graph, error)
	Items(ctx context.Context, id types.CaseID) ([]model.ContentItem, error)
	Alerts(ctx context.Context, id types.CaseID) ([]model.Alert, error)
	Evidence(ctx context.Context, id types.CaseID) ([]model.Evidence, error)
	Timeline(ctx context.Context, id types.CaseID) ([]model.TimelineEvent, error)
	MediaVerification(ctx context.Context, id types.CaseID) ([]model.MediaVerification, error)
	Report(ctx context.Context, id types.CaseID) (*model.Report, error)

	// Global reference data
	GlobalMetrics(ctx context.Context) (*model.GlobalMetrics, error)
	Connectors(ctx context.Context) ([]model.ConnectorStatus, error)
	SourceCatalog(ctx context.Context) ([]model.SourceCatalogEntry, error)
}
