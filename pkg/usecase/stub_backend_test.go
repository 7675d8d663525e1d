package usecase_test

import (
	"context"

	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// stubBackend wraps another backend and lets individual calls be overridden
// for failure injection and blocking-fetch scenarios.
type stubBackend struct {
	interfaces.Backend

	itemsFn         func(ctx context.Context, id types.CaseID) ([]model.ContentItem, error)
	collectFn       func(ctx context.Context, id types.CaseID) (*model.Case, error)
	sourceCatalogFn func(ctx context.Context) ([]model.SourceCatalogEntry, error)
}

func (s *stubBackend) Items(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
	if s.itemsFn != nil {
		return s.itemsFn(ctx, id)
	}
	return s.Backend.Items(ctx, id)
}

func (s *stubBackend) Collect(ctx context.Context, id types.CaseID) (*model.Case, error) {
	if s.collectFn != nil {
		return s.collectFn(ctx, id)
	}
	return s.Backend.Collect(ctx, id)
}

func (s *stubBackend) SourceCatalog(ctx context.Context) ([]model.SourceCatalogEntry, error) {
	if s.sourceCatalogFn != nil {
		return s.sourceCatalogFn(ctx)
	}
	return s.Backend.SourceCatalog(ctx)
}
