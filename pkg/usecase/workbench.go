package usecase

import (
	"sync"

	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// Workbench is the session-scoped state container driving the investigation
// pipeline. It tracks the known cases, the active case, the cached artifact
// bundle for that case, and the single current error message. All fields are
// guarded by one mutex; writes happen only at completion of a refresh, an
// action, or an artifact load.
type Workbench struct {
	mu      sync.Mutex
	backend interfaces.Backend

	cases      []model.Case
	metrics    model.GlobalMetrics
	connectors []model.ConnectorStatus
	catalog    []model.SourceCatalogEntry

	activeID  types.CaseID
	artifacts model.CaseArtifacts

	busy      bool
	errMsg    string
	refreshed bool
	loadSeq   uint64
}

// Option customizes the Workbench
type Option func(*Workbench)

// New creates a Workbench on top of the given backend
func New(backend interfaces.Backend, opts ...Option) *Workbench {
	wb := &Workbench{
		backend: backend,
	}
	for _, opt := range opts {
		opt(wb)
	}
	return wb
}

// ActiveCaseID returns the currently selected case ID, or empty if none
func (x *Workbench) ActiveCaseID() types.CaseID {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.activeID
}
