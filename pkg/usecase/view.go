package usecase

import (
	"github.com/osint-lab/argus/pkg/domain/model"
)

// View is the read-only projection exposed to the presentation layer. It is
// a value snapshot: mutating it has no effect on the workbench.
type View struct {
	Cases         []model.Case               `json:"cases"`
	ActiveCase    *model.Case                `json:"active_case,omitempty"`
	Artifacts     model.CaseArtifacts        `json:"artifacts"`
	Metrics       model.DashboardMetrics     `json:"metrics"`
	Connectors    []model.ConnectorStatus    `json:"connectors"`
	SourceCatalog []model.SourceCatalogEntry `json:"source_catalog"`
	Busy          bool                       `json:"busy"`
	ErrorMessage  string                     `json:"error_message,omitempty"`
}

// Snapshot composes the current view. The active case is re-derived by ID
// lookup from the latest case collection on every call, so a refresh that
// raced an artifact load can never pin an outdated case snapshot.
func (x *Workbench) Snapshot() View {
	x.mu.Lock()
	defer x.mu.Unlock()

	view := View{
		Cases:         append([]model.Case(nil), x.cases...),
		Artifacts:     x.artifacts,
		Metrics:       DeriveMetrics(x.cases, x.metrics),
		Connectors:    append([]model.ConnectorStatus(nil), x.connectors...),
		SourceCatalog: append([]model.SourceCatalogEntry(nil), x.catalog...),
		Busy:          x.busy,
		ErrorMessage:  x.errMsg,
	}

	if x.activeID != "" {
		for i := range view.Cases {
			if view.Cases[i].ID == x.activeID {
				view.ActiveCase = &view.Cases[i]
				break
			}
		}
	}
	return view
}
