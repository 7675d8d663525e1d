package usecase

import (
	"github.com/osint-lab/argus/pkg/domain/model"
)

// DeriveMetrics combines the backend-computed global metrics with the one
// locally derivable number: the total of collected items across all known
// cases. Pure derivation with no failure modes; absent inputs yield zeroes.
func DeriveMetrics(cases []model.Case, global model.GlobalMetrics) model.DashboardMetrics {
	var totalItems int
	for _, c := range cases {
		totalItems += c.ItemCount
	}
	return model.DashboardMetrics{
		TotalItems:        totalItems,
		AvgRisk:           global.AvgRisk,
		OpenAlerts:        global.OpenAlerts,
		HighSeverityCases: global.HighSeverityCases,
	}
}
