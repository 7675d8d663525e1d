package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/usecase"
)

func TestDeriveMetrics(t *testing.T) {
	t.Run("total items is the sum over all cases", func(t *testing.T) {
		cases := []model.Case{
			{ID: "case_1", ItemCount: 8},
			{ID: "case_2", ItemCount: 0},
			{ID: "case_3", ItemCount: 13},
		}
		global := model.GlobalMetrics{
			TotalCases:        3,
			OpenAlerts:        4,
			AvgRisk:           41.5,
			HighSeverityCases: 1,
		}

		metrics := usecase.DeriveMetrics(cases, global)
		gt.Number(t, metrics.TotalItems).Equal(21)
		gt.Value(t, metrics.AvgRisk).Equal(41.5)
		gt.Number(t, metrics.OpenAlerts).Equal(4)
		gt.Number(t, metrics.HighSeverityCases).Equal(1)
	})

	t.Run("empty inputs yield zero-valued defaults", func(t *testing.T) {
		metrics := usecase.DeriveMetrics(nil, model.GlobalMetrics{})
		gt.Number(t, metrics.TotalItems).Equal(0)
		gt.Value(t, metrics.AvgRisk).Equal(0.0)
		gt.Number(t, metrics.OpenAlerts).Equal(0)
		gt.Number(t, metrics.HighSeverityCases).Equal(0)
	})
}
