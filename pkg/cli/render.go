package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/usecase"
)

var (
	headline  = color.New(color.FgCyan, color.Bold)
	dimmed    = color.New(color.Faint)
	warnColor = color.New(color.FgYellow)
)

func severitySprint(s types.Severity) string {
	switch s {
	case types.SeverityR4:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case types.SeverityR3:
		return color.New(color.FgRed).Sprint(s)
	case types.SeverityR2:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return color.New(color.FgGreen).Sprint(s)
	}
}

// renderView prints the workbench snapshot as an analyst-facing dashboard
func renderView(w io.Writer, view usecase.View) {
	if view.ErrorMessage != "" {
		fmt.Fprintln(w, warnColor.Sprint(view.ErrorMessage))
	}

	fmt.Fprintln(w, headline.Sprint("Metrics"))
	fmt.Fprintf(w, "  items: %d  open alerts: %d  avg risk: %.1f  high severity: %d\n",
		view.Metrics.TotalItems,
		view.Metrics.OpenAlerts,
		view.Metrics.AvgRisk,
		view.Metrics.HighSeverityCases,
	)

	fmt.Fprintln(w, headline.Sprintf("Cases (%d)", len(view.Cases)))
	for _, c := range view.Cases {
		marker := " "
		if view.ActiveCase != nil && c.ID == view.ActiveCase.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s  %s  %-10s  %s  items=%d\n",
			marker, c.ID, severitySprint(c.Severity), c.Status, c.Title, c.ItemCount)
	}
	if len(view.Cases) == 0 {
		fmt.Fprintln(w, dimmed.Sprint("  no cases yet"))
	}

	if view.ActiveCase != nil {
		a := view.Artifacts
		fmt.Fprintln(w, headline.Sprintf("Artifacts for %s", view.ActiveCase.ID))
		fmt.Fprintf(w, "  items=%d alerts=%d evidence=%d timeline=%d media=%d\n",
			len(a.Items), len(a.Alerts), len(a.Evidence), len(a.Timeline), len(a.MediaChecks))
		if a.Graph != nil {
			fmt.Fprintf(w, "  graph: %d nodes / %d edges\n", len(a.Graph.Nodes), len(a.Graph.Edges))
		}
		if a.Report != nil {
			fmt.Fprintf(w, "  report: %s\n", a.Report.Headline)
			for _, line := range a.Report.ExecutiveSummary {
				fmt.Fprintf(w, "    %s\n", dimmed.Sprint(line))
			}
		} else {
			fmt.Fprintln(w, dimmed.Sprint("  report: not generated"))
		}
	}

	fmt.Fprintln(w, headline.Sprint("Connectors"))
	for _, conn := range view.Connectors {
		fmt.Fprintf(w, "  %-14s %-10s %5.1f%%  %dms\n",
			conn.Connector, conn.Health, conn.SuccessRate*100, conn.AvgLatencyMS)
	}
}

func renderCase(w io.Writer, view usecase.View) {
	if view.ActiveCase == nil {
		fmt.Fprintln(w, dimmed.Sprint("no active case"))
		return
	}
	c := view.ActiveCase
	fmt.Fprintf(w, "%s  %s  %s\n", c.ID, severitySprint(c.Severity), c.Status)
	fmt.Fprintf(w, "  title: %s\n", c.Title)
	fmt.Fprintf(w, "  query: %s\n", c.Query)
	fmt.Fprintf(w, "  items: %d  risk: %.1f\n", c.ItemCount, c.RiskScore)
	if c.Analysis != nil {
		fmt.Fprintf(w, "  entities: %v\n", c.Analysis.TopEntities)
		fmt.Fprintf(w, "  accounts: %v\n", c.Analysis.TopAccounts)
	}
}
