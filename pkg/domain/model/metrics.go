package model

// GlobalMetrics is the backend-computed cross-case aggregate snapshot
type GlobalMetrics struct {
	TotalCases        int     `json:"total_cases"`
	OpenAlerts        int     `json:"open_alerts"`
	AvgRisk           float64 `json:"avg_risk"`
	HighSeverityCases int     `json:"high_severity_cases"`
}

// DashboardMetrics combines the backend metrics with the locally derived
// total of collected items across all known cases
type DashboardMetrics struct {
	TotalItems        int
	AvgRisk           float64
	OpenAlerts        int
	HighSeverityCases int
}
