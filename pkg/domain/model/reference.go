package model

// ConnectorStatus describes the health of one ingestion connector.
// Case-independent reference data, refreshed alongside the case list.
type ConnectorStatus struct {
	Connector    string  `json:"connector"`
	Domain       string  `json:"domain"`
	Health       string  `json:"health"`
	SuccessRate  float64 `json:"success_rate"`
	AvgLatencyMS int     `json:"avg_latency_ms"`
	LastError    string  `json:"last_error,omitempty"`
}

// SourceCatalogEntry describes one source available for collection
type SourceCatalogEntry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	SourceType string   `json:"source_type"`
	OriginRepo string   `json:"origin_repo"`
	URL        string   `json:"url"`
	Tags       []string `json:"tags"`
}
