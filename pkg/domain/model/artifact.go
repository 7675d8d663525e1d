package model

import (
	"time"

	"github.com/osint-lab/argus/pkg/domain/types"
)

// ContentItem is one collected piece of content belonging to a case
type ContentItem struct {
	ID           string         `json:"id"`
	CaseID       types.CaseID   `json:"case_id"`
	Platform     types.Platform `json:"platform"`
	Author       string         `json:"author"`
	Text         string         `json:"text"`
	URL          string         `json:"url"`
	ObservedAt   time.Time      `json:"observed_at"`
	Language     string         `json:"language"`
	Engagement   int            `json:"engagement"`
	SourceName   string         `json:"source_name"`
	MediaHash    string         `json:"media_hash,omitempty"`
	NarrativeKey string         `json:"narrative_key,omitempty"`
	Entities     []string       `json:"entities"`
}

// Alert is a synthesized risk alert for a case
type Alert struct {
	ID                string            `json:"id"`
	CaseID            types.CaseID      `json:"case_id"`
	Severity          types.Severity    `json:"severity"`
	Status            types.AlertStatus `json:"status"`
	Title             string            `json:"title"`
	Summary           string            `json:"summary"`
	RecommendedAction string            `json:"recommended_action"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Evidence is a captured record tying a content item to its source, carrying
// an opaque integrity hash
type Evidence struct {
	ID           string       `json:"id"`
	CaseID       types.CaseID `json:"case_id"`
	ItemID       string       `json:"item_id"`
	SourceName   string       `json:"source_name"`
	SourceURL    string       `json:"source_url"`
	EvidenceHash string       `json:"evidence_hash"`
	Note         string       `json:"note"`
	CapturedAt   time.Time    `json:"captured_at"`
}

// TimelineEvent is one entry of a case's activity timeline
type TimelineEvent struct {
	ID        string         `json:"id"`
	CaseID    types.CaseID   `json:"case_id"`
	EventType string         `json:"event_type"`
	Summary   string         `json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

// MediaVerification is the verification outcome for one item's media
type MediaVerification struct {
	ItemID      string          `json:"item_id"`
	Verdict     types.Verdict   `json:"verdict"`
	Confidence  float64         `json:"confidence"`
	Checks      map[string]bool `json:"checks"`
	Explanation string          `json:"explanation"`
}

// GraphNode is one node of a case's entity graph
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// GraphEdge connects two nodes of a case's entity graph
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Graph is the entity/account relationship graph built for a case
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Report is the analyst-facing case report
type Report struct {
	CaseID           types.CaseID `json:"case_id"`
	Headline         string       `json:"headline"`
	ExecutiveSummary []string     `json:"executive_summary"`
	Findings         []string     `json:"findings"`
	Recommendations  []string     `json:"recommendations"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

// CaseArtifacts bundles every derived product of one case. The loader
// replaces the whole bundle atomically; a kind whose fetch failed is left
// at its zero value (nil pointer or empty slice).
type CaseArtifacts struct {
	Graph       *Graph              `json:"graph,omitempty"`
	Items       []ContentItem       `json:"items"`
	Alerts      []Alert             `json:"alerts"`
	Evidence    []Evidence          `json:"evidence"`
	Timeline    []TimelineEvent     `json:"timeline"`
	MediaChecks []MediaVerification `json:"media_checks"`
	Report      *Report             `json:"report,omitempty"`
}
