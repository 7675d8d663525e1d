package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// Case represents one investigation unit tracked through the pipeline.
// The backend owns every field; the client holds a read-only cached copy
// that is replaced wholesale on each registry refresh.
type Case struct {
	ID        types.CaseID     `json:"id"`
	Title     string           `json:"title"`
	Query     string           `json:"query"`
	Platforms []types.Platform `json:"platforms"`
	Status    types.CaseStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ItemCount int              `json:"item_count"`
	RiskScore float64          `json:"risk_score"`
	Severity  types.Severity   `json:"severity"`
	Analysis  *AnalysisResult  `json:"analysis,omitempty"`
}

// RiskSignals holds the six scored risk dimensions of an analysis
type RiskSignals struct {
	Harm           float64 `json:"harm"`
	Velocity       float64 `json:"velocity"`
	Reach          float64 `json:"reach"`
	Coordination   float64 `json:"coordination"`
	CredibilityGap float64 `json:"credibility_gap"`
	CrossPlatform  float64 `json:"cross_platform"`
}

// AnalysisResult is present on a case once the analyze stage has run.
// Severity is derived from Score by the backend's thresholding and is
// never recomputed here.
type AnalysisResult struct {
	Signals           RiskSignals    `json:"signals"`
	Score             float64        `json:"score"`
	Severity          types.Severity `json:"severity"`
	NarrativeClusters map[string]int `json:"narrative_clusters"`
	TopEntities       []string       `json:"top_entities"`
	TopAccounts       []string       `json:"top_accounts"`
	LanguageDist      map[string]int `json:"language_distribution"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

const (
	minTitleLen = 5
	maxTitleLen = 140
	minQueryLen = 2
	maxQueryLen = 200
)

// CreateCaseInput is the payload for creating a new case. Validation mirrors
// the backend's constraints so obviously bad requests fail before the round
// trip.
type CreateCaseInput struct {
	Title     string           `json:"title"`
	Query     string           `json:"query"`
	Platforms []types.Platform `json:"platforms"`
}

// Validate checks the input against the backend's create-case constraints
func (c *CreateCaseInput) Validate() error {
	if len(c.Title) < minTitleLen || len(c.Title) > maxTitleLen {
		return goerr.New("case title must be between 5 and 140 characters",
			goerr.V("length", len(c.Title)))
	}
	if len(c.Query) < minQueryLen || len(c.Query) > maxQueryLen {
		return goerr.New("case query must be between 2 and 200 characters",
			goerr.V("length", len(c.Query)))
	}
	if len(c.Platforms) == 0 {
		return goerr.New("at least one platform is required")
	}
	seen := make(map[types.Platform]bool, len(c.Platforms))
	for _, p := range c.Platforms {
		if !p.IsValid() {
			return goerr.New("invalid platform", goerr.V("platform", p))
		}
		if seen[p] {
			return goerr.New("duplicate platform", goerr.V("platform", p))
		}
		seen[p] = true
	}
	return nil
}
