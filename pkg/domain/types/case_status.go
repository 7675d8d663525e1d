package types

import "fmt"

// CaseStatus represents the pipeline stage of a case. Transitions only move
// forward and are decided by the backend; the client never rewinds a status.
type CaseStatus string

const (
	CaseStatusDraft      CaseStatus = "draft"
	CaseStatusCollecting CaseStatus = "collecting"
	CaseStatusAnalyzing  CaseStatus = "analyzing"
	CaseStatusReady      CaseStatus = "ready"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusDraft,
		CaseStatusCollecting,
		CaseStatusAnalyzing,
		CaseStatusReady,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusDraft,
		CaseStatusCollecting,
		CaseStatusAnalyzing,
		CaseStatusReady:
		return true
	default:
		return false
	}
}

// Stage returns the ordinal position of the status in the pipeline,
// starting at 0 for draft. Unknown statuses return -1.
func (s CaseStatus) Stage() int {
	switch s {
	case CaseStatusDraft:
		return 0
	case CaseStatusCollecting:
		return 1
	case CaseStatusAnalyzing:
		return 2
	case CaseStatusReady:
		return 3
	default:
		return -1
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
