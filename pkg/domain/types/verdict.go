package types

import "fmt"

// Verdict is the outcome of media verification for a content item
type Verdict string

const (
	VerdictLikelyAuthentic Verdict = "likely_authentic"
	VerdictSuspicious      Verdict = "suspicious"
	VerdictReused          Verdict = "reused"
)

// AllVerdicts returns all valid verdicts
func AllVerdicts() []Verdict {
	return []Verdict{
		VerdictLikelyAuthentic,
		VerdictSuspicious,
		VerdictReused,
	}
}

// IsValid checks if the verdict is valid
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictLikelyAuthentic,
		VerdictSuspicious,
		VerdictReused:
		return true
	default:
		return false
	}
}

// String returns the string representation of the verdict
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict parses a string into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid verdict: %s", s)
	}
	return v, nil
}
