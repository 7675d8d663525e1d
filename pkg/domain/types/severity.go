package types

import "fmt"

// Severity is the ordinal risk classification of a case or alert.
// R4 is the most severe. The value is computed by the backend from the
// analysis score and is never derived client-side.
type Severity string

const (
	SeverityR1 Severity = "R1"
	SeverityR2 Severity = "R2"
	SeverityR3 Severity = "R3"
	SeverityR4 Severity = "R4"
)

// AllSeverities returns all valid severities in ascending order
func AllSeverities() []Severity {
	return []Severity{
		SeverityR1,
		SeverityR2,
		SeverityR3,
		SeverityR4,
	}
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityR1, SeverityR2, SeverityR3, SeverityR4:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal rank of the severity, 1 for R1 through 4 for R4.
// Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityR1:
		return 1
	case SeverityR2:
		return 2
	case SeverityR3:
		return 3
	case SeverityR4:
		return 4
	default:
		return 0
	}
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}
