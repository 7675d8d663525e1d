package types

import "fmt"

// AlertStatus represents the triage state of an alert
type AlertStatus string

const (
	AlertStatusOpen    AlertStatus = "open"
	AlertStatusTriaged AlertStatus = "triaged"
	AlertStatusClosed  AlertStatus = "closed"
)

// AllAlertStatuses returns all valid alert statuses
func AllAlertStatuses() []AlertStatus {
	return []AlertStatus{
		AlertStatusOpen,
		AlertStatusTriaged,
		AlertStatusClosed,
	}
}

// IsValid checks if the alert status is valid
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusOpen,
		AlertStatusTriaged,
		AlertStatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the alert status
func (s AlertStatus) String() string {
	return string(s)
}

// ParseAlertStatus parses a string into an AlertStatus
func ParseAlertStatus(s string) (AlertStatus, error) {
	status := AlertStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid alert status: %s", s)
	}
	return status, nil
}
