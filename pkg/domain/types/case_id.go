package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// CaseID identifies an investigation case. IDs are assigned by the backend
// and are opaque to the client.
type CaseID string

// Validate checks if the CaseID is usable in a request path
func (c CaseID) Validate() error {
	if c == "" {
		return goerr.New("case ID cannot be empty")
	}
	return nil
}

// String returns the string representation of CaseID
func (c CaseID) String() string {
	return string(c)
}
