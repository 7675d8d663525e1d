package usecase

// User-facing error messages. Exactly one message is shown at a time;
// artifact-level degradation is never surfaced here.
const (
	msgBackendUnavailable = "Backend is unavailable. Ensure it is running and reachable."
	msgCreateFailed       = "Failed to create a new case."
)
