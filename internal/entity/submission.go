package entity

// SubmissionStatus tracks the one-shot push of a round result to the shared
// leaderboard. A round starts at Idle; any submit while the status is not
// Idle is a no-op.
type SubmissionStatus string

const (
	SubmissionIdle      SubmissionStatus = "idle"
	SubmissionInFlight  SubmissionStatus = "submitting"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionFailed    SubmissionStatus = "error"
)

// SubmissionState couples the status with its user-facing message.
type SubmissionState struct {
	Status  SubmissionStatus `json:"status"`
	Message string           `json:"message,omitempty"`
}
