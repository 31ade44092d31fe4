package models

import "time"

// Event types.
const (
	EventActivate   = "ACTIVATE"
	EventDeactivate = "DEACTIVATE"
	EventRelease    = "RELEASE"
	EventRejected   = "REJECTED"
)

// RelayEvent is a single log entry.
type RelayEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // ACTIVATE | DEACTIVATE | RELEASE | REJECTED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
