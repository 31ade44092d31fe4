package models

import "time"

// Relay modes.
const (
	ModePulse = "PULSE" // released automatically when RemainingSeconds runs out
	ModeLatch = "LATCH" // held until explicitly deactivated
)

// RelayState is the current snapshot of the relay.
type RelayState struct {
	ID               int       `json:"id"`
	Energized        bool      `json:"energized"`
	Mode             string    `json:"mode,omitempty"`              // PULSE | LATCH
	Source           string    `json:"source,omitempty"`            // e.g. "sms:+3816*******789", "api:user:7"
	RemainingSeconds int       `json:"remaining_seconds,omitempty"` // seconds until a pulse releases
	UpdatedAt        time.Time `json:"updated_at"`
}
