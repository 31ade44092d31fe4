package service

import "time"

// ActivateParams describes one relay activation.
type ActivateParams struct {
	Source   string        // who asked, e.g. "api:user:7" or "sms:+3816*******789"
	Latch    bool          // hold until Deactivate instead of pulsing
	Duration time.Duration // pulse length; zero means the configured default
}

// Message is an inbound control message such as an SMS.
type Message struct {
	Sender string
	Body   string
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "ACTIVATE", "DEACTIVATE", "RELEASE", "REJECTED"
}

// SignUpParams describes an operator registration. InvitedBy is the ID of the
// authenticated operator adding the account, or zero for an anonymous request.
type SignUpParams struct {
	Username  string
	Password  string
	InvitedBy int
}
