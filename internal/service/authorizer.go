package service

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrUnauthorizedSender = errors.New("sender is not authorized")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Authorizer checks inbound control messages against the admin phone
// and the secret command.
type Authorizer struct {
	adminPhone    string
	secretCommand string
}

func NewAuthorizer(adminPhone, secretCommand string) *Authorizer {
	return &Authorizer{adminPhone: adminPhone, secretCommand: secretCommand}
}

// Authorize accepts a message only when the sender is exactly the admin
// phone and the body, trimmed, is exactly the secret command.
// The sender is checked before the body.
func (a *Authorizer) Authorize(sender, body string) error {
	if !equalConstantTime(strings.TrimSpace(sender), a.adminPhone) {
		return ErrUnauthorizedSender
	}
	if !equalConstantTime(strings.TrimSpace(body), a.secretCommand) {
		return ErrUnknownCommand
	}
	return nil
}

func equalConstantTime(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
