package service

import (
	"context"
	"errors"

	"relay_control/internal/config"
	"relay_control/internal/models"
	"relay_control/internal/repository"
)

const smsSourcePrefix = "sms:"

type CommandService struct {
	authorizer *Authorizer
	relay      Relay
	eventRepo  repository.EventRepo
}

func NewCommandService(authorizer *Authorizer, relay Relay, eventRepo repository.EventRepo) *CommandService {
	return &CommandService{authorizer: authorizer, relay: relay, eventRepo: eventRepo}
}

// Handle authorizes m and pulses the relay. A rejected message is recorded
// as a REJECTED event and the authorization error is returned.
func (s *CommandService) Handle(ctx context.Context, m Message) error {
	sender := config.MaskPhone(m.Sender)

	if err := s.authorizer.Authorize(m.Sender, m.Body); err != nil {
		appendErr := s.eventRepo.Append(ctx, models.RelayEvent{
			Type:        models.EventRejected,
			Description: "Command rejected: " + err.Error(),
			Metadata:    map[string]any{"sender": sender},
		})
		return errors.Join(err, appendErr)
	}

	return s.relay.Activate(ctx, ActivateParams{Source: smsSourcePrefix + sender})
}
