package service

import (
	"context"
	"time"

	"relay_control/internal/config"
	"relay_control/internal/logger"
	"relay_control/internal/models"
	"relay_control/internal/repository"
)

// Authorization manages operator accounts and bearer tokens.
type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Relay exposes control operations on the single relay output.
type Relay interface {
	Activate(ctx context.Context, p ActivateParams) error
	Deactivate(ctx context.Context, source string) error
}

// Commands handles inbound control messages from the admin phone.
type Commands interface {
	Handle(ctx context.Context, m Message) error
}

// Monitoring exposes read-only relay state.
type Monitoring interface {
	GetState(ctx context.Context) (models.RelayState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RelayEvent, error)
}

// Network exposes the station and access point profiles used for bring-up.
type Network interface {
	Station() StationProfile
	AccessPoint() AccessPointProfile
	Summary() NetworkSummary
}

// Releaser runs the background loop that releases elapsed pulses.
// Stop via context cancellation in main() for graceful shutdown.
type Releaser interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Relay
	Commands
	Monitoring
	EventLog
	Network
	Releaser
	Authorization
}

// NewService wires the repository layer and settings into concrete services.
func NewService(repos *repository.Repository, settings config.Settings, log *logger.Logger) *Service {
	relay := NewRelayService(repos.StateRepo, repos.EventRepo, settings.Relay.Pulse)
	authorizer := NewAuthorizer(settings.AdminPhone, settings.SecretCommand)

	return &Service{
		Relay:         relay,
		Commands:      NewCommandService(authorizer, relay, repos.EventRepo),
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Network:       NewNetworkService(settings.Station, settings.AccessPoint),
		Releaser:      NewReleaseTimer(relay, log),
		Authorization: NewAuthService(repos.Auth, settings.Auth),
	}
}
