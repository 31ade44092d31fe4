package service

import (
	"context"
	"time"

	"relay_control/internal/models"
	"relay_control/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted relay state.
// If no state is persisted yet, returns an idle baseline snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.RelayState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.RelayState{}, err
	}
	if state.ID == 0 {
		return models.RelayState{ID: relayStateRowID, UpdatedAt: time.Now().UTC()}, nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
