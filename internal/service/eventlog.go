package service

import (
	"context"
	"errors"
	"strings"

	"relay_control/internal/models"
	"relay_control/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeFilter converts bounds to UTC, upper-cases the type and validates the range.
func normalizeFilter(f LogFilter) (LogFilter, error) {
	f.From = toUTC(f.From)
	f.To = toUTC(f.To)
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}
	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	return f, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RelayEvent, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, f.From, f.To, f.Type)
}
