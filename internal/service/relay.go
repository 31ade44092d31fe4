package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"relay_control/internal/models"
	"relay_control/internal/repository"
)

const (
	MaxPulse        = time.Hour
	relayStateRowID = 1
)

var ErrInvalidDuration = errors.New("invalid duration: whole seconds between 1s and 1h are required")

// RelayService owns every read-modify-write of the relay state.
// The release timer goes through Tick so both paths share one lock.
type RelayService struct {
	mu        sync.Mutex
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	pulse     time.Duration
}

func NewRelayService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, pulse time.Duration) *RelayService {
	return &RelayService{stateRepo: stateRepo, eventRepo: eventRepo, pulse: pulse}
}

func validPulse(d time.Duration) bool {
	return d >= time.Second && d <= MaxPulse && d%time.Second == 0
}

// Activate energizes the relay.
// A pulse holds for p.Duration (or the configured pulse) and is released by Tick;
// a latch holds until Deactivate. Activating an energized relay restarts it.
func (s *RelayService) Activate(ctx context.Context, p ActivateParams) error {
	mode := models.ModePulse
	remaining := 0
	if p.Latch {
		mode = models.ModeLatch
	} else {
		d := p.Duration
		if d == 0 {
			d = s.pulse
		}
		if !validPulse(d) {
			return ErrInvalidDuration
		}
		remaining = int(d / time.Second)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st := models.RelayState{
		ID:               relayStateRowID,
		Energized:        true,
		Mode:             mode,
		Source:           p.Source,
		RemainingSeconds: remaining,
		UpdatedAt:        now,
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.RelayEvent{
		OccurredAt:  now,
		Type:        models.EventActivate,
		Description: fmt.Sprintf("Relay activated (%s)", mode),
		Metadata: map[string]any{
			"mode":         mode,
			"duration_sec": remaining,
			"source":       p.Source,
		},
	})
}

// Deactivate de-energizes the relay. It succeeds, and is logged, even when
// the relay is already idle.
func (s *RelayService) Deactivate(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	wasEnergized := st.Energized

	st = models.RelayState{
		ID:        relayStateRowID,
		Source:    source,
		UpdatedAt: now,
	}
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.RelayEvent{
		OccurredAt:  now,
		Type:        models.EventDeactivate,
		Description: "Relay deactivated",
		Metadata: map[string]any{
			"was_energized": wasEnergized,
			"source":        source,
		},
	})
}

// Tick advances the pulse countdown to now and releases the relay once it
// runs out. It reports whether the state changed.
func (s *RelayService) Tick(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now = now.UTC()
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return false, err
	}
	if st.ID == 0 {
		// baseline idle row
		st = models.RelayState{ID: relayStateRowID, UpdatedAt: now}
		return s.save(ctx, st)
	}
	if !st.Energized || st.Mode != models.ModePulse {
		return false, nil
	}

	elapsed := int(now.Sub(st.UpdatedAt) / time.Second)
	if elapsed < 1 {
		return false, nil
	}

	if st.RemainingSeconds > elapsed {
		st.RemainingSeconds -= elapsed
		// advance by whole seconds only so fractions carry into the next tick
		st.UpdatedAt = st.UpdatedAt.Add(time.Duration(elapsed) * time.Second)
		return s.save(ctx, st)
	}

	source := st.Source
	st.Energized = false
	st.Mode = ""
	st.RemainingSeconds = 0
	st.UpdatedAt = now
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return false, err
	}
	return true, s.eventRepo.Append(ctx, models.RelayEvent{
		OccurredAt:  now,
		Type:        models.EventRelease,
		Description: "Pulse elapsed; relay released",
		Metadata:    map[string]any{"source": source},
	})
}

func (s *RelayService) save(ctx context.Context, st models.RelayState) (bool, error) {
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return false, err
	}
	return true, nil
}
