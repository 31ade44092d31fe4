package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"relay_control/internal/models"
)

// fakeStateRepo keeps the last saved row like the single-row SQLite table.
type fakeStateRepo struct {
	mu      sync.Mutex
	state   models.RelayState
	loadErr error
	saveErr error
	saves   []models.RelayState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.RelayState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.RelayState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, s)
	f.state = s
	return nil
}

func (f *fakeStateRepo) current() models.RelayState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// fakeEventRepo records appends and captures List arguments.
type fakeEventRepo struct {
	mu        sync.Mutex
	appendErr error
	events    []models.RelayEvent

	listResp []models.RelayEvent
	listErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	calls    int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.RelayEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.RelayEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.listResp, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// fakeRelay records activations made by the command service.
type fakeRelay struct {
	activateErr  error
	activations  []ActivateParams
	deactivateBy []string
}

func (f *fakeRelay) Activate(ctx context.Context, p ActivateParams) error {
	f.activations = append(f.activations, p)
	return f.activateErr
}

func (f *fakeRelay) Deactivate(ctx context.Context, source string) error {
	f.deactivateBy = append(f.deactivateBy, source)
	return nil
}

func assertWithinTimeWindow(t *testing.T, ts, start, end time.Time) {
	t.Helper()
	if ts.Before(start) || ts.After(end) {
		t.Fatalf("time %v not within window [%v, %v]", ts, start, end)
	}
}
