package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"relay_control/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	relayStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO relay_state (id, energized, mode, source, remaining_s, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			energized=excluded.energized,
			mode=excluded.mode,
			source=excluded.source,
			remaining_s=excluded.remaining_s,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, energized, mode, source, remaining_s, updated_at
		FROM relay_state WHERE id=?
	`
)

// Save updates or inserts the relay_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.RelayState) error {
	// UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		relayStateRowID,
		state.Energized,
		state.Mode,
		state.Source,
		state.RemainingSeconds,
		tsUTC,
	)
	if err != nil {
		return fmt.Errorf("save relay state: %w", err)
	}
	return nil
}

// Load fetches the single relay_state row (id=1).
// A zero RelayState (ID 0) means nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.RelayState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, relayStateRowID)

	var s models.RelayState
	if err := row.Scan(
		&s.ID,
		&s.Energized,
		&s.Mode,
		&s.Source,
		&s.RemainingSeconds,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RelayState{}, nil // no state yet
		}
		return models.RelayState{}, fmt.Errorf("load relay state: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
