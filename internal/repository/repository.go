package repository

import (
	"context"
	"database/sql"
	"time"

	"relay_control/internal/models"
)

// Authorization stores operator accounts.
type Authorization interface {
	// Create adds an operator; a duplicate name yields ErrUsernameTaken.
	Create(ctx context.Context, username, hash string) (int, error)
	// CreateFirst adds an operator only while none exist, otherwise ErrOperatorsExist.
	CreateFirst(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s models.RelayState) error
	Load(ctx context.Context) (models.RelayState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.RelayEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.RelayEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
