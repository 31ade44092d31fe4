package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"relay_control/internal/models"

	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrOperatorsExist = errors.New("operators already registered")
)

// UserRepository keeps operator accounts in the users table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL      = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	insertFirstUserSQL = `INSERT INTO users (username, password_hash, created_at)
		SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM users)`
	selectUserSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
)

func (r *UserRepository) Create(ctx context.Context, username, hash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, hash, time.Now().UTC())
	if err != nil {
		return 0, insertUserError(username, err)
	}
	return lastUserID(username, res)
}

// CreateFirst is a single statement so two concurrent bootstrap sign-ups
// cannot both succeed.
func (r *UserRepository) CreateFirst(ctx context.Context, username, hash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertFirstUserSQL, username, hash, time.Now().UTC())
	if err != nil {
		return 0, insertUserError(username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for operator %q: %w", username, err)
	}
	if n == 0 {
		return 0, ErrOperatorsExist
	}
	return lastUserID(username, res)
}

// GetByUsername returns (nil, nil) when no such operator exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select operator %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func lastUserID(username string, res sql.Result) (int, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for operator %q: %w", username, err)
	}
	return int(id), nil
}

func insertUserError(username string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("insert operator %q: %w", username, ErrUsernameTaken)
	}
	return fmt.Errorf("insert operator %q: %w", username, err)
}

// isUniqueViolation recognises the sqlite driver's constraint code.
func isUniqueViolation(err error) bool {
	var coded interface{ Code() int }
	unique := strings.Contains(err.Error(), "UNIQUE constraint failed")
	if errors.As(err, &coded) {
		code := coded.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || (code&0xff == sqlite3.SQLITE_CONSTRAINT && unique)
	}
	return unique
}
