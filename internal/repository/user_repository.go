package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kashala/atm-finder-go/internal/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	prefs, err := json.Marshal(u.Prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, prefs, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Name, u.Email, u.PasswordHash, string(prefs), u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail returns the user with the given email, or nil when missing.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByID returns the user with the given id, or nil when missing.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepository) getBy(ctx context.Context, cond string, arg interface{}) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, prefs, created_at FROM users WHERE "+cond, arg)

	var u models.User
	var prefs string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &prefs, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal([]byte(prefs), &u.Prefs); err != nil {
		return nil, fmt.Errorf("invalid prefs payload for user %s: %w", u.ID, err)
	}
	return &u, nil
}

// UpdatePrefs replaces the stored prefs object of a user.
func (r *UserRepository) UpdatePrefs(ctx context.Context, id string, prefs map[string]interface{}) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	res, err := r.db.ExecContext(ctx, "UPDATE users SET prefs = ? WHERE id = ?", string(payload), id)
	if err != nil {
		return fmt.Errorf("failed to update prefs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}
