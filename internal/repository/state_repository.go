package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kashala/atm-finder-go/internal/models"
)

// StateRepository handles database operations for ATM availability states
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// FindByATM returns the state row for an ATM id, or nil when none exists.
func (r *StateRepository) FindByATM(ctx context.Context, atmID string) (*models.ATMState, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, atm_id, is_available, last_updated, user_id FROM atm_states WHERE atm_id = ?",
		atmID)

	var st models.ATMState
	err := row.Scan(&st.ID, &st.ATMID, &st.IsAvailable, &st.LastUpdated, &st.UserID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find state for atm %s: %w", atmID, err)
	}
	return &st, nil
}

// Create inserts a new state row.
func (r *StateRepository) Create(ctx context.Context, st *models.ATMState) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO atm_states (id, atm_id, is_available, last_updated, user_id) VALUES (?, ?, ?, ?, ?)",
		st.ID, st.ATMID, st.IsAvailable, st.LastUpdated, st.UserID)
	if err != nil {
		return fmt.Errorf("failed to create state for atm %s: %w", st.ATMID, err)
	}
	return nil
}

// Update overwrites the availability flag of an existing row.
func (r *StateRepository) Update(ctx context.Context, id string, isAvailable bool, lastUpdated time.Time, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE atm_states SET is_available = ?, last_updated = ?, user_id = ? WHERE id = ?",
		isAvailable, lastUpdated, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update state %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for state %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("state %s not found", id)
	}
	return nil
}

// List returns all states, most recently updated first.
func (r *StateRepository) List(ctx context.Context) ([]models.ATMState, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, atm_id, is_available, last_updated, user_id FROM atm_states ORDER BY last_updated DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var states []models.ATMState
	for rows.Next() {
		var st models.ATMState
		if err := rows.Scan(&st.ID, &st.ATMID, &st.IsAvailable, &st.LastUpdated, &st.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}
