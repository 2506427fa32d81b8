package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kashala/atm-finder-go/internal/models"
)

// VisitRepository handles database operations for visit history
type VisitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Create inserts a visit entry.
func (r *VisitRepository) Create(ctx context.Context, v *models.VisitEntry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO visit_history (id, user_id, atm_name, atm_address, travel_time_min, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		v.ID, v.UserID, v.ATMName, v.ATMAddress, v.TravelTimeMin, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create visit entry: %w", err)
	}
	return nil
}

// ListByUser returns a user's visit history, newest first.
func (r *VisitRepository) ListByUser(ctx context.Context, userID string) ([]models.VisitEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, atm_name, atm_address, travel_time_min, created_at FROM visit_history WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query visit history: %w", err)
	}
	defer rows.Close()

	var visits []models.VisitEntry
	for rows.Next() {
		var v models.VisitEntry
		var travelTime sql.NullInt64
		if err := rows.Scan(&v.ID, &v.UserID, &v.ATMName, &v.ATMAddress, &travelTime, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visit entry: %w", err)
		}
		if travelTime.Valid {
			t := int(travelTime.Int64)
			v.TravelTimeMin = &t
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// DeleteByUser removes a user's entire visit history and returns the number
// of deleted entries.
func (r *VisitRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM visit_history WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete visit history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
