package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/spatial"
)

// ATMRepository handles database operations for ATM records
type ATMRepository struct {
	db *sql.DB
}

// NewATMRepository creates a new ATM repository
func NewATMRepository(db *sql.DB) *ATMRepository {
	return &ATMRepository{db: db}
}

const atmColumns = "id, name, bank, lat, lon, address, services, is_open, opening_hours, rating, logo_url"

// List retrieves ATM records with optional filtering. Distance annotation
// and ordering happen in the service layer, not here.
func (r *ATMRepository) List(ctx context.Context, filter models.ATMFilter) ([]models.ATM, error) {
	query := "SELECT " + atmColumns + " FROM atms"

	var conditions []string
	var args []interface{}

	if filter.Bank != "" {
		conditions = append(conditions, "bank = ?")
		args = append(args, filter.Bank)
	}
	if filter.OpenNow {
		conditions = append(conditions, "is_open = 1")
	}
	if filter.Query != "" {
		conditions = append(conditions, "(name LIKE ? COLLATE NOCASE OR bank LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}
	if filter.RadiusKm > 0 && spatial.IsValidLatLon(filter.Lat, filter.Lon) {
		// Coarse bounding-box prefilter; the service re-checks the exact
		// great-circle distance.
		minLat, minLon, maxLat, maxLon := spatial.BoxAround(filter.Lat, filter.Lon, filter.RadiusKm)
		conditions = append(conditions, "lat BETWEEN ? AND ?", "lon BETWEEN ? AND ?")
		args = append(args, minLat, maxLat, minLon, maxLon)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query atms: %w", err)
	}
	defer rows.Close()

	return scanATMs(rows)
}

// GetByID retrieves a single ATM, or nil when missing.
func (r *ATMRepository) GetByID(ctx context.Context, id string) (*models.ATM, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+atmColumns+" FROM atms WHERE id = ?", id)

	atm, err := scanATM(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get atm %s: %w", id, err)
	}
	return atm, nil
}

// Banks returns the distinct bank names present in the table.
func (r *ATMRepository) Banks(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT bank FROM atms ORDER BY bank")
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	var banks []string
	for rows.Next() {
		var bank string
		if err := rows.Scan(&bank); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, bank)
	}
	return banks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanATM(row rowScanner) (*models.ATM, error) {
	var atm models.ATM
	var services string
	err := row.Scan(
		&atm.ID, &atm.Name, &atm.Bank,
		&atm.Coordinate.Latitude, &atm.Coordinate.Longitude,
		&atm.Address, &services, &atm.IsOpen, &atm.OpeningHours,
		&atm.Rating, &atm.Logo,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(services), &atm.Services); err != nil {
		return nil, fmt.Errorf("invalid services payload for atm %s: %w", atm.ID, err)
	}
	return &atm, nil
}

func scanATMs(rows *sql.Rows) ([]models.ATM, error) {
	var atms []models.ATM
	for rows.Next() {
		atm, err := scanATM(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan atm: %w", err)
		}
		atms = append(atms, *atm)
	}
	return atms, rows.Err()
}
