package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_atms",
		SQL: `CREATE TABLE IF NOT EXISTS atms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			bank TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			services TEXT NOT NULL DEFAULT '[]',
			is_open INTEGER NOT NULL DEFAULT 1,
			opening_hours TEXT NOT NULL DEFAULT '',
			rating REAL NOT NULL DEFAULT 0,
			logo_url TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_atms_bank ON atms(bank);
		CREATE INDEX IF NOT EXISTS idx_atms_lat_lon ON atms(lat, lon);`,
	},
	{
		Version: 2,
		Name:    "create_atm_states",
		SQL: `CREATE TABLE IF NOT EXISTS atm_states (
			id TEXT PRIMARY KEY,
			atm_id TEXT NOT NULL UNIQUE,
			is_available INTEGER NOT NULL,
			last_updated TIMESTAMP NOT NULL,
			user_id TEXT NOT NULL DEFAULT 'anonymous'
		);
		CREATE INDEX IF NOT EXISTS idx_atm_states_updated ON atm_states(last_updated);`,
	},
	{
		Version: 3,
		Name:    "create_visit_history",
		SQL: `CREATE TABLE IF NOT EXISTS visit_history (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			atm_name TEXT NOT NULL,
			atm_address TEXT NOT NULL DEFAULT '',
			travel_time_min INTEGER,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_visit_history_user ON visit_history(user_id, created_at);`,
	},
	{
		Version: 4,
		Name:    "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			prefs TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL
		);`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
