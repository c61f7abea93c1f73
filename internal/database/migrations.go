package database

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Migration represents one schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var sqliteMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_vehicles",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicles (
				vehicle_id   TEXT PRIMARY KEY,
				name         TEXT NOT NULL DEFAULT '',
				plate_number TEXT NOT NULL DEFAULT '',
				created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		Version: 2,
		Name:    "create_operations",
		SQL: `
			CREATE TABLE IF NOT EXISTS operations (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				vehicle_id  TEXT NOT NULL REFERENCES vehicles(vehicle_id),
				driver_name TEXT NOT NULL DEFAULT '',
				started_at  INTEGER NOT NULL,
				ended_at    INTEGER
			)`,
	},
	{
		Version: 3,
		Name:    "create_location_samples",
		SQL: `
			CREATE TABLE IF NOT EXISTS location_samples (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				vehicle_id      TEXT NOT NULL,
				latitude        REAL NOT NULL,
				longitude       REAL NOT NULL,
				altitude_meters REAL,
				speed_kmh       REAL,
				heading_degrees REAL,
				accuracy_meters REAL,
				captured_at     INTEGER NOT NULL
			)`,
	},
	{
		Version: 4,
		Name:    "index_location_samples",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_samples_vehicle_time
			ON location_samples (vehicle_id, captured_at)`,
	},
}

var postgresMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_vehicles",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicles (
				vehicle_id   TEXT PRIMARY KEY,
				name         TEXT NOT NULL DEFAULT '',
				plate_number TEXT NOT NULL DEFAULT '',
				created_at   TIMESTAMPTZ DEFAULT NOW()
			)`,
	},
	{
		Version: 2,
		Name:    "create_operations",
		SQL: `
			CREATE TABLE IF NOT EXISTS operations (
				id          BIGSERIAL PRIMARY KEY,
				vehicle_id  TEXT NOT NULL REFERENCES vehicles(vehicle_id),
				driver_name TEXT NOT NULL DEFAULT '',
				started_at  BIGINT NOT NULL,
				ended_at    BIGINT
			)`,
	},
	{
		Version: 3,
		Name:    "create_location_samples",
		SQL: `
			CREATE TABLE IF NOT EXISTS location_samples (
				id              BIGSERIAL PRIMARY KEY,
				vehicle_id      TEXT NOT NULL,
				latitude        DOUBLE PRECISION NOT NULL,
				longitude       DOUBLE PRECISION NOT NULL,
				altitude_meters DOUBLE PRECISION,
				speed_kmh       DOUBLE PRECISION,
				heading_degrees DOUBLE PRECISION,
				accuracy_meters DOUBLE PRECISION,
				captured_at     BIGINT NOT NULL
			)`,
	},
	{
		Version: 4,
		Name:    "index_location_samples",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_samples_vehicle_time
			ON location_samples (vehicle_id, captured_at)`,
	},
}

// Migrate applies pending migrations for the given driver ("sqlite" or
// "postgres"), tracking applied versions in a migrations table.
func Migrate(db *sql.DB, driver string) error {
	migrations := sqliteMigrations
	if driver == "postgres" {
		migrations = postgresMigrations
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if err := recordMigration(db, driver, m); err != nil {
			return err
		}
		log.WithFields(log.Fields{"version": m.Version, "name": m.Name}).Info("applied migration")
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
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

func recordMigration(db *sql.DB, driver string, m Migration) error {
	query := "INSERT INTO migrations (version, name) VALUES (?, ?)"
	if driver == "postgres" {
		query = "INSERT INTO migrations (version, name) VALUES ($1, $2)"
	}
	if _, err := db.Exec(query, m.Version, m.Name); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}
	return nil
}
