package database

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the shared reference database
func DBPath() string {
	return filepath.Join("data", "skycast.db")
}

// Open opens the SQLite database at dbPath and applies the read-heavy pragmas
// used everywhere in the app.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=10000;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}
	return db, nil
}

// EnsureReferenceSchema creates the airport reference tables if missing.
// Column names follow the source CSVs: coordinates are keyed by "Airport",
// types by "origin"; both are stored under a common code column.
func EnsureReferenceSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS airport_coords (
			code TEXT PRIMARY KEY,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS airport_types (
			code TEXT PRIMARY KEY,
			type TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating airport reference tables: %w", err)
	}
	return nil
}

// TableExists reports whether a table with the given name exists
func TableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for %s table: %w", name, err)
	}
	return count > 0, nil
}

// RowCount returns the number of rows in table. The name must come from code,
// never from user input.
func RowCount(db *sql.DB, table string) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return count, nil
}
