// Package database provides SQLite storage for artists, releases and listen logs
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DB interface defines database operations for easier testing
// The repository functions take a DB and never close it; the caller owns it
type DB interface {
	Close() error
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
	Begin() (*sql.Tx, error)
}

// sqliteDB implements the DB interface for SQLite
type sqliteDB struct {
	*sql.DB
}

// Initialize opens the SQLite database at dbPath, creating the file and its
// parent directory when missing, and sets up the schema
func Initialize(dbPath string) (DB, error) {
	// Create the parent directory of a file database
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Foreign keys are off by default in SQLite and enabled per connection
	sqlDB, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: an in-memory database only lives as long as its connection
	sqlDB.SetMaxOpenConns(1)

	db := &sqliteDB{sqlDB}

	// Make sure the file is really usable before touching the schema
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// createTables sets up the schema; safe to run on every start
func createTables(db DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS artist (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS release (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		artistname TEXT NOT NULL REFERENCES artist(name),
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		release_id INTEGER NOT NULL REFERENCES release(id),
		date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_release_name ON release(name);
	CREATE INDEX IF NOT EXISTS idx_release_artistname ON release(artistname);
	CREATE INDEX IF NOT EXISTS idx_log_date ON log(date);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// ExecuteQuery runs an ad-hoc statement with the connection in query_only
// mode and returns one map per row, keyed by column name
func ExecuteQuery(db DB, query string) ([]map[string]interface{}, error) {
	// SQLite rejects any write while query_only is on
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("failed to enter read-only mode: %w", err)
	}
	defer db.Exec("PRAGMA query_only = OFF")

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	return scanRowMaps(rows)
}

// scanRowMaps reads the remaining rows into column maps
// TEXT comes back from the driver as []byte and is turned into a string
func scanRowMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	maps := []map[string]interface{}{}
	cells := make([]interface{}, len(columns))
	targets := make([]interface{}, len(columns))
	for i := range cells {
		targets[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		m := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			if text, ok := cells[i].([]byte); ok {
				m[column] = string(text)
			} else {
				m[column] = cells[i]
			}
		}
		maps = append(maps, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return maps, nil
}
