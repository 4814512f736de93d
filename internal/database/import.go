package database

import (
	"database/sql"
	"errors"
	"fmt"

	"music-log/internal/models"
)

// ImportListens stores listens from an export, registering missing artists and
// releases along the way. Releases are matched by name and artist. All rows go
// in one transaction, so a failing row leaves the database unchanged
func ImportListens(db DB, listens []models.Listen) (int64, error) {
	if len(listens) == 0 {
		return 0, nil
	}

	// One transaction for the whole file
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var imported int64
	for i, listen := range listens {
		// Register the artist unless it already exists
		if _, err := tx.Exec("INSERT OR IGNORE INTO artist (name) VALUES (?)", listen.Artist); err != nil {
			return 0, fmt.Errorf("listen %d: failed to add artist %q: %w", i+1, listen.Artist, err)
		}

		// Reuse a release of the same name and artist, or create it
		releaseID, err := ensureRelease(tx, listen)
		if err != nil {
			return 0, fmt.Errorf("listen %d: %w", i+1, err)
		}

		// Stored in local time like AddLog, whatever offset the export used
		date := FormatDate(listen.Date.Local())
		if _, err := tx.Exec("INSERT INTO log (release_id, date) VALUES (?, ?)", releaseID, date); err != nil {
			return 0, fmt.Errorf("listen %d: failed to add log: %w", i+1, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return imported, nil
}

// ensureRelease returns the id of the release named in listen, creating it when missing
func ensureRelease(tx *sql.Tx, listen models.Listen) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM release WHERE name = ? AND artistname = ? ORDER BY id LIMIT 1",
		listen.Release, listen.Artist).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up release %q: %w", listen.Release, err)
	}

	result, err := tx.Exec("INSERT INTO release (name, artistname, year) VALUES (?, ?, ?)",
		listen.Release, listen.Artist, listen.Year)
	if err != nil {
		return 0, fmt.Errorf("failed to add release %q: %w", listen.Release, err)
	}
	return result.LastInsertId()
}
