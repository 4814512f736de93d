package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"music-log/internal/models"
)

// StoredDateLayout is RFC 3339 at second precision. Every stored date has the
// same width, so ordering the text column orders the logs by time
const StoredDateLayout = time.RFC3339

const selectLog = `
	SELECT log.date, release.name, artist.name
	FROM log
	JOIN release ON log.release_id = release.id
	JOIN artist ON release.artistname = artist.name`

// FormatDate converts a timestamp into its stored form
func FormatDate(t time.Time) string {
	return t.Truncate(time.Second).Format(StoredDateLayout)
}

// AddLog records a listen of the release at date
func AddLog(db DB, releaseID int64, date time.Time) error {
	_, err := db.Exec("INSERT INTO log (release_id, date) VALUES (?, ?)", releaseID, FormatDate(date))
	if err != nil {
		return fmt.Errorf("failed to add log for release %d: %w", releaseID, err)
	}
	return nil
}

// ListLog returns every log with its release and artist, oldest first
func ListLog(db DB) ([]models.Log, error) {
	rows, err := db.Query(selectLog + " ORDER BY log.date, log.id")
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	logs := []models.Log{}
	for rows.Next() {
		var l models.Log
		if err := rows.Scan(&l.Date, &l.Release, &l.Artist); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return logs, nil
}

// GetLog fetches one log by id; a missing log returns nil and no error
func GetLog(db DB, id int64) (*models.Log, error) {
	var l models.Log
	err := db.QueryRow(selectLog+" WHERE log.id = ?", id).Scan(&l.Date, &l.Release, &l.Artist)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log %d: %w", id, err)
	}
	return &l, nil
}

// DeleteLog removes a log by id. Deleting a missing id is not an error,
// callers check with GetLog first
func DeleteLog(db DB, id int64) error {
	if _, err := db.Exec("DELETE FROM log WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete log %d: %w", id, err)
	}
	return nil
}
