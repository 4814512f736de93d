package database

import (
	"fmt"

	"music-log/internal/models"
)

// AddArtist registers a new artist; the name must not exist yet
func AddArtist(db DB, artist models.Artist) error {
	if _, err := db.Exec("INSERT INTO artist (name) VALUES (?)", artist.Name); err != nil {
		return fmt.Errorf("failed to add artist %q: %w", artist.Name, err)
	}
	return nil
}

// ListArtists returns every registered artist ordered by name
func ListArtists(db DB) ([]models.Artist, error) {
	rows, err := db.Query("SELECT name FROM artist ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	artists := []models.Artist{}
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return artists, nil
}
