package database

import (
	"fmt"

	"music-log/internal/models"
)

const selectRelease = "SELECT id, name, artistname, year FROM release"

// AddRelease inserts a release; the ID field is ignored and assigned by SQLite
// Fails when the artist is not registered
func AddRelease(db DB, release models.Release) error {
	_, err := db.Exec("INSERT INTO release (name, artistname, year) VALUES (?, ?, ?)",
		release.Name, release.Artist, release.Year)
	if err != nil {
		return fmt.Errorf("failed to add release %q by %q: %w", release.Name, release.Artist, err)
	}
	return nil
}

// GetRelease returns every release with exactly this name, in insertion order
func GetRelease(db DB, name string) ([]models.Release, error) {
	return queryReleases(db, selectRelease+" WHERE name = ? ORDER BY id", name)
}

// ReleasesForArtist returns the releases of one artist
func ReleasesForArtist(db DB, artist string) ([]models.Release, error) {
	return queryReleases(db, selectRelease+" WHERE artistname = ? ORDER BY id", artist)
}

// AllReleases returns every release
func AllReleases(db DB) ([]models.Release, error) {
	return queryReleases(db, selectRelease+" ORDER BY id")
}

func queryReleases(db DB, query string, args ...interface{}) ([]models.Release, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query releases: %w", err)
	}
	defer rows.Close()

	releases := []models.Release{}
	for rows.Next() {
		var r models.Release
		if err := rows.Scan(&r.ID, &r.Name, &r.Artist, &r.Year); err != nil {
			return nil, fmt.Errorf("failed to scan release: %w", err)
		}
		releases = append(releases, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return releases, nil
}
