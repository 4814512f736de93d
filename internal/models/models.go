// Package models defines the data structures used throughout the application
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DisplayDateLayout is the calendar date format used when logs are printed
const DisplayDateLayout = "2006-01-02"

// Artist is a registered artist, identified by its unique name
type Artist struct {
	Name string `db:"name" json:"name"`
}

// Release is a named work (usually an album) by a single artist
// ID is assigned by the database and never shown in listings
type Release struct {
	ID     int64  `db:"id" json:"-"`
	Name   string `db:"name" json:"name"`
	Artist string `db:"artistname" json:"artist"`
	Year   uint   `db:"year" json:"year"`
}

// String returns a human-readable representation of the release
func (r Release) String() string {
	return fmt.Sprintf("%s - %s (%d)", r.Artist, r.Name, r.Year)
}

// Log records that a release was listened to at a point in time
// Date holds the stored RFC 3339 timestamp; Release and Artist are joined in
type Log struct {
	Date    string `json:"date"`
	Release string `json:"release"`
	Artist  string `json:"artist"`
}

// MarshalJSON renders the stored timestamp as a calendar date
func (l Log) MarshalJSON() ([]byte, error) {
	date, err := DisplayDate(l.Date)
	if err != nil {
		return nil, err
	}

	type display struct {
		Date    string `json:"date"`
		Release string `json:"release"`
		Artist  string `json:"artist"`
	}
	return json.Marshal(display{Date: date, Release: l.Release, Artist: l.Artist})
}

// DisplayDate parses a stored RFC 3339 timestamp and returns its calendar date
// The date is taken in the timestamp's own offset, so the result never depends
// on the machine's current time zone
func DisplayDate(stored string) (string, error) {
	t, err := time.Parse(time.RFC3339, stored)
	if err != nil {
		return "", fmt.Errorf("malformed stored date %q: %w", stored, err)
	}
	return t.Format(DisplayDateLayout), nil
}

// Listen is one row of a listening history import
// Missing artists and releases are registered on the fly
type Listen struct {
	Date    time.Time
	Artist  string
	Release string
	Year    uint
}
