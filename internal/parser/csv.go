// Package parser turns user input into typed values: command line dates and
// CSV listening history exports
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"music-log/internal/models"
)

// ListenColumns is the expected column order of an import file
var ListenColumns = []string{"date", "artist", "release", "year"}

// ParseListensCSV reads a listening history file
// Expected CSV format: date, artist, release, year
// - date: RFC 3339 timestamp, YYYY-MM-DD or UNIX timestamp
// - artist: artist name
// - release: release name
// - year: release year, used when the release has to be registered
func ParseListensCSV(filePath string) ([]models.Listen, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ParseListens(file)
}

// ParseListens parses listens from any CSV stream
func ParseListens(r io.Reader) ([]models.Listen, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(ListenColumns)
	reader.TrimLeadingSpace = true

	var listens []models.Listen
	lineNumber := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNumber+1, err)
		}

		lineNumber++

		if lineNumber == 1 && isHeaderRow(record) {
			continue
		}

		listen, err := parseListen(record)
		if err != nil {
			return nil, fmt.Errorf("error parsing line %d: %w", lineNumber, err)
		}

		listens = append(listens, listen)
	}

	if len(listens) == 0 {
		return nil, fmt.Errorf("no listens found in CSV file")
	}

	return listens, nil
}

func parseListen(record []string) (models.Listen, error) {
	date, err := parseTimestamp(strings.TrimSpace(record[0]))
	if err != nil {
		return models.Listen{}, fmt.Errorf("invalid date '%s': %w", record[0], err)
	}

	artist := strings.TrimSpace(record[1])
	if artist == "" {
		return models.Listen{}, fmt.Errorf("artist cannot be empty")
	}

	release := strings.TrimSpace(record[2])
	if release == "" {
		return models.Listen{}, fmt.Errorf("release cannot be empty")
	}

	year, err := parseYear(strings.TrimSpace(record[3]))
	if err != nil {
		return models.Listen{}, fmt.Errorf("invalid year '%s': %w", record[3], err)
	}

	return models.Listen{
		Date:    date,
		Artist:  artist,
		Release: release,
		Year:    year,
	}, nil
}

// parseTimestamp accepts the formats listening exports commonly use
// Plain calendar dates are taken as local midnight
func parseTimestamp(s string) (time.Time, error) {
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Millisecond exports are larger than any second value before 2100
		if unix > 4102444800 {
			return time.Unix(unix/1000, (unix%1000)*int64(time.Millisecond)), nil
		}
		return time.Unix(unix, 0), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(models.DisplayDateLayout, s, time.Local); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("date format not recognized, expected RFC 3339, YYYY-MM-DD or UNIX timestamp")
}

func parseYear(s string) (uint, error) {
	year, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("year must be a valid non-negative integer: %w", err)
	}
	return uint(year), nil
}

// isHeaderRow reports whether the first record names the expected columns
func isHeaderRow(record []string) bool {
	for i, column := range ListenColumns {
		if i >= len(record) || !strings.EqualFold(strings.TrimSpace(record[i]), column) {
			return false
		}
	}
	return true
}
