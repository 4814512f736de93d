package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestParseListensCSV tests the main CSV parsing functionality
func TestParseListensCSV(t *testing.T) {
	tests := []struct {
		name        string
		csvContent  string
		wantListens int
		wantErr     bool
	}{
		{
			name: "header and RFC 3339 dates",
			csvContent: `date,artist,release,year
2025-01-12T20:15:00+01:00,Boards of Canada,Geogaddi,2002
2025-01-13T08:00:00Z,Aphex Twin,Drukqs,2001`,
			wantListens: 2,
		},
		{
			name: "no header with calendar dates",
			csvContent: `2025-01-12,Boards of Canada,Geogaddi,2002
2025-01-14,Boards of Canada,Geogaddi,2002`,
			wantListens: 2,
		},
		{
			name: "UNIX timestamps in seconds and milliseconds",
			csvContent: `date,artist,release,year
1736700000,Boards of Canada,Geogaddi,2002
1736700000000,Boards of Canada,Geogaddi,2002`,
			wantListens: 2,
		},
		{
			name: "quoted fields with commas",
			csvContent: `date,artist,release,year
2025-01-12,"Crosby, Stills & Nash","Crosby, Stills & Nash",1969`,
			wantListens: 1,
		},
		{
			name:       "empty file",
			csvContent: ``,
			wantErr:    true,
		},
		{
			name:       "header only",
			csvContent: "date,artist,release,year\n",
			wantErr:    true,
		},
		{
			name: "wrong field count",
			csvContent: `date,artist,release,year
2025-01-12,Boards of Canada,Geogaddi`,
			wantErr: true,
		},
		{
			name: "empty artist",
			csvContent: `date,artist,release,year
2025-01-12,,Geogaddi,2002`,
			wantErr: true,
		},
		{
			name: "negative year",
			csvContent: `date,artist,release,year
2025-01-12,Boards of Canada,Geogaddi,-2002`,
			wantErr: true,
		},
		{
			name: "unrecognized date",
			csvContent: `date,artist,release,year
12/01/2025,Boards of Canada,Geogaddi,2002`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempCSVFile(t, tt.csvContent)

			listens, err := ParseListensCSV(tmpFile)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseListensCSV() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if len(listens) != tt.wantListens {
				t.Errorf("ParseListensCSV() returned %d listens, want %d", len(listens), tt.wantListens)
			}
		})
	}
}

// TestParseListensFields tests that every column lands in the right field
func TestParseListensFields(t *testing.T) {
	listens, err := ParseListens(strings.NewReader(
		"2025-01-12T20:15:00+01:00, Boards of Canada , Geogaddi ,2002\n"))
	if err != nil {
		t.Fatalf("ParseListens() error = %v", err)
	}

	got := listens[0]
	if got.Artist != "Boards of Canada" {
		t.Errorf("Expected artist 'Boards of Canada', got %q", got.Artist)
	}
	if got.Release != "Geogaddi" {
		t.Errorf("Expected release 'Geogaddi', got %q", got.Release)
	}
	if got.Year != 2002 {
		t.Errorf("Expected year 2002, got %d", got.Year)
	}
	want := time.Date(2025, time.January, 12, 19, 15, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("Expected date %v, got %v", want, got.Date)
	}
}

// TestParseListensMissingFile tests opening a file that is not there
func TestParseListensMissingFile(t *testing.T) {
	_, err := ParseListensCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil || !strings.Contains(err.Error(), "failed to open CSV file") {
		t.Errorf("Expected open error, got %v", err)
	}
}

// TestParseTimestamp tests timestamp parsing functionality
func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantErr   bool
	}{
		{
			name:      "valid UNIX timestamp (seconds)",
			timestamp: "1587504638",
		},
		{
			name:      "valid UNIX timestamp (milliseconds)",
			timestamp: "1587504638123",
		},
		{
			name:      "RFC 3339",
			timestamp: "2020-04-12T22:10:38+02:00",
		},
		{
			name:      "calendar date",
			timestamp: "2020-04-12",
		},
		{
			name:      "space separated date and time",
			timestamp: "2020-04-12 22:10:38",
			wantErr:   true,
		},
		{
			name:      "empty",
			timestamp: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTimestamp(tt.timestamp)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseTimestamp() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestIsHeaderRow tests header detection
func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		record   []string
		expected bool
	}{
		{[]string{"date", "artist", "release", "year"}, true},
		{[]string{"Date", "Artist", "Release", "Year"}, true},
		{[]string{"2025-01-12", "artist", "release", "year"}, false},
		{[]string{"date", "artist"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("record_%s", strings.Join(tt.record, "_")), func(t *testing.T) {
			if got := isHeaderRow(tt.record); got != tt.expected {
				t.Errorf("isHeaderRow(%q) = %v, want %v", tt.record, got, tt.expected)
			}
		})
	}
}

// Helper function to create a temporary CSV file for testing
func createTempCSVFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "listens.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Benchmark test
func BenchmarkParseListens(b *testing.B) {
	csvContent := `date,artist,release,year
2025-01-12T20:15:00+01:00,Boards of Canada,Geogaddi,2002
2025-01-13T08:00:00Z,Aphex Twin,Drukqs,2001
1736700000,Autechre,Confield,2001`

	for i := 0; i < b.N; i++ {
		if _, err := ParseListens(strings.NewReader(csvContent)); err != nil {
			b.Fatal(err)
		}
	}
}

// Example function
func ExampleParseListens() {
	csvContent := `date,artist,release,year
2025-01-12T20:15:00Z,Boards of Canada,Geogaddi,2002`

	listens, err := ParseListens(strings.NewReader(csvContent))
	if err != nil {
		panic(err)
	}

	fmt.Printf("Parsed %d listens\n", len(listens))
	fmt.Printf("Artist: %s\n", listens[0].Artist)
	fmt.Printf("Release: %s (%d)\n", listens[0].Release, listens[0].Year)

	// Output:
	// Parsed 1 listens
	// Artist: Boards of Canada
	// Release: Geogaddi (2002)
}
