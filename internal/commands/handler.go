// Package commands implements the CLI commands for the music log
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"music-log/internal/database"
	"music-log/internal/models"
	"music-log/internal/parser"
)

var (
	// ErrNoSuchRelease is returned when a log names a release nobody registered
	ErrNoSuchRelease = errors.New("no such release")

	// ErrInvalidChoice is returned for a bad answer to the release picker
	ErrInvalidChoice = errors.New("invalid choice")
)

// Handler runs one command against an open database
// Listings go to out as indented JSON; prompts go through the Prompter
type Handler struct {
	db       database.DB
	prompter Prompter
	out      io.Writer
	now      func() time.Time
	logger   *slog.Logger
}

// NewHandler creates a handler writing results to out
func NewHandler(db database.DB, prompter Prompter, out io.Writer) *Handler {
	return &Handler{
		db:       db,
		prompter: prompter,
		out:      out,
		now:      time.Now,
		logger:   slog.Default(),
	}
}

// AddArtist registers an artist
func (h *Handler) AddArtist(name string) error {
	return database.AddArtist(h.db, models.Artist{Name: name})
}

// ListArtists prints all artists
func (h *Handler) ListArtists() error {
	artists, err := database.ListArtists(h.db)
	if err != nil {
		return err
	}
	return h.print(artists)
}

// AddRelease registers a release for an existing artist
func (h *Handler) AddRelease(artist, name string, year uint) error {
	return database.AddRelease(h.db, models.Release{Name: name, Artist: artist, Year: year})
}

// ListReleases prints the releases of artist, or all releases when artist is empty
func (h *Handler) ListReleases(artist string) error {
	var releases []models.Release
	var err error
	if artist != "" {
		releases, err = database.ReleasesForArtist(h.db, artist)
	} else {
		releases, err = database.AllReleases(h.db)
	}
	if err != nil {
		return err
	}
	return h.print(releases)
}

// AddLog records a listen of the named release
// A nil date logs the current moment. When several releases share the name
// the user picks one
func (h *Handler) AddLog(releaseName string, date *parser.DateInput) error {
	// Resolve the moment before looking anything up
	at, err := parser.ResolveDate(date, h.now())
	if err != nil {
		return err
	}

	releases, err := database.GetRelease(h.db, releaseName)
	if err != nil {
		return err
	}

	// Several releases can share a name
	var release models.Release
	switch len(releases) {
	case 0:
		return fmt.Errorf("%w: %q", ErrNoSuchRelease, releaseName)
	case 1:
		release = releases[0]
	default:
		release, err = h.pickRelease(releases)
		if err != nil {
			return err
		}
	}

	h.logger.Debug("logging listen", "release", release.Name, "artist", release.Artist, "release_id", release.ID, "date", database.FormatDate(at))
	return database.AddLog(h.db, release.ID, at)
}

// pickRelease asks which of several same-named releases is meant
func (h *Handler) pickRelease(releases []models.Release) (models.Release, error) {
	var b strings.Builder
	for i, release := range releases {
		fmt.Fprintf(&b, "%d. %s\n", i+1, release.Artist)
	}
	b.WriteString("Pick a release by the number: ")

	answer, err := h.prompter.Prompt(b.String())
	if err != nil {
		return models.Release{}, err
	}

	answer = strings.TrimSpace(answer)
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return models.Release{}, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, answer)
	}
	if choice < 1 || choice > len(releases) {
		return models.Release{}, fmt.Errorf("%w: pick a number between 1 and %d", ErrInvalidChoice, len(releases))
	}

	return releases[choice-1], nil
}

// ListLog prints all logs, oldest first
func (h *Handler) ListLog() error {
	logs, err := database.ListLog(h.db)
	if err != nil {
		return err
	}
	return h.print(logs)
}

// DeleteLog removes a log after the user confirms
// A missing log and a declined confirmation both succeed without deleting
func (h *Handler) DeleteLog(id int64) error {
	log, err := database.GetLog(h.db, id)
	if err != nil {
		return err
	}
	if log == nil {
		fmt.Fprintln(h.out, "No log found")
		return nil
	}

	// Show the log and ask for confirmation
	pretty, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}

	answer, err := h.prompter.Prompt(fmt.Sprintf("Really delete log?\n%s\n[y/n]: ", pretty))
	if err != nil {
		return err
	}
	// Only an explicit y deletes
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(h.out, "OK, aborting delete")
		return nil
	}

	if err := database.DeleteLog(h.db, id); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Deleted log")
	return nil
}

// ImportLogs loads a CSV listening history
func (h *Handler) ImportLogs(csvFile string) error {
	listens, err := parser.ParseListensCSV(csvFile)
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %w", err)
	}
	h.logger.Debug("parsed listens", "file", csvFile, "count", len(listens))

	count, err := database.ImportListens(h.db, listens)
	if err != nil {
		return fmt.Errorf("failed to import listens: %w", err)
	}

	fmt.Fprintf(h.out, "Imported %d logs\n", count)
	return nil
}

// Query runs a read-only SQL statement and prints the rows
func (h *Handler) Query(query string) error {
	if err := ValidateReadOnlyQuery(query); err != nil {
		return fmt.Errorf("query validation failed: %w", err)
	}

	results, err := database.ExecuteQuery(h.db, query)
	if err != nil {
		return err
	}
	return h.print(results)
}

func (h *Handler) print(value interface{}) error {
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(h.out, string(pretty))
	return err
}
