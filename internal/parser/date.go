package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted ranges for user supplied dates
const (
	MinYear = 1970
	MaxYear = 3000
)

var (
	ErrDateFormat = errors.New("invalid date format, should be like 2025-01-12")
	ErrYearRange  = errors.New("the year is an unrealistic value")
	ErrMonthRange = errors.New("the month doesn't exist")
	ErrDayRange   = errors.New("the day doesn't exist")
)

// DateInput is a calendar date typed in by the user
// Day is only checked against 1-31; month length is checked by At
type DateInput struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a YYYY-M-D string such as 2025-01-12 or 2026-1-31
func ParseDate(input string) (DateInput, error) {
	parts := strings.Split(input, "-")
	if len(parts) != 3 {
		return DateInput{}, ErrDateFormat
	}

	year, err := parseComponent(parts[0], MinYear, MaxYear)
	if err != nil {
		return DateInput{}, ErrYearRange
	}
	month, err := parseComponent(parts[1], 1, 12)
	if err != nil {
		return DateInput{}, ErrMonthRange
	}
	day, err := parseComponent(parts[2], 1, 31)
	if err != nil {
		return DateInput{}, ErrDayRange
	}

	return DateInput{Year: year, Month: month, Day: day}, nil
}

func parseComponent(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, min, max)
	}
	return n, nil
}

// String formats the date zero-padded
func (d DateInput) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Offset changes a local time can repeat across
var clockShifts = []time.Duration{30 * time.Minute, time.Hour, 2 * time.Hour}

// At combines the date with the wall-clock time of now, in now's location
// It fails when the result is not exactly one local time: dates like
// February 30, clock times skipped by a DST change, and clock times that
// happen twice when the clocks go back
func (d DateInput) At(now time.Time) (time.Time, error) {
	h, m, s := now.Clock()
	t := time.Date(d.Year, time.Month(d.Month), d.Day, h, m, s, 0, now.Location())

	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return time.Time{}, fmt.Errorf("%s is not a valid calendar date", d)
	}
	if !d.sameWallClock(t, h, m, s) {
		return time.Time{}, fmt.Errorf("%s %02d:%02d:%02d is not a valid local time", d, h, m, s)
	}

	// An earlier or later instant showing the same clock means the time is ambiguous
	for _, shift := range clockShifts {
		if d.sameWallClock(t.Add(-shift), h, m, s) || d.sameWallClock(t.Add(shift), h, m, s) {
			return time.Time{}, fmt.Errorf("%s %02d:%02d:%02d is ambiguous in %s", d, h, m, s, now.Location())
		}
	}
	return t, nil
}

func (d DateInput) sameWallClock(t time.Time, h, m, s int) bool {
	th, tm, ts := t.Clock()
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day &&
		th == h && tm == m && ts == s
}

// ResolveDate returns the moment a listen is recorded at
// A nil date means now; otherwise the date is combined with now's clock
func ResolveDate(date *DateInput, now time.Time) (time.Time, error) {
	if date == nil {
		return now, nil
	}
	return date.At(now)
}
