// Package timeutil handles the date keys and time windows used across the
// journal: one entry per ISO calendar date, windows for filtering lists.
package timeutil

import (
	"fmt"
	"time"
)

// LayoutISO is the calendar date key format; it doubles as the entry id.
const LayoutISO = "2006-01-02"

// Today returns the date key for the current local day.
func Today() string {
	return time.Now().Format(LayoutISO)
}

// ParseKey resolves user input to a date key. Empty input and "today" map to
// the current day; "yesterday" and "tomorrow" are accepted shorthands;
// anything else must be an ISO calendar date.
func ParseKey(input string) (string, error) {
	switch input {
	case "", "today":
		return Today(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(LayoutISO), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format(LayoutISO), nil
	}
	t, err := time.Parse(LayoutISO, input)
	if err != nil {
		return "", fmt.Errorf("timeutil: %q is not a date (want %s): %w", input, LayoutISO, err)
	}
	return t.Format(LayoutISO), nil
}

// NowMillis returns the current time in epoch milliseconds, the resolution
// entries are stamped with.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FormatMillis renders an epoch-milliseconds stamp for terminal output.
func FormatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
