package repository

import (
	"fmt"
	"time"
)

// timeLayout keeps the zone offset so start dates round-trip exactly.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
