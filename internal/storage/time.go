package storage

import (
	"fmt"
	"time"
)

// Timestamps are stored as RFC3339Nano strings so that sub-second ordering
// of rapid inserts survives the round trip through SQLite TEXT columns.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	// Rows written by external tooling may use SQLite's DATETIME format.
	t, err = time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
