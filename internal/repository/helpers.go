package repository

import (
	"database/sql"
	"time"
)

// timeLayout is the RFC3339 format for storing timestamps in SQLite
const timeLayout = time.RFC3339

// dateLayout is the format for day-granular columns (invoice/payment dates)
const dateLayout = "2006-01-02"

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseDate parses a day-granular column value
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nullableTime converts an optional time to a driver value
func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

// scanNullableTime converts an optional column back to a time pointer
func scanNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := parseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
