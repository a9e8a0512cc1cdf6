package domain

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the wire format for month keys: DD/MM/YYYY with the day
// fixed to 01. The string form is the join key between host-side month edits
// and engine lookups and must be preserved exactly.
const MonthKeyLayout = "02/01/2006"

// MonthKey identifies a calendar month. Always normalized to the first day
// of its month.
type MonthKey string

// NewMonthKey returns the month key for the month containing t.
func NewMonthKey(t time.Time) MonthKey {
	normalized := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey(normalized.Format(MonthKeyLayout))
}

// Time parses the month key back into the first instant of its month (UTC).
func (k MonthKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(MonthKeyLayout, string(k), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month key %q: %w", k, err)
	}
	if t.Day() != 1 {
		return time.Time{}, fmt.Errorf("month key %q not normalized to day 01", k)
	}
	return t, nil
}

// Valid reports whether k is a well-formed, day-01-normalized month key.
func (k MonthKey) Valid() bool {
	_, err := k.Time()
	return err == nil
}
