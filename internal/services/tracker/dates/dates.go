// Package dates parses and formats the calendar dates used by projects and tasks.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = time.DateOnly

// Parse returns nil for a blank value and a UTC midnight date otherwise.
func Parse(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return &value, nil
}

// Format renders value in Layout, or "" when nil.
func Format(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(Layout)
}

// Before reports whether a falls before b when both are set.
func Before(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Before(*b)
}
