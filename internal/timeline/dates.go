package timeline

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date key format for the timeline.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date key.
func ParseDate(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", key)
	}
	return t, nil
}

// FormatDate renders a time as a date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns the date key n days after the given key.
// The key must be valid.
func AddDays(key string, n int) string {
	t, _ := time.Parse(DateLayout, key)
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// WeekID derives the legacy ISO week identifier (e.g. "2026-W07") from a
// date key. Older theme records were keyed this way; nothing in the
// scheduling logic reads it.
func WeekID(key string) string {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return ""
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
