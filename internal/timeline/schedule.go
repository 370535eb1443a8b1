package timeline

import "time"

// NextOpenDate returns the day after the latest occupied date.
// Generation always appends after the last scheduled problem rather than
// scanning from today, so a late run never drifts the difficulty cycle.
// When the timeline is empty the fallback date is returned.
func NextOpenDate(occupied []string, fallback time.Time) string {
	latest := ""
	for _, d := range occupied {
		if d > latest {
			latest = d
		}
	}
	if latest == "" {
		return FormatDate(fallback)
	}
	return AddDays(latest, 1)
}

// ValidateMove checks a re-key of a problem from one date to another.
// Moving a problem onto its own date is a no-op success. The occupied
// func reports whether a date already holds a problem.
func ValidateMove(from, to string, occupied func(string) bool) error {
	if !occupied(from) {
		return &ErrNotFound{Date: from}
	}
	if to != from && occupied(to) {
		return &ErrDateConflict{Date: to}
	}
	return nil
}
