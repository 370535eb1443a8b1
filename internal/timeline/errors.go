package timeline

import "fmt"

// ErrDateConflict indicates a write targeted a date that already has a
// problem scheduled.
type ErrDateConflict struct {
	Date string
}

func (e *ErrDateConflict) Error() string {
	return fmt.Sprintf("date %s already has a problem", e.Date)
}

// ErrNotFound indicates an operation referenced a date with no problem.
type ErrNotFound struct {
	Date string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("no problem on %s", e.Date)
}
