package store

import (
	"context"
	"time"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// TimelineRepo is the date-keyed view of the problem timeline.
type TimelineRepo interface {
	// Get returns the problem on the given date, or nil if none exists.
	Get(ctx context.Context, date string) (*timeline.DailyProblem, error)

	// OccupiedDates returns every scheduled date in ascending order.
	OccupiedDates(ctx context.Context) ([]string, error)

	// Titles returns every problem title, unfiltered by date. This is the
	// blocklist fed back to the model so it never regenerates known content.
	Titles(ctx context.Context) ([]string, error)

	// ProblemsInRange returns problems with from <= date <= to, ascending.
	ProblemsInRange(ctx context.Context, from, to string) ([]*timeline.DailyProblem, error)

	// PutBatch inserts a batch of problems and its theme record in a single
	// transaction. Either everything lands or nothing does.
	PutBatch(ctx context.Context, problems []*timeline.DailyProblem, theme *timeline.WeeklyTheme) error

	// Update replaces the stored fields of an existing problem in place.
	Update(ctx context.Context, p *timeline.DailyProblem) error

	// Move re-keys a problem to a new date atomically, preserving all
	// other fields.
	Move(ctx context.Context, from, to string) error

	// Delete removes the problem on the given date.
	Delete(ctx context.Context, date string) error
}

// ThemeRepo manages the theme records written alongside each batch.
type ThemeRepo interface {
	// RecentThemes returns up to limit theme names, most recent first.
	RecentThemes(ctx context.Context, limit int) ([]string, error)

	// ThemesThrough returns theme records with start_date <= date,
	// newest first. Used by the public API to avoid leaking future themes.
	ThemesThrough(ctx context.Context, date string) ([]*timeline.WeeklyTheme, error)

	// Rename changes a theme record's name in place.
	Rename(ctx context.Context, id, name string) error
}

// LLMRequestEventData captures one LLM API call for the event log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored event row.
type LLMRequestEvent struct {
	ID        int64
	CreatedAt time.Time
	LLMRequestEventData
}

// EventRepo provides access to operational events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]*LLMRequestEvent, error)
}
