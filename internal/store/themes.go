package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// ErrThemeNotFound is returned by Rename when no theme has the given id.
var ErrThemeNotFound = errors.New("theme not found")

// themeRepo implements ThemeRepo over the weekly_themes table.
type themeRepo struct {
	db *sql.DB
}

func (r *themeRepo) RecentThemes(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT theme FROM weekly_themes ORDER BY generated_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("recent themes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *themeRepo) ThemesThrough(ctx context.Context, date string) ([]*timeline.WeeklyTheme, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, theme, start_date, end_date, count, week_id, generated_at
		 FROM weekly_themes
		 WHERE start_date <= ?
		 ORDER BY start_date DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("themes through %s: %w", date, err)
	}
	defer rows.Close()

	var out []*timeline.WeeklyTheme
	for rows.Next() {
		var t timeline.WeeklyTheme
		var weekID sql.NullString
		err := rows.Scan(&t.ID, &t.Theme, &t.StartDate, &t.EndDate,
			&t.Count, &weekID, &t.GeneratedAt)
		if err != nil {
			return nil, err
		}
		t.WeekID = weekID.String
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *themeRepo) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE weekly_themes SET theme = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("rename theme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("theme %s: %w", id, ErrThemeNotFound)
	}
	return nil
}
