package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// timelineRepo implements TimelineRepo over the daily_problems table.
type timelineRepo struct {
	db *sql.DB
}

const problemColumns = "date, title, difficulty, description, starter_code, test_cases, topics, embedding"

func (r *timelineRepo) Get(ctx context.Context, date string) (*timeline.DailyProblem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+problemColumns+" FROM daily_problems WHERE date = ?", date)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *timelineRepo) OccupiedDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT date FROM daily_problems ORDER BY date ASC")
	if err != nil {
		return nil, fmt.Errorf("scan occupied dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *timelineRepo) Titles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT title FROM daily_problems")
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *timelineRepo) ProblemsInRange(ctx context.Context, from, to string) ([]*timeline.DailyProblem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+problemColumns+" FROM daily_problems WHERE date >= ? AND date <= ? ORDER BY date ASC",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}
	defer rows.Close()

	var out []*timeline.DailyProblem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PutBatch writes the problems and the theme record in one transaction.
// Occupancy is re-checked against the same transaction so a date claimed
// after planning surfaces as a conflict, not as a failed write.
func (r *timelineRepo) PutBatch(ctx context.Context, problems []*timeline.DailyProblem, theme *timeline.WeeklyTheme) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	for _, p := range problems {
		var occupied int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM daily_problems WHERE date = ?", p.Date).Scan(&occupied); err != nil {
			return err
		}
		if occupied > 0 {
			return &timeline.ErrDateConflict{Date: p.Date}
		}
	}

	for _, p := range problems {
		if err := insertProblem(ctx, tx, p); err != nil {
			return err
		}
	}

	if theme != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO weekly_themes (id, theme, start_date, end_date, count, week_id, generated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			theme.ID, theme.Theme, theme.StartDate, theme.EndDate,
			theme.Count, theme.WeekID, theme.GeneratedAt)
		if err != nil {
			return fmt.Errorf("insert theme record: %w", err)
		}
	}

	return tx.Commit()
}

func (r *timelineRepo) Update(ctx context.Context, p *timeline.DailyProblem) error {
	cases, topics, embedding, err := marshalProblemFields(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE daily_problems
		 SET title = ?, difficulty = ?, description = ?, starter_code = ?,
		     test_cases = ?, topics = ?, embedding = ?
		 WHERE date = ?`,
		p.Title, p.Difficulty, p.Description, p.StarterCode,
		cases, topics, embedding, p.Date)
	if err != nil {
		return fmt.Errorf("update problem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &timeline.ErrNotFound{Date: p.Date}
	}
	return nil
}

// Move re-keys a problem inside a transaction. The occupancy check runs
// against the same transaction so a concurrent editor can't slip a problem
// onto the target date between check and write.
func (r *timelineRepo) Move(ctx context.Context, from, to string) error {
	if from == to {
		// Dropping a problem back on its own date is a no-op.
		return r.exists(ctx, from)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move: %w", err)
	}
	defer tx.Rollback()

	var occupied int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM daily_problems WHERE date = ?", to).Scan(&occupied); err != nil {
		return err
	}
	if occupied > 0 {
		return &timeline.ErrDateConflict{Date: to}
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE daily_problems SET date = ? WHERE date = ?", to, from)
	if err != nil {
		return fmt.Errorf("re-key problem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &timeline.ErrNotFound{Date: from}
	}

	return tx.Commit()
}

func (r *timelineRepo) Delete(ctx context.Context, date string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM daily_problems WHERE date = ?", date)
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &timeline.ErrNotFound{Date: date}
	}
	return nil
}

func (r *timelineRepo) exists(ctx context.Context, date string) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM daily_problems WHERE date = ?", date).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return &timeline.ErrNotFound{Date: date}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertProblem(ctx context.Context, ex execer, p *timeline.DailyProblem) error {
	cases, topics, embedding, err := marshalProblemFields(p)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO daily_problems (date, title, difficulty, description, starter_code, test_cases, topics, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Date, p.Title, p.Difficulty, p.Description, p.StarterCode,
		cases, topics, embedding)
	if err != nil {
		return fmt.Errorf("insert problem %s: %w", p.Date, err)
	}
	return nil
}

func marshalProblemFields(p *timeline.DailyProblem) (cases, topics string, embedding sql.NullString, err error) {
	cb, err := json.Marshal(p.TestCases)
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("marshal test cases: %w", err)
	}
	tb, err := json.Marshal(p.Topics)
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("marshal topics: %w", err)
	}
	if p.Embedding != nil {
		eb, err := json.Marshal(p.Embedding)
		if err != nil {
			return "", "", sql.NullString{}, fmt.Errorf("marshal embedding: %w", err)
		}
		embedding = sql.NullString{String: string(eb), Valid: true}
	}
	return string(cb), string(tb), embedding, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*timeline.DailyProblem, error) {
	var p timeline.DailyProblem
	var cases, topics string
	var embedding sql.NullString

	err := row.Scan(&p.Date, &p.Title, &p.Difficulty, &p.Description,
		&p.StarterCode, &cases, &topics, &embedding)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(cases), &p.TestCases); err != nil {
		return nil, fmt.Errorf("unmarshal test cases for %s: %w", p.Date, err)
	}
	if err := json.Unmarshal([]byte(topics), &p.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics for %s: %w", p.Date, err)
	}
	if embedding.Valid {
		if err := json.Unmarshal([]byte(embedding.String), &p.Embedding); err != nil {
			return nil, fmt.Errorf("unmarshal embedding for %s: %w", p.Date, err)
		}
	}
	return &p, nil
}
