package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

func TestPutBatchAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	problems := []*timeline.DailyProblem{
		testProblem("2026-02-11", "Two Sum Redux"),
		testProblem("2026-02-12", "Valid Parentheses II"),
	}
	theme := testTheme("Stacks", "2026-02-11", "2026-02-12", 2)

	require.NoError(t, repo.PutBatch(ctx, problems, theme))

	got, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Two Sum Redux", got.Title)
	require.Len(t, got.TestCases, timeline.TestCasesPerProblem)
	require.Equal(t, []string{"Math"}, got.Topics)

	missing, err := repo.Get(ctx, "2026-02-13")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPutBatchRollsBackOnConflict(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	require.NoError(t, repo.PutBatch(ctx,
		[]*timeline.DailyProblem{testProblem("2026-02-12", "Existing")},
		testTheme("Old", "2026-02-12", "2026-02-12", 1)))

	// Second batch collides on 2026-02-12; nothing from it may land, and
	// the collision reports as a date conflict rather than a driver error.
	err := repo.PutBatch(ctx, []*timeline.DailyProblem{
		testProblem("2026-02-11", "New A"),
		testProblem("2026-02-12", "New B"),
	}, testTheme("New", "2026-02-11", "2026-02-12", 2))
	var conflict *timeline.ErrDateConflict
	require.True(t, errors.As(err, &conflict), "expected ErrDateConflict, got %v", err)
	require.Equal(t, "2026-02-12", conflict.Date)

	got, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.Nil(t, got, "partial insert must be rolled back")

	themes, err := s.ThemeRepo().RecentThemes(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Old"}, themes)
}

func TestOccupiedDatesAndTitles(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	require.NoError(t, repo.PutBatch(ctx, []*timeline.DailyProblem{
		testProblem("2026-02-12", "B"),
		testProblem("2026-02-10", "A"),
		testProblem("2026-02-14", "C"),
	}, nil))

	dates, err := repo.OccupiedDates(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-02-10", "2026-02-12", "2026-02-14"}, dates)

	titles, err := repo.Titles(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "B", "C"}, titles)
}

func TestMove(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	orig := testProblem("2026-02-11", "Movable")
	orig.Topics = []string{"Graphs", "BFS"}
	require.NoError(t, repo.PutBatch(ctx, []*timeline.DailyProblem{orig}, nil))

	require.NoError(t, repo.Move(ctx, "2026-02-11", "2026-02-20"))

	gone, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.Nil(t, gone)

	moved, err := repo.Get(ctx, "2026-02-20")
	require.NoError(t, err)
	require.NotNil(t, moved)
	require.Equal(t, "Movable", moved.Title)
	require.Equal(t, []string{"Graphs", "BFS"}, moved.Topics)
	require.Len(t, moved.TestCases, timeline.TestCasesPerProblem)
}

func TestMoveConflictAndNotFound(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	require.NoError(t, repo.PutBatch(ctx, []*timeline.DailyProblem{
		testProblem("2026-02-11", "A"),
		testProblem("2026-02-12", "B"),
	}, nil))

	var conflict *timeline.ErrDateConflict
	err := repo.Move(ctx, "2026-02-11", "2026-02-12")
	require.True(t, errors.As(err, &conflict), "expected ErrDateConflict, got %v", err)

	var notFound *timeline.ErrNotFound
	err = repo.Move(ctx, "2026-02-01", "2026-02-20")
	require.True(t, errors.As(err, &notFound), "expected ErrNotFound, got %v", err)

	// Moving onto the same date is a no-op success.
	require.NoError(t, repo.Move(ctx, "2026-02-11", "2026-02-11"))
	p, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestUpdateAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	require.NoError(t, repo.PutBatch(ctx,
		[]*timeline.DailyProblem{testProblem("2026-02-11", "Before")}, nil))

	p, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	p.Title = "After"
	p.Difficulty = timeline.Hard
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.Equal(t, "After", got.Title)
	require.Equal(t, timeline.Hard, got.Difficulty)

	var notFound *timeline.ErrNotFound
	err = repo.Update(ctx, testProblem("2026-02-28", "Ghost"))
	require.True(t, errors.As(err, &notFound))

	require.NoError(t, repo.Delete(ctx, "2026-02-11"))
	gone, err := repo.Get(ctx, "2026-02-11")
	require.NoError(t, err)
	require.Nil(t, gone)

	err = repo.Delete(ctx, "2026-02-11")
	require.True(t, errors.As(err, &notFound))
}

func TestProblemsInRange(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	ctx := context.Background()

	require.NoError(t, repo.PutBatch(ctx, []*timeline.DailyProblem{
		testProblem("2026-01-31", "Jan"),
		testProblem("2026-02-01", "FebA"),
		testProblem("2026-02-28", "FebB"),
		testProblem("2026-03-01", "Mar"),
	}, nil))

	got, err := repo.ProblemsInRange(ctx, "2026-02-01", "2026-02-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "FebA", got[0].Title)
	require.Equal(t, "FebB", got[1].Title)
}

func TestThemeRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.TimelineRepo()
	themes := s.ThemeRepo()
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Arrays", "Strings", "Graphs"} {
		start := timeline.AddDays("2026-02-01", i*7)
		end := timeline.AddDays(start, 6)
		th := testTheme(name, start, end, 7)
		th.GeneratedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.PutBatch(ctx, nil, th))
	}

	recent, err := themes.RecentThemes(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"Graphs", "Strings"}, recent)

	all, err := themes.ThemesThrough(ctx, "2026-02-08")
	require.NoError(t, err)
	require.Len(t, all, 2, "theme starting 2026-02-15 must not leak")
	require.Equal(t, "Strings", all[0].Theme)

	require.NoError(t, themes.Rename(ctx, all[0].ID, "Dynamic Programming"))
	renamed, err := themes.ThemesThrough(ctx, "2026-02-08")
	require.NoError(t, err)
	require.Equal(t, "Dynamic Programming", renamed[0].Theme)

	require.Error(t, themes.Rename(ctx, "missing-id", "X"))
}
