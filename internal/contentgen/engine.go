package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WatsonMLDev/codele-backend/internal/llm"
	"github.com/WatsonMLDev/codele-backend/internal/store"
	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// Engine orchestrates model-driven problem generation: it resolves the
// start date and theme, generates a batch, assigns dates and difficulties,
// and persists everything in one transaction.
type Engine struct {
	provider llm.Provider
	problems store.TimelineRepo
	themes   store.ThemeRepo
	cfg      Config

	now func() time.Time
}

// New creates an Engine.
func New(provider llm.Provider, problems store.TimelineRepo, themes store.ThemeRepo, cfg Config) *Engine {
	return &Engine{
		provider: provider,
		problems: problems,
		themes:   themes,
		cfg:      cfg,
		now:      time.Now,
	}
}

// PlanAndRun executes the requested batches strictly in order, one at a
// time. Each result lands at the same index as its request. A failed
// batch never stops the run, and only themes from persisted batches feed
// the avoidance list of later ones.
func (e *Engine) PlanAndRun(ctx context.Context, reqs []BatchRequest) []BatchResult {
	results := make([]BatchResult, 0, len(reqs))
	var sessionThemes []string

	for i, req := range reqs {
		res := e.runBatch(ctx, req, sessionThemes)
		res.Batch = i + 1
		if res.Err != nil {
			res.Error = res.Err.Error()
		} else {
			sessionThemes = append(sessionThemes, res.Theme)
		}
		results = append(results, res)
	}

	return results
}

// Run executes a single batch with no session history.
func (e *Engine) Run(ctx context.Context, req BatchRequest) BatchResult {
	res := e.runBatch(ctx, req, nil)
	res.Batch = 1
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	return res
}

func (e *Engine) runBatch(ctx context.Context, req BatchRequest, sessionThemes []string) BatchResult {
	if req.Count < 1 {
		return BatchResult{Err: fmt.Errorf("batch count must be at least 1, got %d", req.Count)}
	}

	occupied, err := e.problems.OccupiedDates(ctx)
	if err != nil {
		return BatchResult{Err: fmt.Errorf("load occupied dates: %w", err)}
	}

	start := req.StartDate
	if start == "" {
		start = timeline.NextOpenDate(occupied, e.now().UTC())
	} else {
		if _, err := timeline.ParseDate(start); err != nil {
			return BatchResult{Err: err}
		}
	}
	end := timeline.AddDays(start, req.Count-1)

	// Every target date must be free before any tokens are spent.
	taken := make(map[string]bool, len(occupied))
	for _, d := range occupied {
		taken[d] = true
	}
	for i := 0; i < req.Count; i++ {
		if d := timeline.AddDays(start, i); taken[d] {
			return BatchResult{StartDate: start, EndDate: end, Err: &timeline.ErrDateConflict{Date: d}}
		}
	}

	theme, err := e.resolveTheme(ctx, req.Theme, sessionThemes)
	if err != nil {
		return BatchResult{StartDate: start, EndDate: end, Err: err}
	}

	res := BatchResult{Theme: theme, StartDate: start, EndDate: end}

	drafts, err := e.generate(ctx, theme, req.Count)
	if err != nil {
		res.Err = err
		return res
	}

	problems := make([]*timeline.DailyProblem, len(drafts))
	for i, d := range drafts {
		problems[i] = buildProblem(d, timeline.AddDays(start, i), timeline.DifficultyFor(i))
	}

	record := &timeline.WeeklyTheme{
		ID:          uuid.New().String(),
		Theme:       theme,
		StartDate:   start,
		EndDate:     end,
		Count:       len(problems),
		WeekID:      timeline.WeekID(start),
		GeneratedAt: e.now().UTC(),
	}

	if err := e.problems.PutBatch(ctx, problems, record); err != nil {
		// A date claimed while generation was in flight is a clean
		// rejection, not a failed write.
		var conflict *timeline.ErrDateConflict
		if errors.As(err, &conflict) {
			res.Err = conflict
			return res
		}
		res.Err = &PersistenceError{Err: err}
		return res
	}

	res.ProblemsCreated = len(problems)
	return res
}

// generate calls the model and enforces the batch shape: exactly count
// problems, each with exactly six test cases. A malformed batch is
// rejected whole; nothing is padded or truncated.
func (e *Engine) generate(ctx context.Context, theme string, count int) ([]problemDraft, error) {
	existingTitles, err := e.problems.Titles(ctx)
	if err != nil {
		return nil, &GenerationError{Stage: "batch-gen", Err: err}
	}

	ctx = llm.WithPurpose(ctx, "batch-gen")

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: batchSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildBatchMessage(theme, count, existingTitles)},
		},
		Schema:      BatchSchema,
		MaxTokens:   e.cfg.BatchMaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Stage: "batch-gen", Err: err}
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &GenerationError{Stage: "batch-gen", Err: err}
	}

	if len(out.Problems) != count {
		return nil, &ShapeMismatchError{
			Detail: fmt.Sprintf("asked for %d problems, got %d", count, len(out.Problems)),
		}
	}
	for i, p := range out.Problems {
		if len(p.TestCases) != timeline.TestCasesPerProblem {
			return nil, &ShapeMismatchError{
				Detail: fmt.Sprintf("problem %d (%q) has %d test cases, want %d",
					i+1, p.Title, len(p.TestCases), timeline.TestCasesPerProblem),
			}
		}
	}

	return out.Problems, nil
}

// buildProblem assigns the calendar slot to a draft. Test case IDs are
// renumbered 1..6 regardless of anything the model emitted.
func buildProblem(d problemDraft, date string, difficulty timeline.Difficulty) *timeline.DailyProblem {
	cases := make([]timeline.TestCase, len(d.TestCases))
	for i, tc := range d.TestCases {
		cases[i] = timeline.TestCase{
			ID:       i + 1,
			Type:     strings.ToLower(tc.Type),
			Input:    tc.Input,
			Expected: tc.Expected,
			Hint:     tc.Hint,
		}
	}

	return &timeline.DailyProblem{
		Date:        date,
		Title:       d.Title,
		Difficulty:  difficulty,
		Description: d.Description,
		StarterCode: d.StarterCode,
		TestCases:   cases,
		Topics:      d.Topics,
	}
}
