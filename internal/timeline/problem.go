package timeline

import "time"

// Difficulty is the difficulty level of a daily problem.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// TestCasesPerProblem is the number of test cases every problem carries.
const TestCasesPerProblem = 6

// TestCase is a single test case embedded in a DailyProblem.
// IDs are 1-based and contiguous within a problem.
type TestCase struct {
	ID       int    `json:"id"`
	Type     string `json:"type"` // basic, edge, logic, conciseness
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hint     string `json:"hint"`
}

// DailyProblem is one coding problem scheduled on a calendar date.
// The date key (YYYY-MM-DD) uniquely identifies it.
//
// JSON keys are camelCase to match the game client schema. The embedding
// vector is internal and never serialized.
type DailyProblem struct {
	Date        string     `json:"date"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	StarterCode string     `json:"starterCode"`
	TestCases   []TestCase `json:"testCases"`
	Topics      []string   `json:"topics"`
	Embedding   []float64  `json:"-"`
}

// WeeklyTheme records the theme chosen for one generation batch.
// The "weekly" name is historical; a batch may span any range of dates.
type WeeklyTheme struct {
	ID          string    `json:"id"`
	Theme       string    `json:"theme"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Count       int       `json:"count"`
	WeekID      string    `json:"week_id,omitempty"` // legacy ISO week key, e.g. "2026-W07"
	GeneratedAt time.Time `json:"generated_at"`
}
