package contentgen

// BatchRequest describes one generation batch.
type BatchRequest struct {
	// StartDate is the first date to schedule (YYYY-MM-DD). Empty means
	// auto-detect: the day after the latest scheduled problem.
	StartDate string

	// Count is the number of consecutive days to generate.
	Count int

	// Theme forces a specific theme, used verbatim with no uniqueness
	// check. Empty means the model picks one, avoiding recent repeats.
	Theme string
}

// BatchResult summarizes the outcome of one batch. Batches are numbered
// from 1 in request order. A failed batch carries Err and nothing else
// beyond what was resolved before the failure.
type BatchResult struct {
	Batch           int    `json:"batch"`
	Theme           string `json:"theme,omitempty"`
	ProblemsCreated int    `json:"problems_created"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	Err             error  `json:"-"`
	Error           string `json:"error,omitempty"`
}

// DateRange renders the scheduled span, e.g. "2026-03-02 to 2026-03-08".
func (r BatchResult) DateRange() string {
	if r.StartDate == "" {
		return ""
	}
	return r.StartDate + " to " + r.EndDate
}

// testCaseDraft is one raw test case from the model, before IDs are
// assigned.
type testCaseDraft struct {
	Type     string `json:"type"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hint     string `json:"hint"`
}

// problemDraft is one raw problem from the model, before dates and
// difficulties are assigned.
type problemDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StarterCode string          `json:"starter_code"`
	TestCases   []testCaseDraft `json:"test_cases"`
	Topics      []string        `json:"topics"`
}

// batchOutput is the raw batch-generation response.
type batchOutput struct {
	Problems []problemDraft `json:"problems"`
}

// themeOutput is the raw theme-pick response.
type themeOutput struct {
	Theme string `json:"theme"`
}
