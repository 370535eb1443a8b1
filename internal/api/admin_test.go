package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/WatsonMLDev/codele-backend/internal/llm"
)

// batchJSON builds a structured batch response with the given titles,
// each problem carrying six test cases.
func batchJSON(t *testing.T, titles ...string) llm.MockResponse {
	t.Helper()
	problems := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		cases := make([]map[string]any, 6)
		for i := range cases {
			cases[i] = map[string]any{
				"type":     "basic",
				"input":    fmt.Sprintf("%d", i),
				"expected": fmt.Sprintf("%d", i+1),
				"hint":     "add one",
			}
		}
		problems = append(problems, map[string]any{
			"title":        title,
			"description":  "Add one to the input.",
			"starter_code": "function solve(n) {\n  \n}",
			"test_cases":   cases,
			"topics":       []string{"math"},
		})
	}
	raw, err := json.Marshal(map[string]any{"problems": problems})
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	return llm.MockResponse{Content: raw}
}

func TestGenerateBatches(t *testing.T) {
	ts := newTestServer(t)
	ts.mock.AddResponse(batchJSON(t, "Gen One", "Gen Two", "Gen Three"))

	w := ts.do(t, http.MethodPost, "/api/v1/admin/generate",
		`{"batches":[{"start_date":"2026-03-02","count":3,"theme":"Pi Day"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var got struct {
		Results []struct {
			Batch           int    `json:"batch"`
			Theme           string `json:"theme"`
			ProblemsCreated int    `json:"problems_created"`
			StartDate       string `json:"start_date"`
			EndDate         string `json:"end_date"`
			Error           string `json:"error"`
		} `json:"results"`
		TotalCreated int `json:"total_created"`
	}
	decodeBody(t, w, &got)

	if got.TotalCreated != 3 {
		t.Fatalf("total_created = %d", got.TotalCreated)
	}
	res := got.Results[0]
	if res.Theme != "Pi Day" || res.StartDate != "2026-03-02" || res.EndDate != "2026-03-04" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
}

func TestGenerateBatches_FailedBatchReportedInline(t *testing.T) {
	ts := newTestServer(t)
	// Model returns 2 problems for a 3-day batch, then a good second batch.
	ts.mock.AddResponse(batchJSON(t, "Short One", "Short Two"))
	ts.mock.AddResponse(batchJSON(t, "Good One"))

	w := ts.do(t, http.MethodPost, "/api/v1/admin/generate",
		`{"batches":[{"count":3,"theme":"Sorting"},{"count":1,"theme":"Hashing"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var got struct {
		Results []struct {
			Error           string `json:"error"`
			ProblemsCreated int    `json:"problems_created"`
		} `json:"results"`
		TotalCreated int `json:"total_created"`
	}
	decodeBody(t, w, &got)

	if got.Results[0].Error == "" {
		t.Fatal("first batch should report its error")
	}
	if got.Results[1].Error != "" || got.Results[1].ProblemsCreated != 1 {
		t.Fatalf("second batch should succeed: %+v", got.Results[1])
	}
	if got.TotalCreated != 1 {
		t.Fatalf("total_created = %d", got.TotalCreated)
	}
}

func TestGenerateBatches_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{`{"batches":[]}`, `generate please`} {
		w := ts.do(t, http.MethodPost, "/api/v1/admin/generate", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestGenerateBatches_InvalidEntriesFailInline(t *testing.T) {
	ts := newTestServer(t)
	ts.mock.AddResponse(batchJSON(t, "Still Runs"))

	w := ts.do(t, http.MethodPost, "/api/v1/admin/generate",
		`{"batches":[
			{"count":8,"theme":"Too Big"},
			{"start_date":"03-02-2026","count":1,"theme":"Bad Date"},
			{"count":1,"theme":"Valid"}
		]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var got struct {
		Results []struct {
			Batch           int    `json:"batch"`
			Error           string `json:"error"`
			ProblemsCreated int    `json:"problems_created"`
		} `json:"results"`
		TotalCreated int `json:"total_created"`
	}
	decodeBody(t, w, &got)

	if len(got.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got.Results))
	}
	if got.Results[0].Error == "" || got.Results[1].Error == "" {
		t.Fatalf("invalid entries should carry errors: %+v", got.Results)
	}
	if got.Results[2].Error != "" || got.Results[2].ProblemsCreated != 1 {
		t.Fatalf("valid entry should still run: %+v", got.Results[2])
	}
	for i, r := range got.Results {
		if r.Batch != i+1 {
			t.Fatalf("batch numbering must follow request order: %+v", got.Results)
		}
	}
	if got.TotalCreated != 1 {
		t.Fatalf("total_created = %d", got.TotalCreated)
	}
	// Only the valid batch reaches the model.
	if ts.mock.CallCount() != 1 {
		t.Fatalf("expected 1 model call, got %d", ts.mock.CallCount())
	}
}

func TestMoveProblem(t *testing.T) {
	ts := newTestServer(t)
	putProblem(t, ts.problems, "2026-02-05", "Mover")
	putProblem(t, ts.problems, "2026-02-06", "Blocker")

	w := ts.do(t, http.MethodPost, "/api/v1/admin/move",
		`{"from_date":"2026-02-05","to_date":"2026-02-06"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("occupied target: status = %d, want 409", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/v1/admin/move",
		`{"from_date":"2026-02-20","to_date":"2026-02-21"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing source: status = %d, want 404", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/v1/admin/move",
		`{"from_date":"2026-02-05","to_date":"2026-02-08"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid move: status = %d, body: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodGet, "/api/v1/problem/2026-02-08", "")
	if w.Code != http.StatusOK {
		t.Fatalf("moved problem not readable: %d", w.Code)
	}
	var got map[string]any
	decodeBody(t, w, &got)
	if got["title"] != "Mover" {
		t.Fatalf("title = %v", got["title"])
	}
}

func TestUpdateProblem(t *testing.T) {
	ts := newTestServer(t)
	putProblem(t, ts.problems, "2026-02-05", "Before Edit")

	body := `{
		"date": "2099-01-01",
		"title": "After Edit",
		"difficulty": "Hard",
		"description": "Edited.",
		"starterCode": "function solve() {}",
		"testCases": [
			{"id": 9, "type": "basic", "input": "1", "expected": "1", "hint": ""},
			{"id": 3, "type": "edge", "input": "", "expected": "0", "hint": ""}
		],
		"topics": ["edited"]
	}`
	w := ts.do(t, http.MethodPut, "/api/v1/admin/problem/2026-02-05", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var got struct {
		Date      string `json:"date"`
		Title     string `json:"title"`
		TestCases []struct {
			ID int `json:"id"`
		} `json:"testCases"`
	}
	decodeBody(t, w, &got)
	if got.Date != "2026-02-05" {
		t.Fatalf("URL date must win over body date, got %s", got.Date)
	}
	if got.Title != "After Edit" {
		t.Fatalf("title = %s", got.Title)
	}
	for i, tc := range got.TestCases {
		if tc.ID != i+1 {
			t.Fatalf("case %d: id = %d, want renumbered", i, tc.ID)
		}
	}

	w = ts.do(t, http.MethodPut, "/api/v1/admin/problem/2026-12-25", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("editing a missing date: status = %d, want 404", w.Code)
	}
}

func TestDeleteProblem(t *testing.T) {
	ts := newTestServer(t)
	putProblem(t, ts.problems, "2026-02-05", "Doomed")

	w := ts.do(t, http.MethodDelete, "/api/v1/admin/problem/2026-02-05", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	w = ts.do(t, http.MethodDelete, "/api/v1/admin/problem/2026-02-05", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
}

func TestRenameTheme(t *testing.T) {
	ts := newTestServer(t)
	putTheme(t, ts.problems, "theme-1", "Old Name", "2026-02-01", "2026-02-07")

	w := ts.do(t, http.MethodPost, "/api/v1/admin/theme/rename",
		`{"theme_id":"theme-1","new_theme":"New Name"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/api/v1/admin/theme/rename",
		`{"theme_id":"missing","new_theme":"X"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing theme: status = %d, want 404", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/api/v1/admin/theme/rename",
		`{"theme_id":"","new_theme":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty fields: status = %d, want 400", w.Code)
	}
}

func TestGetStatus(t *testing.T) {
	ts := newTestServer(t)
	putProblem(t, ts.problems, "2026-02-09", "Past")
	putProblem(t, ts.problems, "2026-02-11", "Banked One")
	putProblem(t, ts.problems, "2026-02-12", "Banked Two")
	putTheme(t, ts.problems, "t1", "Graphs", "2026-02-09", "2026-02-12")

	w := ts.do(t, http.MethodGet, "/api/v1/admin/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var got struct {
		Today         string   `json:"today"`
		BufferDays    int      `json:"buffer_days"`
		TotalProblems int      `json:"total_problems"`
		NextOpenDate  string   `json:"next_open_date"`
		RecentThemes  []string `json:"recent_themes"`
	}
	decodeBody(t, w, &got)

	if got.Today != "2026-02-10" {
		t.Fatalf("today = %s", got.Today)
	}
	if got.BufferDays != 2 || got.TotalProblems != 3 {
		t.Fatalf("buffer = %d, total = %d", got.BufferDays, got.TotalProblems)
	}
	if got.NextOpenDate != "2026-02-13" {
		t.Fatalf("next_open_date = %s", got.NextOpenDate)
	}
	if len(got.RecentThemes) != 1 || got.RecentThemes[0] != "Graphs" {
		t.Fatalf("recent_themes = %v", got.RecentThemes)
	}
}
