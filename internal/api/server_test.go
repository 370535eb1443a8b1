package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/WatsonMLDev/codele-backend/internal/contentgen"
	"github.com/WatsonMLDev/codele-backend/internal/llm"
	"github.com/WatsonMLDev/codele-backend/internal/store"
	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// testClock is the fixed "now" for every test server: 2026-02-10 UTC.
var testClock = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	handler  http.Handler
	problems store.TimelineRepo
	themes   store.ThemeRepo
	mock     *llm.MockProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "codele.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider()
	engine := contentgen.New(mock, s.TimelineRepo(), s.ThemeRepo(), contentgen.DefaultConfig())

	srv := NewServer(s.TimelineRepo(), s.ThemeRepo(), engine)
	srv.now = func() time.Time { return testClock }
	// High ceiling so rate limiting only matters in its own tests.
	srv.limiter = NewRateLimiter(1000, time.Minute)

	return &testServer{
		Server:   srv,
		handler:  srv.Router(),
		problems: s.TimelineRepo(),
		themes:   s.ThemeRepo(),
		mock:     mock,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
}

func putProblem(t *testing.T, repo store.TimelineRepo, date, title string) {
	t.Helper()
	p := &timeline.DailyProblem{
		Date:        date,
		Title:       title,
		Difficulty:  timeline.Medium,
		Description: "Do the thing.",
		StarterCode: "function solve(x) {\n  \n}",
		TestCases: []timeline.TestCase{
			{ID: 1, Type: "basic", Input: "1", Expected: "2", Hint: "add one"},
		},
		Topics: []string{"math"},
	}
	if err := repo.PutBatch(context.Background(), []*timeline.DailyProblem{p}, nil); err != nil {
		t.Fatalf("put problem %s: %v", date, err)
	}
}

func putTheme(t *testing.T, repo store.TimelineRepo, id, name, start, end string) {
	t.Helper()
	err := repo.PutBatch(context.Background(), nil, &timeline.WeeklyTheme{
		ID:          id,
		Theme:       name,
		StartDate:   start,
		EndDate:     end,
		Count:       1,
		GeneratedAt: testClock,
	})
	if err != nil {
		t.Fatalf("put theme %s: %v", name, err)
	}
}
