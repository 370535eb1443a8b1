package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WatsonMLDev/codele-backend/internal/contentgen"
	"github.com/WatsonMLDev/codele-backend/internal/store"
	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// MaxBatchDays caps a single generation batch. Larger plans are expressed
// as multiple batches; the engine itself accepts any positive count.
const MaxBatchDays = 7

// getStatus reports scheduling health for the admin dashboard: how many
// days of content are banked beyond today, where the next batch would
// land, and the latest themes.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	occupied, err := s.problems.OccupiedDates(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	today := s.today()
	buffer := 0
	for _, d := range occupied {
		if d > today {
			buffer++
		}
	}

	recent, err := s.themes.RecentThemes(r.Context(), 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recent == nil {
		recent = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"today":          today,
		"buffer_days":    buffer,
		"total_problems": len(occupied),
		"next_open_date": timeline.NextOpenDate(occupied, s.now().UTC()),
		"recent_themes":  recent,
	})
}

type batchDef struct {
	StartDate string `json:"start_date"`
	Count     int    `json:"count"`
	Theme     string `json:"theme"`
}

type generateRequest struct {
	Batches []batchDef `json:"batches"`
}

// generateBatches runs a generation plan. Batches execute strictly in
// order; each result reports success or the error that stopped it, and
// one failed batch never aborts the rest of the plan.
func (s *Server) generateBatches(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if len(req.Batches) == 0 {
		respondError(w, http.StatusBadRequest, "no batches provided")
		return
	}

	// An invalid entry fails inline without aborting the plan, the same
	// way a generation failure inside a batch does. Invalid batches are
	// skipped entirely, so they never consume a date slot or a theme.
	results := make([]contentgen.BatchResult, len(req.Batches))
	var reqs []contentgen.BatchRequest
	var valid []int

	for i, b := range req.Batches {
		count := b.Count
		if count == 0 {
			count = MaxBatchDays
		}
		if count < 1 || count > MaxBatchDays {
			results[i] = contentgen.BatchResult{
				Error: fmt.Sprintf("count must be between 1 and %d", MaxBatchDays),
			}
			continue
		}
		if b.StartDate != "" {
			if _, err := timeline.ParseDate(b.StartDate); err != nil {
				results[i] = contentgen.BatchResult{Error: err.Error()}
				continue
			}
		}
		reqs = append(reqs, contentgen.BatchRequest{StartDate: b.StartDate, Count: count, Theme: b.Theme})
		valid = append(valid, i)
	}

	for j, res := range s.engine.PlanAndRun(r.Context(), reqs) {
		results[valid[j]] = res
	}
	total := 0
	for i := range results {
		results[i].Batch = i + 1
		total += results[i].ProblemsCreated
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"results":       results,
		"total_created": total,
	})
}

type moveRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// moveProblem re-keys a problem to a new date.
func (s *Server) moveProblem(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.FromDate == "" || req.ToDate == "" {
		respondError(w, http.StatusBadRequest, "missing from_date or to_date")
		return
	}
	if _, err := timeline.ParseDate(req.ToDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.problems.Move(r.Context(), req.FromDate, req.ToDate); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"from":   req.FromDate,
		"to":     req.ToDate,
	})
}

// updateProblem replaces an existing problem's content in place. The
// date in the URL wins over anything in the body; moving is a separate
// operation.
func (s *Server) updateProblem(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var p timeline.DailyProblem
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	p.Date = date

	// Editors may add or drop cases, but IDs stay 1-based and contiguous.
	for i := range p.TestCases {
		p.TestCases[i].ID = i + 1
	}

	if err := s.problems.Update(r.Context(), &p); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, &p)
}

// deleteProblem removes the problem on the given date.
func (s *Server) deleteProblem(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := s.problems.Delete(r.Context(), date); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "date": date})
}

type renameThemeRequest struct {
	ThemeID  string `json:"theme_id"`
	NewTheme string `json:"new_theme"`
}

// renameTheme changes a theme record's display name.
func (s *Server) renameTheme(w http.ResponseWriter, r *http.Request) {
	var req renameThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.ThemeID == "" || req.NewTheme == "" {
		respondError(w, http.StatusBadRequest, "missing theme_id or new_theme")
		return
	}

	if err := s.themes.Rename(r.Context(), req.ThemeID, req.NewTheme); err != nil {
		if errors.Is(err, store.ErrThemeNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "theme": req.NewTheme})
}
