package api

import (
	"crypto/sha256"
	"encoding/binary"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

// fallbackProblem is a served problem annotated with fallback metadata so
// the client can tell it is a rerun, not today's scheduled content.
type fallbackProblem struct {
	*timeline.DailyProblem
	Fallback     bool   `json:"_fallback"`
	OriginalDate string `json:"_original_date"`
}

// getTodayProblem serves today's problem. When today has no scheduled
// problem the player still gets one: the date string is hashed to pick a
// deterministic existing problem, so every client sees the same rerun.
func (s *Server) getTodayProblem(w http.ResponseWriter, r *http.Request) {
	today := s.today()

	p, err := s.problems.Get(r.Context(), today)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p != nil {
		respondJSON(w, http.StatusOK, p)
		return
	}

	all, err := s.problems.ProblemsInRange(r.Context(), "0001-01-01", "9999-12-31")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(all) == 0 {
		respondError(w, http.StatusNotFound, "no problems available yet, trigger generation first")
		return
	}

	sum := sha256.Sum256([]byte(today))
	idx := binary.BigEndian.Uint64(sum[:8]) % uint64(len(all))

	respondJSON(w, http.StatusOK, fallbackProblem{
		DailyProblem: all[idx],
		Fallback:     true,
		OriginalDate: today,
	})
}

// getProblemByDate serves a specific problem. Future dates are
// time-locked: asking for one is forbidden, not merely missing.
func (s *Server) getProblemByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if _, err := timeline.ParseDate(date); err != nil {
		respondError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}
	if date > s.today() {
		respondError(w, http.StatusForbidden, "cannot access problems for future dates")
		return
	}

	p, err := s.problems.Get(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "no problem found for "+date)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type calendarDay struct {
	Date       string              `json:"date"`
	Title      string              `json:"title"`
	Difficulty timeline.Difficulty `json:"difficulty"`
}

// getMonthCalendar serves a lightweight month view: dates, titles and
// difficulties only, and never anything scheduled after today.
func (s *Server) getMonthCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		respondError(w, http.StatusBadRequest, "invalid month format, use YYYY-MM")
		return
	}

	problems, err := s.problems.ProblemsInRange(r.Context(), month+"-01", month+"-31")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	today := s.today()
	days := make([]calendarDay, 0, len(problems))
	for _, p := range problems {
		if p.Date > today {
			continue
		}
		days = append(days, calendarDay{Date: p.Date, Title: p.Title, Difficulty: p.Difficulty})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"month": month,
		"count": len(days),
		"days":  days,
	})
}

// getThemes lists past and current theme records, optionally filtered to
// themes starting in a given month. Themes starting after today are
// never returned.
func (s *Server) getThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.themes.ThemesThrough(r.Context(), s.today())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if month := r.URL.Query().Get("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			respondError(w, http.StatusBadRequest, "invalid month format, use YYYY-MM")
			return
		}
		filtered := themes[:0]
		for _, t := range themes {
			if strings.HasPrefix(t.StartDate, month+"-") {
				filtered = append(filtered, t)
			}
		}
		themes = filtered
	}

	if themes == nil {
		themes = []*timeline.WeeklyTheme{}
	}
	respondJSON(w, http.StatusOK, themes)
}
