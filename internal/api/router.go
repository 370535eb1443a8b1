package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/WatsonMLDev/codele-backend/internal/contentgen"
	"github.com/WatsonMLDev/codele-backend/internal/store"
)

// Server wires the HTTP surface over the store and the content engine.
//
// Two tiers are exposed: the public game API (problem, calendar, themes)
// and the admin API used by the scheduling dashboard. The public problem
// endpoints are rate limited; nothing on the public tier ever reveals a
// problem or theme scheduled after today.
type Server struct {
	problems store.TimelineRepo
	themes   store.ThemeRepo
	engine   *contentgen.Engine

	limiter *RateLimiter
	now     func() time.Time
}

// NewServer creates a Server over the given repositories and engine.
func NewServer(problems store.TimelineRepo, themes store.ThemeRepo, engine *contentgen.Engine) *Server {
	return &Server{
		problems: problems,
		themes:   themes,
		engine:   engine,
		limiter:  NewRateLimiter(10, time.Minute),
		now:      time.Now,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/problem", func(pr chi.Router) {
			pr.Use(s.limiter.Middleware)
			pr.Get("/today", s.getTodayProblem)
			pr.Get("/{date}", s.getProblemByDate)
		})

		v1.Get("/calendar", s.getMonthCalendar)
		v1.Get("/themes", s.getThemes)

		v1.Route("/admin", func(ad chi.Router) {
			ad.Get("/status", s.getStatus)
			ad.Post("/generate", s.generateBatches)
			ad.Post("/move", s.moveProblem)
			ad.Put("/problem/{date}", s.updateProblem)
			ad.Delete("/problem/{date}", s.deleteProblem)
			ad.Post("/theme/rename", s.renameTheme)
		})
	})

	return r
}

// today returns the server's current date key in UTC.
func (s *Server) today() string {
	return s.now().UTC().Format("2006-01-02")
}
