package api

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dpp0007/HackHerth/internal/metrics"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps wires the HTTP layer. Metrics and RequestLog are optional; a nil
// RequestLog logs requests to stdout.
type Deps struct {
	Journal      service.JournalService
	Intelligence service.IntelligenceService
	Metrics      *metrics.Metrics
	RequestLog   io.Writer
}

type handler struct {
	journal      service.JournalService
	intelligence service.IntelligenceService
}

func NewRouter(deps Deps) http.Handler {
	h := &handler{journal: deps.Journal, intelligence: deps.Intelligence}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if deps.RequestLog != nil {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  log.New(deps.RequestLog, "", log.LstdFlags),
			NoColor: true,
		}))
	} else {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer, cors)
	if deps.Metrics != nil {
		r.Use(instrument(deps.Metrics))
	}

	r.Get("/health", h.health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Post("/session/start", h.startSession)

	r.Get("/user/profile/{userID}", h.getProfile)
	r.Post("/user/profile/{userID}", h.updateProfile)

	r.Post("/mood/{userID}", h.logMood)
	r.Post("/symptoms/{userID}", h.logSymptom)
	r.Post("/nutrition/{userID}", h.logNutrition)

	r.Get("/todo/{userID}", h.listTodos)
	r.Post("/todo/{userID}", h.addTodo)
	r.Post("/todo/{userID}/{todoID}/complete", h.completeTodo)

	r.Post("/agent/log/{userID}", h.logAgentEvent)

	r.Get("/report/{userID}", h.summary)

	r.Route("/intelligence", func(r chi.Router) {
		r.Post("/analyze/{userID}", h.analyze)
		r.Get("/report/{kind}/{userID}", h.report)
		r.Post("/action-plan/{userID}", h.actionPlan)
		r.Post("/safety-check", h.safetyCheck)
		r.Post("/validate-response", h.validateResponse)
		r.Post("/learn/{userID}", h.learn)
		r.Get("/safety-report/{userID}", h.safetyReport)
	})

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records request counts and latency by matched route pattern.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, route, status, time.Since(start))
		})
	}
}
