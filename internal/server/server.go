package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lazypower/lifeclock/internal/engine"
)

// Server is the lifeclock HTTP API server.
type Server struct {
	engine   *engine.Engine
	gatherer prometheus.Gatherer
	log      *zap.Logger
	router   chi.Router
	version  string
	started  time.Time
}

// New creates a new Server around eng. gatherer backs /metrics and may be
// nil; logger may be nil.
func New(eng *engine.Engine, gatherer prometheus.Gatherer, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:   eng,
		gatherer: gatherer,
		log:      logger.Named("http"),
		version:  version,
		started:  time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/user", s.handleGetUser)
		r.Post("/user/life-expectancy", s.handleSetLifeExpectancy)
		r.Get("/user/countdown", s.handleCountdown)

		r.Post("/nutrition-score", s.handleNutritionScore)

		r.Get("/food-entries", s.handleListFood)
		r.Get("/food-entries/today", s.handleTodayFood)
		r.Post("/food-entries", s.handleAddFood)

		r.Get("/exercise-entries", s.handleListExercise)
		r.Post("/exercise-entries", s.handleAddExercise)

		r.Get("/sleep-entries", s.handleListSleep)
		r.Post("/sleep-entries", s.handleAddSleep)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
}

// requestLogger logs one line per request once the response is written.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      true,
	}
	counts, err := s.engine.Counts(r.Context())
	if err != nil {
		s.log.Warn("health: count entries", zap.Error(err))
		resp["db"] = false
	} else {
		resp["entries"] = counts
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// writeJSON encodes v before writing the status line; encode failures are 500s.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
