// Package api exposes extraction, scoring, suspicion and job rankings over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/intake"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/store"
	"github.com/spigell/resume-screener/internal/suspicion"
)

const maxUploadSize = 10 << 20

// Applications is the part of the store the API reads from.
type Applications interface {
	GetJob(ctx context.Context, id string) (store.Job, error)
	ListApplications(ctx context.Context, f store.Filter) ([]store.Application, error)
}

type Deps struct {
	Intake       *intake.Service
	Applications Applications
	Scorer       *scoring.Scorer
	Heuristic    *suspicion.Heuristic
	Logger       *zap.Logger
}

type Server struct {
	deps  Deps
	token string
}

// New creates the API server. An empty token disables authentication.
func New(deps Deps, token string) *Server {
	deps.Logger = logger.WithFields(deps.Logger)
	if deps.Scorer == nil {
		deps.Scorer = scoring.New(scoring.DefaultConfig())
	}
	if deps.Heuristic == nil {
		deps.Heuristic = suspicion.New(suspicion.DefaultConfig())
	}
	return &Server{deps: deps, token: token}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/extract", s.handleExtract)
		r.Post("/score", s.handleScore)
		r.Post("/suspicion", s.handleSuspicion)
		r.Get("/jobs/{jobID}/ranking", s.handleRanking)
	})

	return r
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !secrets.Equal(got, s.token) {
			writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.deps.Logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
