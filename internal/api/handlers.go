package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/intake"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/store"
)

type extractRequest struct {
	Text string `json:"text"`
}

// handleExtract accepts either a JSON body with raw text or a multipart upload in the "resume" field.
// POST /api/extract
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if s.deps.Intake == nil {
		writeError(w, http.StatusServiceUnavailable, "extraction is not configured")
		return
	}

	var (
		draft intake.Draft
		err   error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		draft, err = s.extractUpload(r)
	} else {
		var req extractRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		draft.Profile, err = s.deps.Intake.Analyze(req.Text)
	}

	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, document.ErrTooLarge), errors.Is(err, document.ErrTooManyPages):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		s.deps.Logger.Warn("extraction failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeJSON(w, http.StatusOK, draft)
	}
}

func (s *Server) extractUpload(r *http.Request) (intake.Draft, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return intake.Draft{}, err
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return intake.Draft{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return intake.Draft{}, err
	}

	return s.deps.Intake.AnalyzeUpload(header.Filename, document.MimeFromFilename(header.Filename), data)
}

// decodeJSON reads a request body of at most maxUploadSize bytes into v and writes the
// error response itself when that fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body is too large")
		return false
	case err != nil:
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type scoreRequest struct {
	Profile      candidate.Profile `json:"profile"`
	Requirements string            `json:"requirements"`
}

// POST /api/score
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Scorer.Score(req.Profile, candidate.ParseRequirement(req.Requirements)))
}

type suspicionResponse struct {
	Reasons    []string `json:"reasons"`
	Summary    string   `json:"summary"`
	Suspicious bool     `json:"suspicious"`
	Score      int      `json:"score"`
}

// POST /api/suspicion
func (s *Server) handleSuspicion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile candidate.Profile `json:"profile"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	rep := s.deps.Heuristic.Assess(req.Profile)
	writeJSON(w, http.StatusOK, suspicionResponse{
		Reasons:    rep.Reasons,
		Summary:    rep.Summary(),
		Suspicious: rep.Suspicious(),
		Score:      rep.Score(),
	})
}

// handleRanking scores a job's open applications and returns them best first.
// Query parameters: min_score (number) and suspicion (flag, only, exclude).
// GET /api/jobs/{jobID}/ranking
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	if s.deps.Applications == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	ctx := r.Context()
	jobID := chi.URLParam(r, "jobID")

	job, err := s.deps.Applications.GetJob(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cfg := &screening.Config{
		ExcludeStatuses: []store.Status{store.StatusRejected},
		Suspicion:       screening.SuspicionMode(r.URL.Query().Get("suspicion")),
	}
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		cfg.MinimumScore, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_score must be a number")
			return
		}
	}

	apps, err := s.deps.Applications.ListApplications(ctx, store.Filter{JobID: job.ID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	deps := screening.Deps{
		Logger:    s.deps.Logger,
		Job:       &job,
		Scorer:    s.deps.Scorer,
		Heuristic: s.deps.Heuristic,
	}
	screened, err := screening.Run(ctx, cfg, deps, screening.Default(), screening.FromApplications(apps))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job":     job,
		"ranking": report.Rows(screened.Ranked()),
	})
}
