package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/intake"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/skills"
	"github.com/spigell/resume-screener/internal/store"
)

type fixture struct {
	handler http.Handler
	store   *store.Store
	job     store.Job
}

func newFixture(t *testing.T, token string) fixture {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	st, err := store.Open(ctx, filepath.Join(dir, "screener.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	job, err := st.CreateJob(ctx, store.Job{Title: "Backend Engineer", Company: "Acme", Requirements: "Go; SQL"})
	if err != nil {
		t.Fatalf("creating job: %v", err)
	}

	vocab := skills.NewStore(filepath.Join(dir, "skills.json"))
	if _, err := vocab.Merge("Go", "SQL", "Python"); err != nil {
		t.Fatalf("seeding vocabulary: %v", err)
	}

	svc := intake.New(document.New(document.Options{}), vocab, st, intake.Config{}, nil)
	srv := New(Deps{Intake: svc, Applications: st}, token)
	return fixture{handler: srv.Routes(), store: st, job: job}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "secret")
	rec := doJSON(t, f.handler, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthentication(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "secret")
	body := map[string]any{"profile": candidate.Empty()}

	if rec := doJSON(t, f.handler, http.MethodPost, "/api/suspicion", body, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	headers := map[string]string{"Authorization": "Bearer wrong"}
	if rec := doJSON(t, f.handler, http.MethodPost, "/api/suspicion", body, headers); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}
	headers["Authorization"] = "Bearer secret"
	if rec := doJSON(t, f.handler, http.MethodPost, "/api/suspicion", body, headers); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	rec := doJSON(t, f.handler, http.MethodPost, "/api/extract",
		map[string]string{"text": "Name: Jane Doe\njane@doe.dev\nPh.D. in Physics\nGo and SQL"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var draft intake.Draft
	if err := json.NewDecoder(rec.Body).Decode(&draft); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if draft.Profile.Name != "Jane Doe" || draft.Profile.EducationLevel != candidate.EducationPhD {
		t.Fatalf("unexpected profile %+v", draft.Profile)
	}
	if len(draft.Profile.Skills) != 2 {
		t.Fatalf("expected Go and SQL, got %v", draft.Profile.Skills)
	}
}

func TestExtractUpload(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "jane.txt")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	part.Write([]byte("Jane Doe\njane@doe.dev"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var draft intake.Draft
	if err := json.NewDecoder(rec.Body).Decode(&draft); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if draft.Filename != "jane.txt" || draft.Profile.Email != "jane@doe.dev" {
		t.Fatalf("unexpected draft %+v", draft)
	}

	buf.Reset()
	mw = multipart.NewWriter(&buf)
	part, _ = mw.CreateFormFile("resume", "jane.odt")
	part.Write([]byte("whatever"))
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	body := scoreRequest{
		Profile:      candidate.Profile{EducationLevel: candidate.EducationPhD, Experience: "5 years", Skills: []string{"Python", "SQL"}},
		Requirements: "python, sql",
	}
	rec := doJSON(t, f.handler, http.MethodPost, "/api/score", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result scoring.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Total != 140 {
		t.Fatalf("expected unclamped 140, got %v", result.Total)
	}
}

func TestRanking(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	ctx := context.Background()

	profiles := []candidate.Profile{
		{Name: "Low Scorer", Email: "low@x.io", Phone: candidate.NotFound, EducationLevel: candidate.EducationHighSchool, Experience: candidate.NotFound, Skills: []string{}},
		{Name: "Top Scorer", Email: "top@x.io", Phone: candidate.NotFound, EducationLevel: candidate.EducationMasters, Experience: "3 years", Skills: []string{"Go", "SQL"}},
	}
	for _, p := range profiles {
		if _, err := f.store.SubmitApplication(ctx, store.Application{JobID: f.job.ID, Profile: p}); err != nil {
			t.Fatalf("submitting: %v", err)
		}
	}

	rec := doJSON(t, f.handler, http.MethodGet, "/api/jobs/"+f.job.ID+"/ranking", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Ranking []report.Row `json:"ranking"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Ranking) != 2 || resp.Ranking[0].Name != "Top Scorer" || resp.Ranking[0].Score != 120 {
		t.Fatalf("unexpected ranking %+v", resp.Ranking)
	}

	rec = doJSON(t, f.handler, http.MethodGet, "/api/jobs/"+f.job.ID+"/ranking?min_score=50", nil, nil)
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Ranking) != 1 {
		t.Fatalf("expected minimum score to drop the low scorer, got %+v", resp.Ranking)
	}

	if rec := doJSON(t, f.handler, http.MethodGet, "/api/jobs/missing/ranking", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := doJSON(t, f.handler, http.MethodGet, "/api/jobs/"+f.job.ID+"/ranking?min_score=abc", nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOversizedJSONBodies(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	huge := strings.Repeat("a", maxUploadSize+1)

	bodies := map[string]any{
		"/api/extract":   map[string]string{"text": huge},
		"/api/score":     map[string]string{"requirements": huge},
		"/api/suspicion": map[string]any{"profile": map[string]string{"experience": huge}},
	}
	for path, body := range bodies {
		if rec := doJSON(t, f.handler, http.MethodPost, path, body, nil); rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("%s: expected 413, got %d", path, rec.Code)
		}
	}
}
