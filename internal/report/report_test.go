package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spigell/resume-screener/internal/candidate"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/store"
	"github.com/spigell/resume-screener/internal/suspicion"
)

func testRows() []Row {
	items := []*screening.Candidate{
		{
			Application: store.Application{
				ID:      "a1",
				Status:  store.StatusApplied,
				Profile: candidate.Profile{Name: "Jane Doe", Email: "jane@doe.dev", EducationLevel: candidate.EducationPhD},
			},
			Score:     &scoring.Result{Total: 140, MatchedSkills: []string{"go", "sql"}},
			Suspicion: &suspicion.Report{Reasons: []string{}},
		},
		{
			Application: store.Application{ID: "a2", Profile: candidate.Empty()},
		},
	}
	return Rows(items)
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := testRows()
	if rows[0].Rank != 1 || rows[0].Score != 140 || rows[0].Suspicion != suspicion.NoReasons {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Rank != 2 || rows[1].Score != 0 || rows[1].MatchedSkills == nil {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}

func TestWriteFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   Format
		contains []string
	}{
		{format: FormatText, contains: []string{"RANK", "140.00", "Jane Doe", "go,sql", "N/A"}},
		{format: FormatJSON, contains: []string{`"application_id": "a1"`, `"score": 140`}},
		{format: FormatYAML, contains: []string{"application_id: a1", "score: 140", "- go"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := Write(&buf, tt.format, testRows()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Fatalf("expected output to contain %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat(" YAML "); err != nil || f != FormatYAML {
		t.Fatalf("unexpected result %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Fatalf("unexpected result %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error")
	}
}
