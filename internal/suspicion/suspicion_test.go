package suspicion

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/spigell/resume-screener/internal/candidate"
)

func manySkills(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("skill%d", i)
	}
	return out
}

func TestAssess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile candidate.Profile
		reasons []string
		summary string
	}{
		{
			name:    "email contains a name part",
			profile: candidate.Profile{Name: "John Smith", Email: "jsmith@x.com"},
			reasons: []string{},
			summary: NoReasons,
		},
		{
			name:    "email unrelated to name",
			profile: candidate.Profile{Name: "John Smith", Email: "abc@x.com"},
			reasons: []string{ReasonEmailMismatch},
			summary: "Email does not match name",
		},
		{
			name:    "empty name always mismatches",
			profile: candidate.Profile{Name: "", Email: "abc@x.com"},
			reasons: []string{ReasonEmailMismatch},
			summary: "Email does not match name",
		},
		{
			name:    "exactly twenty skills is fine",
			profile: candidate.Profile{Name: "Ann Lee", Email: "ann@x.com", Skills: manySkills(20)},
			reasons: []string{},
			summary: NoReasons,
		},
		{
			name: "all rules in order",
			profile: candidate.Profile{
				Name:       "Ann Lee",
				Email:      "rockstar@x.com",
				Skills:     manySkills(21),
				Experience: "World-Class Ninja at Acme",
			},
			reasons: []string{ReasonEmailMismatch, ReasonTooManySkills, ReasonExaggeration},
			summary: "Email does not match name; Too many skills listed; Exaggerated claims in experience",
		},
		{
			name:    "sentinel profile",
			profile: candidate.Empty(),
			reasons: []string{ReasonEmailMismatch},
			summary: "Email does not match name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := Assess(tt.profile)
			if !reflect.DeepEqual(report.Reasons, tt.reasons) {
				t.Fatalf("expected reasons %v, got %v", tt.reasons, report.Reasons)
			}
			if report.Summary() != tt.summary {
				t.Fatalf("expected summary %q, got %q", tt.summary, report.Summary())
			}
			if report.Suspicious() != (len(tt.reasons) > 0) || report.Score() != len(tt.reasons) {
				t.Fatalf("inconsistent report flags: %+v", report)
			}
		})
	}
}

func TestCustomConfig(t *testing.T) {
	t.Parallel()

	h := New(Config{MaxSkills: 2, Buzzwords: []string{"  Wizard "}})
	report := h.Assess(candidate.Profile{
		Name:       "Bo Kim",
		Email:      "bo@kim.dev",
		Skills:     []string{"a", "b", "c"},
		Experience: "Data wizard at Initech",
	})

	expect := []string{ReasonTooManySkills, ReasonExaggeration}
	if !reflect.DeepEqual(report.Reasons, expect) {
		t.Fatalf("expected %v, got %v", expect, report.Reasons)
	}
}
