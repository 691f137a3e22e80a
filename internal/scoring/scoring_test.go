package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/candidate"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		profile  candidate.Profile
		required string
		total    float64
		matched  []string
	}{
		{
			name: "phd with full experience and skills exceeds 100",
			profile: candidate.Profile{
				EducationLevel: candidate.EducationPhD,
				Experience:     "5 years at Acme",
				Skills:         []string{"Python", "SQL"},
			},
			required: "python, sql",
			total:    140,
			matched:  []string{"python", "sql"},
		},
		{
			name: "bachelor with partial skills",
			profile: candidate.Profile{
				EducationLevel: candidate.EducationBachelors,
				Experience:     "2 years",
				Skills:         []string{"Python"},
			},
			required: "python; sql; docker",
			// 100 * (0.2*1 + 0.2*(2/3) + 0.6*(1/3)) = 53.333...
			total:   53.33,
			matched: []string{"python"},
		},
		{
			name: "empty requirement gives zero skill score",
			profile: candidate.Profile{
				EducationLevel: candidate.EducationMasters,
				Experience:     candidate.NotFound,
				Skills:         []string{"Python"},
			},
			required: "",
			total:    40,
			matched:  []string{},
		},
		{
			name:     "sentinel profile scores zero",
			profile:  candidate.Empty(),
			required: "go",
			total:    0,
			matched:  []string{},
		},
		{
			name: "unknown education scores zero and duplicates count once",
			profile: candidate.Profile{
				EducationLevel: "Bootcamp",
				Experience:     "1 year",
				Skills:         []string{"Go", "go", " GO "},
			},
			required: "go, rust",
			total:    36.67,
			matched:  []string{"go"},
		},
		{
			name: "comma separated entry counts as several skills",
			profile: candidate.Profile{
				EducationLevel: candidate.EducationMasters,
				Experience:     "3 years",
				Skills:         []string{"Python, SQL", ""},
			},
			required: "python, sql, docker",
			// 100 * (0.2*2 + 0.2*1 + 0.6*(2/3)) = 100
			total:   100,
			matched: []string{"python", "sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Score(tt.profile, candidate.ParseRequirement(tt.required))
			assert.InDelta(t, tt.total, got.Total, 1e-9)
			assert.Equal(t, tt.matched, got.MatchedSkills)
		})
	}
}

func TestExperienceUsesFirstInteger(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	assert.InDelta(t, 0.0, s.experienceScore("no numbers"), 1e-9)
	assert.InDelta(t, 1.0/3, s.experienceScore("1 year, then 10 more"), 1e-9)
	assert.InDelta(t, 1.0, s.experienceScore("Engineer at Acme (Jan 2020 - Present)"), 1e-9)
}

func TestNewFillsDefaults(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	require.Equal(t, DefaultConfig().Weights, s.cfg.Weights)
	require.EqualValues(t, FullCreditYears, s.cfg.FullCreditYears)

	custom := New(Config{Weights: Weights{Skills: 1}})
	got := custom.Score(candidate.Profile{Skills: []string{"go"}}, candidate.NewRequirement("go", "rust"))
	assert.InDelta(t, 50.0, got.Total, 1e-9)
}

func TestRankIsStable(t *testing.T) {
	t.Parallel()

	entries := []Entry[string]{
		{Item: "a", Result: Result{Total: 10}},
		{Item: "b", Result: Result{Total: 50}},
		{Item: "c", Result: Result{Total: 10}},
		{Item: "d", Result: Result{Total: 120}},
		{Item: "e", Result: Result{Total: 50}},
	}

	ranked := Rank(entries)

	order := make([]string, 0, len(ranked))
	for _, e := range ranked {
		order = append(order, e.Item)
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, order)
	assert.Equal(t, "a", entries[0].Item, "input must not be reordered")
}
