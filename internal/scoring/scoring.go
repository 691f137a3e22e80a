// Package scoring turns a candidate profile and a job's required skills into a score.
package scoring

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/resume-screener/internal/candidate"
)

// Scoring policy.
const (
	EducationWeight  = 0.2
	ExperienceWeight = 0.2
	SkillWeight      = 0.6

	// FullCreditYears is the number of years that earns the full experience sub-score.
	FullCreditYears = 3
)

var firstIntRe = regexp.MustCompile(`\d+`)

// DefaultEducationScores maps education levels to their raw score. Unlisted levels score 0.
func DefaultEducationScores() map[string]float64 {
	return map[string]float64{
		candidate.EducationPhD:        3,
		candidate.EducationMasters:    2,
		candidate.EducationBachelors:  1,
		candidate.EducationDiploma:    0.5,
		candidate.EducationHighSchool: 0.2,
	}
}

type Weights struct {
	Education  float64
	Experience float64
	Skills     float64
}

type Config struct {
	Weights         Weights
	EducationScores map[string]float64
	FullCreditYears float64
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Education:  EducationWeight,
			Experience: ExperienceWeight,
			Skills:     SkillWeight,
		},
		EducationScores: DefaultEducationScores(),
		FullCreditYears: FullCreditYears,
	}
}

// Result holds the total score and the parts it was built from.
type Result struct {
	// Total is rounded to two decimals and is not clamped: a PhD holder with full
	// experience and skill coverage scores above 100.
	Total         float64  `json:"total" yaml:"total"`
	Education     float64  `json:"education" yaml:"education"`
	Experience    float64  `json:"experience" yaml:"experience"`
	Skills        float64  `json:"skills" yaml:"skills"`
	MatchedSkills []string `json:"matched_skills" yaml:"matched_skills"`
}

type Scorer struct {
	cfg Config
}

// New returns a scorer. Missing parts of cfg are filled from DefaultConfig.
func New(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.Weights == (Weights{}) {
		cfg.Weights = def.Weights
	}
	if cfg.EducationScores == nil {
		cfg.EducationScores = def.EducationScores
	}
	if cfg.FullCreditYears <= 0 {
		cfg.FullCreditYears = def.FullCreditYears
	}
	return &Scorer{cfg: cfg}
}

// Score scores a profile with the default policy.
func Score(p candidate.Profile, required candidate.Requirement) Result {
	return New(DefaultConfig()).Score(p, required)
}

func (s *Scorer) Score(p candidate.Profile, required candidate.Requirement) Result {
	edu := s.cfg.EducationScores[p.EducationLevel]
	exp := s.experienceScore(p.Experience)
	skill, matched := skillScore(p.Skills, required)

	w := s.cfg.Weights
	total := 100 * (w.Education*edu + w.Experience*exp + w.Skills*skill)

	return Result{
		Total:         round2(total),
		Education:     edu,
		Experience:    exp,
		Skills:        skill,
		MatchedSkills: matched,
	}
}

// experienceScore reads the first integer in the text as years.
func (s *Scorer) experienceScore(experience string) float64 {
	m := firstIntRe.FindString(experience)
	if m == "" {
		return 0
	}
	years, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return math.Min(years/s.cfg.FullCreditYears, 1)
}

// skillScore is the share of required skills the candidate has, 0 when nothing is required.
// Entries holding a comma separated list count as separate skills.
func skillScore(candidateSkills []string, required candidate.Requirement) (float64, []string) {
	matched := []string{}
	if required.Len() == 0 {
		return 0, matched
	}

	var flat []string
	for _, s := range candidateSkills {
		flat = append(flat, candidate.ParseSkills(s)...)
	}

	seen := make(map[string]struct{}, len(flat))
	for _, s := range flat {
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if required.Has(s) {
			matched = append(matched, s)
		}
	}

	slices.Sort(matched)
	return float64(len(matched)) / float64(required.Len()), matched
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
