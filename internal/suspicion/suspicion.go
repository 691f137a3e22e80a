// Package suspicion flags profiles that look fabricated or careless.
package suspicion

import (
	"strings"

	"github.com/spigell/resume-screener/internal/candidate"
)

const (
	ReasonEmailMismatch = "Email does not match name"
	ReasonTooManySkills = "Too many skills listed"
	ReasonExaggeration  = "Exaggerated claims in experience"

	// NoReasons is the summary of a report with nothing flagged.
	NoReasons = "N/A"

	DefaultMaxSkills = 20
)

// DefaultBuzzwords returns the phrases treated as exaggerated claims.
func DefaultBuzzwords() []string {
	return []string{
		"top 1%",
		"world-class",
		"invented",
		"guru",
		"ninja",
		"rockstar",
		"10x",
		"before the internet",
	}
}

type Config struct {
	MaxSkills int      `mapstructure:"max-skills" validate:"gte=0"`
	Buzzwords []string `mapstructure:"buzzwords"`
}

func DefaultConfig() Config {
	return Config{
		MaxSkills: DefaultMaxSkills,
		Buzzwords: DefaultBuzzwords(),
	}
}

// Report lists the triggered reasons in rule order.
type Report struct {
	Reasons []string `json:"reasons" yaml:"reasons"`
}

func (r Report) Suspicious() bool {
	return len(r.Reasons) > 0
}

// Score is the number of triggered rules.
func (r Report) Score() int {
	return len(r.Reasons)
}

// Summary joins the reasons with "; ", or returns "N/A" when there are none.
func (r Report) Summary() string {
	if len(r.Reasons) == 0 {
		return NoReasons
	}
	return strings.Join(r.Reasons, "; ")
}

func (r Report) String() string {
	return r.Summary()
}

type rule func(p candidate.Profile) (string, bool)

// Heuristic evaluates the rules against profiles.
type Heuristic struct {
	rules []rule
}

// New builds a heuristic. A zero MaxSkills or nil Buzzwords fall back to the defaults.
func New(cfg Config) *Heuristic {
	if cfg.MaxSkills == 0 {
		cfg.MaxSkills = DefaultMaxSkills
	}
	if cfg.Buzzwords == nil {
		cfg.Buzzwords = DefaultBuzzwords()
	}

	buzzwords := make([]string, 0, len(cfg.Buzzwords))
	for _, b := range cfg.Buzzwords {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			buzzwords = append(buzzwords, b)
		}
	}

	return &Heuristic{
		rules: []rule{
			emailMatchesName,
			tooManySkills(cfg.MaxSkills),
			exaggeratedExperience(buzzwords),
		},
	}
}

// Assess checks a profile with the default configuration.
func Assess(p candidate.Profile) Report {
	return New(DefaultConfig()).Assess(p)
}

func (h *Heuristic) Assess(p candidate.Profile) Report {
	report := Report{Reasons: []string{}}
	for _, r := range h.rules {
		if reason, hit := r(p); hit {
			report.Reasons = append(report.Reasons, reason)
		}
	}
	return report
}

func emailMatchesName(p candidate.Profile) (string, bool) {
	email := strings.ToLower(p.Email)
	for _, part := range strings.Fields(strings.ToLower(p.Name)) {
		if strings.Contains(email, part) {
			return "", false
		}
	}
	return ReasonEmailMismatch, true
}

func tooManySkills(limit int) rule {
	return func(p candidate.Profile) (string, bool) {
		return ReasonTooManySkills, len(p.Skills) > limit
	}
}

func exaggeratedExperience(buzzwords []string) rule {
	return func(p candidate.Profile) (string, bool) {
		experience := strings.ToLower(p.Experience)
		for _, b := range buzzwords {
			if strings.Contains(experience, b) {
				return ReasonExaggeration, true
			}
		}
		return "", false
	}
}
