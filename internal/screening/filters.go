package screening

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/store"
	"github.com/spigell/resume-screener/internal/suspicion"
)

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type statusFilter struct {
	toggle
	exclude []store.Status
}

// NewStatus creates a filter that removes applications in the configured statuses.
func NewStatus() Filter {
	return &statusFilter{}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Validate(cfg *Config) error {
	f.exclude = nil
	if cfg == nil {
		return nil
	}
	for _, st := range cfg.ExcludeStatuses {
		if _, err := store.ParseStatus(string(st)); err != nil {
			return err
		}
		f.exclude = append(f.exclude, st)
	}
	return nil
}

func (f *statusFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if len(f.exclude) == 0 {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	excluded := c.Exclude(func(item *Candidate) bool {
		return slices.Contains(f.exclude, item.Application.Status)
	})
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding applications by status",
			zap.Strings("excluded_applications", excluded),
			zap.Int("applications_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *statusFilter) Status() Status {
	details := map[string]string{}
	if len(f.exclude) > 0 {
		names := make([]string, 0, len(f.exclude))
		for _, st := range f.exclude {
			names = append(names, string(st))
		}
		details["exclude"] = strings.Join(names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type scoreFilter struct {
	toggle
	minScore float64
}

// NewScore creates a filter that scores every candidate against the job and drops
// those below the minimum score.
func NewScore() Filter {
	return &scoreFilter{}
}

func (f *scoreFilter) Name() string { return "score" }

func (f *scoreFilter) Validate(cfg *Config) error {
	f.minScore = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < 0 {
		return fmt.Errorf("minimum score must not be negative, got %v", cfg.MinimumScore)
	}
	f.minScore = cfg.MinimumScore
	return nil
}

func (f *scoreFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	if deps.Job == nil {
		return c, Step{}, errors.New("job is required for scoring")
	}

	scorer := deps.Scorer
	if scorer == nil {
		scorer = scoring.New(scoring.DefaultConfig())
	}

	initial := c.Len()
	required := deps.Job.Requirement()
	for _, item := range c.Items {
		result := scorer.Score(item.Application.Profile, required)
		item.Score = &result

		logger.WithApplicationFields(deps.Logger, deps.Job.ID, item.ID()).Debug("candidate scored",
			zap.Float64("score", result.Total),
			zap.Strings("matched_skills", result.MatchedSkills),
		)
	}

	excluded := c.Exclude(func(item *Candidate) bool {
		return item.Score.Total < f.minScore
	})
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding applications below minimum score",
			zap.Float64("minimum_score", f.minScore),
			zap.Strings("excluded_applications", excluded),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *scoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.FormatFloat(f.minScore, 'f', 2, 64)},
	}
}

type suspicionFilter struct {
	toggle
	mode SuspicionMode
}

// NewSuspicion creates a filter that assesses every candidate and, depending on the
// configured mode, keeps or drops the flagged ones.
func NewSuspicion() Filter {
	return &suspicionFilter{}
}

func (f *suspicionFilter) Name() string { return "suspicion" }

func (f *suspicionFilter) Validate(cfg *Config) error {
	f.mode = SuspicionFlag
	if cfg == nil || cfg.Suspicion == "" {
		return nil
	}
	switch cfg.Suspicion {
	case SuspicionFlag, SuspicionOnly, SuspicionExclude:
		f.mode = cfg.Suspicion
		return nil
	default:
		return fmt.Errorf("unknown suspicion mode %q", cfg.Suspicion)
	}
}

func (f *suspicionFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	heuristic := deps.Heuristic
	if heuristic == nil {
		heuristic = suspicion.New(suspicion.DefaultConfig())
	}

	initial := c.Len()
	flagged := 0
	for _, item := range c.Items {
		report := heuristic.Assess(item.Application.Profile)
		item.Suspicion = &report
		if report.Suspicious() {
			flagged++
		}
	}

	var excluded []string
	switch f.mode {
	case SuspicionOnly:
		excluded = c.Exclude(func(item *Candidate) bool { return !item.Suspicion.Suspicious() })
	case SuspicionExclude:
		excluded = c.Exclude(func(item *Candidate) bool { return item.Suspicion.Suspicious() })
	}

	deps.Logger.Debug("suspicion assessed",
		zap.String("mode", string(f.mode)),
		zap.Int("flagged", flagged),
		zap.Strings("excluded_applications", excluded),
	)

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *suspicionFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"mode": string(f.mode)},
	}
}
