package screening

import (
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/store"
	"github.com/spigell/resume-screener/internal/suspicion"
)

// Candidate is an application together with what the pipeline learned about it.
type Candidate struct {
	Application store.Application `json:"application" yaml:"application"`
	Score       *scoring.Result   `json:"score,omitempty" yaml:"score,omitempty"`
	Suspicion   *suspicion.Report `json:"suspicion,omitempty" yaml:"suspicion,omitempty"`
}

func (c *Candidate) ID() string {
	return c.Application.ID
}

type Candidates struct {
	Items []*Candidate
}

// FromApplications wraps stored applications for screening.
func FromApplications(apps []store.Application) *Candidates {
	c := &Candidates{Items: make([]*Candidate, 0, len(apps))}
	for _, app := range apps {
		c.Items = append(c.Items, &Candidate{Application: app})
	}
	return c
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, item := range c.Items {
		if item.ID() == id {
			return item
		}
	}
	return nil
}

// Exclude removes candidates matching drop, preserving order, and returns the removed ids.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, item := range c.Items {
		if drop(item) {
			excluded = append(excluded, item.ID())
			continue
		}
		kept = append(kept, item)
	}
	clear(c.Items[len(kept):])
	c.Items = kept
	return excluded
}

// Ranked returns the candidates ordered by score, highest first. Unscored candidates count as zero.
func (c *Candidates) Ranked() []*Candidate {
	entries := make([]scoring.Entry[*Candidate], 0, len(c.Items))
	for _, item := range c.Items {
		e := scoring.Entry[*Candidate]{Item: item}
		if item.Score != nil {
			e.Result = *item.Score
		}
		entries = append(entries, e)
	}

	ranked := scoring.Rank(entries)
	out := make([]*Candidate, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, e.Item)
	}
	return out
}
