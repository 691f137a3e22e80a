// Package extract pulls contact details, education and experience out of plain résumé text.
//
// Every function here is pure: any input, including an empty string, produces a
// profile where the fields that could not be found carry their sentinel values.
package extract

import (
	"strings"

	"github.com/spigell/resume-screener/internal/candidate"
)

// NameStrategy selects how the candidate name is located.
type NameStrategy string

const (
	// NameLabeledOrCapitalized looks for a "Name:" label, then for a line made of capitalised words.
	NameLabeledOrCapitalized NameStrategy = "labeled"
	// NameFirstLine takes the first non-empty line verbatim.
	NameFirstLine NameStrategy = "first-line"
)

// ParseNameStrategy maps a configuration value to a strategy. Unknown values fall back to the default.
func ParseNameStrategy(s string) (NameStrategy, bool) {
	switch NameStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NameLabeledOrCapitalized:
		return NameLabeledOrCapitalized, true
	case NameFirstLine:
		return NameFirstLine, true
	default:
		return NameLabeledOrCapitalized, false
	}
}

type options struct {
	nameStrategy NameStrategy
}

// Option customises extraction.
type Option func(*options)

// WithNameStrategy overrides the default name strategy.
func WithNameStrategy(s NameStrategy) Option {
	return func(o *options) {
		o.nameStrategy = s
	}
}

// Extract builds a profile from résumé text. Skills are left empty, see skills.Match.
func Extract(text string, opts ...Option) candidate.Profile {
	o := options{nameStrategy: NameLabeledOrCapitalized}
	for _, opt := range opts {
		opt(&o)
	}

	return candidate.Profile{
		Name:           Name(text, o.nameStrategy),
		Email:          Email(text),
		Phone:          Phone(text),
		EducationLevel: Education(text),
		Experience:     Experience(text),
		Skills:         []string{},
	}
}
