package skills

import (
	"fmt"
	"strings"
)

// Mode selects how vocabulary entries are located in the text.
type Mode string

const (
	// ModeExact matches a skill when its lower-cased form is a substring of the lower-cased text.
	ModeExact Mode = "exact"
	// ModeFuzzy matches a skill when its partial ratio against the text reaches the threshold.
	ModeFuzzy Mode = "fuzzy"

	DefaultThreshold = 80
)

// MatchOptions configures Match. The zero value is exact matching.
type MatchOptions struct {
	Mode      Mode
	// Threshold is the minimum partial ratio for ModeFuzzy. Zero selects DefaultThreshold,
	// so the lowest effective threshold is 1.
	Threshold int
}

// Validate checks the mode and threshold.
func (o MatchOptions) Validate() error {
	switch o.Mode {
	case "", ModeExact, ModeFuzzy:
	default:
		return fmt.Errorf("unknown skill match mode %q", o.Mode)
	}
	if o.Threshold < 0 || o.Threshold > 100 {
		return fmt.Errorf("fuzzy threshold must be within 0..100, got %d", o.Threshold)
	}
	return nil
}

func (o MatchOptions) threshold() int {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Match returns the vocabulary skills present in text, deduplicated and sorted,
// in the vocabulary's original casing.
func Match(text string, vocab *Vocabulary, opts MatchOptions) []string {
	found := []string{}
	if vocab.Len() == 0 || strings.TrimSpace(text) == "" {
		return found
	}

	switch opts.Mode {
	case ModeFuzzy:
		threshold := opts.threshold()
		hay := newHaystack(Normalize(text))
		for _, e := range vocab.entries() {
			needle := []rune(e.key)
			var ratio int
			if len(needle) > len(hay.runes) {
				ratio = PartialRatio(e.key, hay.text)
			} else {
				ratio = hay.ratio(needle, threshold)
			}
			if ratio >= threshold {
				found = append(found, e.display)
			}
		}
	default:
		lowered := strings.ToLower(text)
		for _, e := range vocab.entries() {
			if strings.Contains(lowered, strings.ToLower(e.display)) {
				found = append(found, e.display)
			}
		}
	}

	sortSkills(found)
	return found
}
