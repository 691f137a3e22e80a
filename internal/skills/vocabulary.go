package skills

import (
	"slices"
	"strings"
)

// Vocabulary is a set of known skills. Membership is case-insensitive;
// the first spelling seen is kept for display.
type Vocabulary struct {
	items map[string]string
}

// NewVocabulary builds a vocabulary from the given skills.
func NewVocabulary(skills ...string) *Vocabulary {
	v := &Vocabulary{items: make(map[string]string, len(skills))}
	for _, s := range skills {
		v.Add(s)
	}
	return v
}

// Add inserts a skill and reports whether it was new.
func (v *Vocabulary) Add(skill string) bool {
	if v.items == nil {
		v.items = make(map[string]string)
	}

	key := Normalize(skill)
	if key == "" {
		return false
	}
	if _, ok := v.items[key]; ok {
		return false
	}

	v.items[key] = strings.Join(strings.Fields(skill), " ")
	return true
}

// Merge adds every skill and returns the ones that were not present before, in input order.
func (v *Vocabulary) Merge(skills ...string) []string {
	var added []string
	for _, s := range skills {
		if v.Add(s) {
			added = append(added, strings.TrimSpace(s))
		}
	}
	return added
}

func (v *Vocabulary) Contains(skill string) bool {
	if v == nil {
		return false
	}
	_, ok := v.items[Normalize(skill)]
	return ok
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Items returns the display forms sorted case-insensitively.
func (v *Vocabulary) Items() []string {
	if v == nil {
		return []string{}
	}

	out := make([]string, 0, len(v.items))
	for _, display := range v.items {
		out = append(out, display)
	}
	sortSkills(out)
	return out
}

type entry struct {
	key     string
	display string
}

func (v *Vocabulary) entries() []entry {
	if v == nil {
		return nil
	}
	out := make([]entry, 0, len(v.items))
	for key, display := range v.items {
		out = append(out, entry{key: key, display: display})
	}
	return out
}

func sortSkills(s []string) {
	slices.SortFunc(s, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
