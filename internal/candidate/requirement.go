package candidate

import (
	"slices"
	"strings"
)

// Requirement is the set of lower-cased skills a job asks for.
type Requirement map[string]struct{}

// ParseRequirement builds a requirement from a comma or semicolon delimited string.
func ParseRequirement(s string) Requirement {
	req := make(Requirement)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for _, field := range fields {
		req.Add(field)
	}
	return req
}

// NewRequirement builds a requirement from individual skills.
func NewRequirement(skills ...string) Requirement {
	req := make(Requirement, len(skills))
	for _, s := range skills {
		req.Add(s)
	}
	return req
}

// Add inserts a skill after trimming and lower-casing it. Blank skills are ignored.
func (r Requirement) Add(skill string) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return
	}
	r[skill] = struct{}{}
}

// Has reports whether the lower-cased skill is required.
func (r Requirement) Has(skill string) bool {
	_, ok := r[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

func (r Requirement) Len() int {
	return len(r)
}

// Skills returns the required skills sorted.
func (r Requirement) Skills() []string {
	out := make([]string, 0, len(r))
	for s := range r {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// String joins the skills with "; ", the form jobs are stored in.
func (r Requirement) String() string {
	return strings.Join(r.Skills(), "; ")
}
