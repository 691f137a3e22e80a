package candidate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// UnknownName is stored when no name could be extracted.
	UnknownName = "Unknown"
	// NotFound is stored when an email, phone, education level or experience could not be extracted.
	NotFound = "Not found"
)

// Education levels in descending priority order.
const (
	EducationPhD        = "PhD"
	EducationMasters    = "Master's"
	EducationBachelors  = "Bachelor's"
	EducationDiploma    = "Diploma"
	EducationHighSchool = "High School"
)

// EducationLevels lists the recognised levels from highest to lowest.
var EducationLevels = []string{
	EducationPhD,
	EducationMasters,
	EducationBachelors,
	EducationDiploma,
	EducationHighSchool,
}

// Profile is the structured record produced from a résumé.
type Profile struct {
	Name           string   `json:"name" yaml:"name" validate:"required"`
	Email          string   `json:"email" yaml:"email" validate:"required,email|eq=Not found"`
	Phone          string   `json:"phone" yaml:"phone" validate:"required"`
	EducationLevel string   `json:"education_level" yaml:"education_level" validate:"required,education"`
	Experience     string   `json:"experience" yaml:"experience" validate:"required"`
	Skills         []string `json:"skills" yaml:"skills"`
}

// Empty returns a profile with every field set to its sentinel.
func Empty() Profile {
	return Profile{
		Name:           UnknownName,
		Email:          NotFound,
		Phone:          NotFound,
		EducationLevel: NotFound,
		Experience:     NotFound,
		Skills:         []string{},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("education", func(fl validator.FieldLevel) bool {
		return IsEducationLevel(fl.Field().String())
	})
	return v
}

// Validate checks a profile after applicant edits.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("validating profile: %w", err)
	}
	return nil
}

// SkillList renders skills in the comma separated form used by the legacy results file.
func (p Profile) SkillList() string {
	return strings.Join(p.Skills, ", ")
}

// IsEducationLevel reports whether s is a recognised level or the not-found sentinel.
func IsEducationLevel(s string) bool {
	return s == NotFound || slices.Contains(EducationLevels, s)
}

// ParseSkills splits a comma separated skill string, trimming entries and dropping empty ones.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		result = append(result, part)
	}
	return result
}
