package extract

import (
	"regexp"

	"github.com/spigell/resume-screener/internal/candidate"
)

type educationPattern struct {
	level string
	re    *regexp.Regexp
}

// Ordered from the highest level down; the first match wins.
var educationPatterns = []educationPattern{
	{
		level: candidate.EducationPhD,
		re:    regexp.MustCompile(`(?i)\b(?:Ph\.?D\.?|D\.?Phil|Doctor(?:ate)? of [A-Za-z ]+|Doctorate)\b`),
	},
	// A bare "MA" also matches the Massachusetts postal code, so "Boston, MA" reads as Master's.
	{
		level: candidate.EducationMasters,
		re:    regexp.MustCompile(`(?i)\b(?:M\.?Sc\.?|M\.?A\.?|MBA|M\.?Eng|M\.?Tech|Master(?:['’]?s)?(?: degree)? (?:of|in) [A-Za-z ]+|Master['’]s)\b`),
	},
	{
		level: candidate.EducationBachelors,
		re:    regexp.MustCompile(`(?i)\b(?:B\.?Sc\.?|B\.?A\.?|B\.?Eng|B\.?Tech|Bachelor(?:['’]?s)?(?: degree)? (?:of|in) [A-Za-z ]+|Bachelor['’]s)\b`),
	},
	{
		level: candidate.EducationDiploma,
		re:    regexp.MustCompile(`(?i)\b(?:Diploma(?: in)? [A-Za-z &]+|Diploma)\b`),
	},
	{
		level: candidate.EducationHighSchool,
		re:    regexp.MustCompile(`(?i)\b(?:High School|Secondary School|H\.?S\.?)\b`),
	},
}

// Education returns the highest recognised education level mentioned anywhere in the text.
func Education(text string) string {
	for _, p := range educationPatterns {
		if p.re.MatchString(text) {
			return p.level
		}
	}
	return candidate.NotFound
}
