package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-screener/internal/candidate"
)

const minPhoneDigits = 10

var (
	labeledNameRe  = regexp.MustCompile(`\b(?i:name)[ \t]*[:\-]?[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)`)
	capitalLineRe  = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)
	emailRe        = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	phoneCandidate = regexp.MustCompile(`\+?\d[\d\- ]{8,}\d`)
)

// Name locates the candidate name using the given strategy.
func Name(text string, strategy NameStrategy) string {
	if strategy == NameFirstLine {
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				return line
			}
		}
		return candidate.UnknownName
	}

	if m := labeledNameRe.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), " ")
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if capitalLineRe.MatchString(line) {
			return line
		}
	}

	return candidate.UnknownName
}

// Email returns the first email-shaped token.
func Email(text string) string {
	if m := emailRe.FindString(text); m != "" {
		return m
	}
	return candidate.NotFound
}

// Phone returns the first digit run, optionally grouped with spaces or hyphens, holding at least ten digits.
func Phone(text string) string {
	for _, m := range phoneCandidate.FindAllString(text, -1) {
		if countDigits(m) >= minPhoneDigits {
			return m
		}
	}
	return candidate.NotFound
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
