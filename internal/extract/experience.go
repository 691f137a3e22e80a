package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-screener/internal/candidate"
)

const (
	monthYear   = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{4}|(?:19|20)\d{2}`
	currentDate = `Present|Current|Now|Today`
	unknownDate = "?"
)

var (
	roleAtRe    = regexp.MustCompile(`^(?:(?i:position|title|role)\s*[:\-]\s*)?(.+?)\s+at\s+(.+)$`)
	dateRangeRe = regexp.MustCompile(`(?i)(?:\bfrom\s+)?\b(` + monthYear + `)\b(?:\s*(?:to|until|-|–|—)\s*\b(` + monthYear + `|` + currentDate + `)\b)?`)
	// Separators that end a company name when no date follows directly.
	companyCut  = regexp.MustCompile(`\s*(?:[,(|]|\s-\s|\s–\s|\s—\s|\b(?i:from|since)\b)`)
	// A further "<Role> at" after a comma or bar starts the next entry of the same segment.
	nextEntryRe = regexp.MustCompile(`[,|]\s*\p{Lu}[^,|]*?\s+at\s+`)
	segmentSep  = regexp.MustCompile(`[\n;•]+`)
	bulletTrim  = "-*•·>\t "
)

// Entry is a single role held at a company.
type Entry struct {
	Role    string
	Company string
	From    string
	To      string
}

func (e Entry) String() string {
	from, to := e.From, e.To
	if from == "" {
		from = unknownDate
	}
	if to == "" {
		to = unknownDate
	}
	return fmt.Sprintf("%s at %s (%s - %s)", e.Role, e.Company, from, to)
}

// Entries finds every "<Role> at <Company>" occurrence. Lines and semicolon separated
// segments are scanned independently; a segment may hold several comma separated entries.
func Entries(text string) []Entry {
	var entries []Entry
	for _, segment := range segmentSep.Split(text, -1) {
		for segment = strings.Trim(segment, bulletTrim); segment != ""; {
			e, next, ok := parseEntry(segment)
			if ok {
				entries = append(entries, e)
			}
			segment = strings.Trim(next, bulletTrim)
		}
	}
	return entries
}

// Experience renders all entries joined with "; ".
func Experience(text string) string {
	entries := Entries(text)
	if len(entries) == 0 {
		return candidate.NotFound
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

// parseEntry reads the first entry of segment and returns the text where the next one may start.
func parseEntry(segment string) (Entry, string, bool) {
	m := roleAtRe.FindStringSubmatch(segment)
	if m == nil {
		return Entry{}, "", false
	}

	role := strings.TrimSpace(m[1])
	rest := strings.TrimSpace(m[2])

	var next string
	if loc := nextEntryRe.FindStringIndex(rest); loc != nil {
		next = rest[loc[0]+1:]
		rest = rest[:loc[0]]
	}
	if !startsUpper(role) {
		return Entry{}, next, false
	}

	var from, to string
	company := rest
	if loc := dateRangeRe.FindStringSubmatchIndex(rest); loc != nil {
		company = rest[:loc[0]]
		from = rest[loc[2]:loc[3]]
		if loc[4] >= 0 {
			to = rest[loc[4]:loc[5]]
		}
	}
	if loc := companyCut.FindStringIndex(company); loc != nil {
		company = company[:loc[0]]
	}
	company = strings.TrimRight(strings.TrimSpace(company), ",.-–—(|")
	company = strings.TrimSpace(company)
	if !startsUpper(company) {
		return Entry{}, next, false
	}

	return Entry{
		Role:    strings.Join(strings.Fields(role), " "),
		Company: strings.Join(strings.Fields(company), " "),
		From:    normalizeDate(from),
		To:      normalizeDate(to),
	}, next, true
}

func normalizeDate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	switch strings.ToLower(s) {
	case "present", "current", "now", "today":
		return "Present"
	}
	return s
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
