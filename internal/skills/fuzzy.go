package skills

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// PartialRatio scores 0-100 how well the shorter string appears inside the longer one.
// Containment scores 100; otherwise the best edit-distance similarity over every
// window of the longer string that has the shorter string's length.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb, b = rb, ra, a
	}
	return haystack{text: b, runes: rb}.ratio(ra, 0)
}

// haystack is a text prepared once and searched for many needles.
type haystack struct {
	text  string
	runes []rune
}

func newHaystack(text string) haystack {
	return haystack{text: text, runes: []rune(text)}
}

// ratio is the partial ratio of needle inside h. Windows that cannot reach floor are
// skipped, so a result below floor is only a lower bound of the true ratio.
//
// For equal length strings the edit distance is at least len minus the size of their
// rune multiset intersection. That overlap is kept for a sliding window, and only
// windows whose bound beats the best score so far are passed to Levenshtein.
func (h haystack) ratio(needle []rune, floor int) int {
	m := len(needle)
	if m == 0 || m > len(h.runes) {
		return 0
	}
	if strings.Contains(h.text, string(needle)) {
		return 100
	}

	want := make(map[rune]int, m)
	for _, r := range needle {
		want[r]++
	}
	have := make(map[rune]int, m)
	overlap := 0
	add := func(r rune) {
		if c, ok := want[r]; ok {
			have[r]++
			if have[r] <= c {
				overlap++
			}
		}
	}
	remove := func(r rune) {
		if c, ok := want[r]; ok {
			if have[r] <= c {
				overlap--
			}
			have[r]--
		}
	}

	for _, r := range h.runes[:m] {
		add(r)
	}

	pattern := string(needle)
	best := 0
	for i := 0; ; i++ {
		bound := similarity(m-overlap, m)
		if bound > best && bound >= floor {
			score := similarity(levenshtein.ComputeDistance(pattern, string(h.runes[i:i+m])), m)
			if score > best {
				best = score
				if best == 100 || (floor > 0 && best >= floor) {
					return best
				}
			}
		}
		if i+m >= len(h.runes) {
			break
		}
		remove(h.runes[i])
		add(h.runes[i+m])
	}
	return best
}

func similarity(dist, length int) int {
	return int(math.Round(100 * (1 - float64(dist)/float64(length))))
}
