package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns the normalized edit-distance similarity of a and b in [0,1].
// Both strings are case-folded and trimmed; the distance is divided by the
// rune length of the longer string.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	dist := levenshtein.ComputeDistance(a, b)

	return 1.0 - float64(dist)/float64(maxLen)
}
