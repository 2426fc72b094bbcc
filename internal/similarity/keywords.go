package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinTokenLength is the shortest token that counts as a keyword
const DefaultMinTokenLength = 3

// defaultStopWords are Portuguese function words ignored by keyword overlap
var defaultStopWords = []string{
	// articles
	"o", "a", "os", "as", "um", "uma", "uns", "umas",
	// prepositions and contractions
	"de", "do", "da", "dos", "das", "em", "no", "na", "nos", "nas",
	"ao", "aos", "à", "às", "pelo", "pela", "pelos", "pelas", "num", "numa",
	"para", "pra", "por", "com", "sem", "sob", "sobre", "entre", "até", "após", "desde",
	// conjunctions
	"e", "ou", "mas", "que", "se", "porque", "pois", "quando", "como", "onde", "enquanto",
	// pronouns
	"eu", "tu", "ele", "ela", "nós", "vós", "eles", "elas", "você", "vocês",
	"me", "te", "lhe", "lhes", "meu", "minha", "meus", "minhas", "seu", "sua", "seus", "suas",
	"este", "esta", "estes", "estas", "esse", "essa", "esses", "essas",
	"isto", "isso", "aquele", "aquela", "aquilo",
	// adverbs and auxiliaries
	"não", "sim", "mais", "menos", "muito", "já", "também", "só", "ainda",
	"foi", "ser", "está", "estão", "são", "tem", "têm", "há",
}

// StopWords is a set of lower-case tokens excluded from keyword comparison
type StopWords map[string]struct{}

// NewStopWords builds a stop-word set, lower-casing every entry
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// DefaultStopWords returns a fresh copy of the built-in Portuguese stop-word set
func DefaultStopWords() StopWords {
	return NewStopWords(defaultStopWords...)
}

// With returns a new set containing s plus the extra words
func (s StopWords) With(extra ...string) StopWords {
	merged := make(StopWords, len(s)+len(extra))
	for w := range s {
		merged[w] = struct{}{}
	}
	for w := range NewStopWords(extra...) {
		merged[w] = struct{}{}
	}
	return merged
}

// Contains reports whether word is a stop word
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Keywords extracts the set of significant tokens from text.
// Text is lower-cased, every non-word character becomes a separator, and
// tokens shorter than minLen runes or present in stop are discarded.
func Keywords(text string, minLen int, stop StopWords) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	keywords := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen || stop.Contains(f) {
			continue
		}
		keywords[f] = struct{}{}
	}
	return keywords
}

// HasCommonKeywords reports whether a and b share at least one keyword
// using the default token length and stop-word list
func HasCommonKeywords(a, b string) bool {
	return hasCommonKeywords(a, b, DefaultMinTokenLength, DefaultStopWords())
}

func hasCommonKeywords(a, b string, minLen int, stop StopWords) bool {
	ka := Keywords(a, minLen, stop)
	if len(ka) == 0 {
		return false
	}
	for k := range Keywords(b, minLen, stop) {
		if _, ok := ka[k]; ok {
			return true
		}
	}
	return false
}

// isWordRune treats letters (accented included), digits and underscore as word characters
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
