package consent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	keywordsPerPrimaryClass = 3
	keywordsFromAmbiguous   = 2
	maxKeywords             = 5
)

// MatchCounts holds the number of pattern matches found per consent class.
type MatchCounts struct {
	Explicit  int
	Negative  int
	Ambiguous int
}

// Total returns the combined match count across all classes.
func (c MatchCounts) Total() int {
	return c.Explicit + c.Negative + c.Ambiguous
}

// MatchResult carries per-class counts and the patterns that produced them,
// in lexicon order.
type MatchResult struct {
	Counts           MatchCounts
	ExplicitSamples  []string
	NegativeSamples  []string
	AmbiguousSamples []string
}

// Match scans message against every pattern in every class of the lexicon.
// Matching is case-insensitive and boundary-aware: a pattern only counts
// when its neighbors are not letters or digits, so "no" never matches inside
// "conocer". No pattern short-circuits another; a message may score in more
// than one class simultaneously.
func Match(lex *Lexicon, message string) MatchResult {
	text := strings.ToLower(message)

	var r MatchResult
	r.Counts.Explicit, r.ExplicitSamples = matchClass(text, lex.Affirmative)
	r.Counts.Negative, r.NegativeSamples = matchClass(text, lex.Negative)
	r.Counts.Ambiguous, r.AmbiguousSamples = matchClass(text, lex.Ambiguous)
	return r
}

// Keywords extracts up to 3 samples each from the explicit and negative
// classes and 2 from the ambiguous class, deduplicates the union, and
// truncates to 5 total, preserving first-seen order.
func (r MatchResult) Keywords() []string {
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})

	take := func(samples []string, limit int) {
		for i, s := range samples {
			if i >= limit || len(keywords) >= maxKeywords {
				return
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			keywords = append(keywords, s)
		}
	}

	take(r.ExplicitSamples, keywordsPerPrimaryClass)
	take(r.NegativeSamples, keywordsPerPrimaryClass)
	take(r.AmbiguousSamples, keywordsFromAmbiguous)

	return keywords
}

func matchClass(text string, patterns []string) (int, []string) {
	count := 0
	var samples []string

	for _, pattern := range patterns {
		n := countOccurrences(text, strings.ToLower(pattern))
		if n > 0 {
			count += n
			samples = append(samples, pattern)
		}
	}

	return count, samples
}

// countOccurrences counts non-overlapping boundary-delimited occurrences of
// pattern in text.
func countOccurrences(text, pattern string) int {
	if pattern == "" {
		return 0
	}

	count := 0
	offset := 0

	for {
		idx := strings.Index(text[offset:], pattern)
		if idx < 0 {
			return count
		}

		start := offset + idx
		end := start + len(pattern)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			offset = end
		} else {
			offset = start + 1
		}
	}
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
