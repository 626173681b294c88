package graphrag

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTermLength is the shortest term, in runes, that is looked up.
const MinTermLength = 2

// ExtractTerms splits query on whitespace and returns the candidate entity
// names in left-to-right order. Surrounding punctuation is trimmed
// ("of?" becomes "of") and terms shorter than MinTermLength are dropped.
// Duplicates are kept. There is no case folding, stemming or stopword list,
// so "Paris" never matches an entity named "paris".
func ExtractTerms(query string) []string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		term := strings.TrimFunc(field, isTrimmable)
		if utf8.RuneCountInString(term) < MinTermLength {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// distinct returns terms without repeats, keeping first occurrences.
func distinct(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
