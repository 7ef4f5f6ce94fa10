package search

import (
	"regexp"
	"strings"
)

// numericOnly matches strings of two or more digits. Such inputs look like
// entity ids rather than title words and are excluded from text search.
var numericOnly = regexp.MustCompile(`^[0-9]{2,}$`)

// Tokenizer normalizes free-text title queries into sanitized keywords.
// Disallowed characters are silently stripped, never rejected; a query that
// sanitizes to nothing simply produces no text filter.
type Tokenizer struct {
	maxLength  int
	disallowed *regexp.Regexp
}

// NewTokenizer builds a tokenizer bounded to maxLength runes that keeps only
// characters from the allowed set. allowedChars is a regexp character-class
// body, e.g. "a-zA-Z0-9ąĄćĆęĘłŁńŃóÓśŚżŻźŹ ".
func NewTokenizer(maxLength int, allowedChars string) *Tokenizer {
	return &Tokenizer{
		maxLength:  maxLength,
		disallowed: regexp.MustCompile("[^" + allowedChars + "]+"),
	}
}

// Tokenize splits a raw title query into lowercase keyword tokens.
//
// The minimum-length and numeric-id guards apply at both levels: the whole
// string is dropped when shorter than two runes or purely numeric, and each
// token is dropped under the same rules after sanitization. Both behaviours
// are pinned by tests.
func (t *Tokenizer) Tokenize(raw string) []string {
	// Truncate before any regex work so oversized inputs stay cheap.
	runes := []rune(raw)
	if len(runes) > t.maxLength {
		runes = runes[:t.maxLength]
	}

	bounded := string(runes)
	if len(runes) < 2 || numericOnly.MatchString(bounded) {
		return nil
	}

	cleaned := strings.ToLower(t.disallowed.ReplaceAllString(bounded, ""))

	var tokens []string
	for _, token := range strings.Split(cleaned, " ") {
		if len([]rune(token)) < 2 {
			continue
		}
		if numericOnly.MatchString(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
