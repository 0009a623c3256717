package embedder

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase tokens on any run of characters
// that is not a letter or digit. It is shared by the hash embedder and
// by snippet extraction so both agree on what a "token" is.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
