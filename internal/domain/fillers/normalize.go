package fillers

import (
	"strings"
	"unicode"
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lower-cases a transcribed word and strips punctuation so it can be
// matched against the vocabulary. Inner whitespace is left alone.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsPunct(r) || strings.ContainsRune(asciiPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
