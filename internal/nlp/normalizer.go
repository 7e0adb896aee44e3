package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalizer turns raw text into the token stream used for vector-space
// comparison. The rule order is fixed: lowercase, strip punctuation, split,
// drop short tokens and stopwords, then suffix-strip. Both the persona query
// and every section pseudo-document go through the same pipeline, so the
// exact order matters for term matching.
type Normalizer struct {
	res *Resources
}

// NewNormalizer creates a Normalizer backed by the given resource bundle.
func NewNormalizer(res *Resources) *Normalizer {
	return &Normalizer{res: res}
}

// Normalize returns the space-joined filtered tokens of text.
// It is a pure function of its input and holds no state between calls.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 || n.res.IsStopword(w) {
			continue
		}
		filtered = append(filtered, stem(w))
	}
	return strings.Join(filtered, " ")
}

// stem applies the crude suffix stripping in fixed precedence:
// "ing" before "ed" before a trailing "s" on tokens longer than 3 characters.
func stem(w string) string {
	switch {
	case strings.HasSuffix(w, "ing"):
		return w[:len(w)-3]
	case strings.HasSuffix(w, "ed"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && utf8.RuneCountInString(w) > 3:
		return w[:len(w)-1]
	}
	return w
}
