// Package nlp provides the text resources and normalization shared by the
// ranking and refinement stages.
package nlp

import (
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// fallbackStopwords is used when the English stopword resource cannot be loaded.
var fallbackStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "did", "do",
	"does", "doing", "down", "during", "each", "few", "for", "from",
	"further", "had", "has", "have", "having", "he", "her", "here", "hers",
	"him", "his", "how", "i", "if", "in", "into", "is", "it", "its", "just",
	"me", "more", "most", "my", "no", "nor", "not", "now", "of", "off", "on",
	"once", "only", "or", "other", "our", "ours", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "then", "there", "these", "they", "this",
	"those", "through", "to", "too", "under", "until", "up", "very", "was",
	"we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "you", "your", "yours",
}

// Resources is the immutable bundle of stopwords and the sentence tokenizer.
// It is built once per process and passed into the components that need it.
type Resources struct {
	stopwords map[string]struct{}
	tokenizer sentences.SentenceTokenizer
}

// LoadResources builds the resource bundle. The stopword set comes from the
// English list shipped with the analysis library; when that cannot be parsed
// the fixed fallback list is used. The sentence tokenizer may be absent, in
// which case Sentences reports unavailability and callers fall back.
func LoadResources() *Resources {
	r := &Resources{stopwords: make(map[string]struct{})}

	tm := analysis.NewTokenMap()
	if err := tm.LoadBytes(en.EnglishStopWords); err == nil && len(tm) > 0 {
		for w := range tm {
			r.stopwords[w] = struct{}{}
		}
	} else {
		for _, w := range fallbackStopwords {
			r.stopwords[w] = struct{}{}
		}
	}

	if tok, err := english.NewSentenceTokenizer(nil); err == nil {
		r.tokenizer = tok
	}
	return r
}

// IsStopword reports whether the lowercase token w is a stopword.
func (r *Resources) IsStopword(w string) bool {
	_, ok := r.stopwords[w]
	return ok
}

// StopwordCount returns the size of the resident stopword set.
func (r *Resources) StopwordCount() int {
	return len(r.stopwords)
}

// Sentences splits text into sentences. ok is false when no sentence
// tokenizer is available; callers must then apply their own fallback split.
func (r *Resources) Sentences(text string) (out []string, ok bool) {
	if r.tokenizer == nil {
		return nil, false
	}
	for _, s := range r.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	return out, true
}
