// Package rank scores sections against the persona query with batched
// TF-IDF vector spaces and assigns the global importance order.
package rank

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/nlp"
	"github.com/docsense/docsense/pkg/utils"
)

// ErrEmptyVocabulary is returned when a batch yields no usable terms.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Vectorizer fits a TF-IDF vector space over one batch of pseudo-documents
// plus the query, and measures cosine similarity in it. Each batch gets its
// own space so the term-document matrix never spans the whole corpus.
type Vectorizer struct {
	maxFeatures int
	maxDocFreq  float64
	res         *nlp.Resources
}

// NewVectorizer creates a Vectorizer. maxFeatures caps the vocabulary;
// maxDocFreq drops terms present in more than that fraction of the batch.
func NewVectorizer(maxFeatures int, maxDocFreq float64, res *nlp.Resources) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 500
	}
	if maxDocFreq <= 0 || maxDocFreq > 1 {
		maxDocFreq = 0.95
	}
	return &Vectorizer{maxFeatures: maxFeatures, maxDocFreq: maxDocFreq, res: res}
}

// Similarities fits the space over docs plus query and returns the cosine
// similarity of every doc vector against the query vector. Inputs are
// already-normalized pseudo-documents (whitespace-separated tokens).
// Returns ErrEmptyVocabulary when no term survives filtering.
func (v *Vectorizer) Similarities(docs []string, query string) ([]float64, error) {
	all := make([][]string, 0, len(docs)+1)
	for _, d := range docs {
		all = append(all, v.terms(d))
	}
	all = append(all, v.terms(query))

	// Document frequencies and corpus term counts over batch+query.
	df := make(map[string]int)
	total := make(map[string]int)
	for _, terms := range all {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			total[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	n := len(all)
	maxDF := v.maxDocFreq * float64(n)
	candidates := make([]string, 0, len(df))
	for t, f := range df {
		if float64(f) <= maxDF {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Vocabulary cap: most frequent terms first, alphabetical on ties,
	// so the space is deterministic for a given batch.
	sort.Slice(candidates, func(i, j int) bool {
		if total[candidates[i]] != total[candidates[j]] {
			return total[candidates[i]] > total[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > v.maxFeatures {
		candidates = candidates[:v.maxFeatures]
	}
	vocab := make(map[string]int, len(candidates))
	for i, t := range candidates {
		vocab[t] = i
	}

	// Smoothed IDF per vocabulary slot.
	idf := make([]float64, len(candidates))
	for i, t := range candidates {
		idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}

	vectors := make([][]float32, n)
	for d, terms := range all {
		vec := make([]float32, len(candidates))
		for _, t := range terms {
			if i, ok := vocab[t]; ok {
				vec[i]++
			}
		}
		for i := range vec {
			vec[i] *= float32(idf[i])
		}
		utils.NormalizeL2(vec)
		vectors[d] = vec
	}

	queryVec := vectors[n-1]
	sims := make([]float64, len(docs))
	for i := range docs {
		sims[i] = utils.InnerProduct(vectors[i], queryVec)
	}
	return sims, nil
}

// terms tokenizes a normalized pseudo-document into unigrams and bigrams.
// Stopwords and single-character tokens (a suffix strip can reduce a short
// word to one) are removed before bigram construction.
func (v *Vectorizer) terms(doc string) []string {
	words := strings.Fields(doc)
	kept := words[:0:len(words)]
	for _, w := range words {
		if utf8.RuneCountInString(w) < 2 || v.res.IsStopword(w) {
			continue
		}
		kept = append(kept, w)
	}
	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
