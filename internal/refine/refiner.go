// Package refine produces short extractive excerpts from top-ranked sections.
package refine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/models"
	"github.com/docsense/docsense/internal/nlp"
	"github.com/docsense/docsense/pkg/utils"
)

const (
	// maxRefinedChars bounds the excerpt; truncation keeps 297 chars plus ellipsis.
	maxRefinedChars = 300
	// minRefinedChars is the floor below which the excerpt falls back to raw content.
	minRefinedChars = 50
	// fallbackChars is how much raw content the fallback excerpt keeps.
	fallbackChars = 200
)

// Refiner builds Subsections from ranked sections.
type Refiner struct {
	res *nlp.Resources
}

// NewRefiner creates a Refiner backed by the given resource bundle.
func NewRefiner(res *nlp.Resources) *Refiner {
	return &Refiner{res: res}
}

// Refine produces a Subsection for each of the first topK sections that has
// content to summarize. Sections must already be in rank order.
func (r *Refiner) Refine(sections []*models.Section, topK int) []*models.Subsection {
	if topK > len(sections) {
		topK = len(sections)
	}
	subs := make([]*models.Subsection, 0, topK)
	for _, sec := range sections[:topK] {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}
		text, ok := r.refineText(sec)
		if !ok {
			continue
		}
		subs = append(subs, &models.Subsection{
			Document:       sec.Document,
			PageNumber:     sec.PageNumber,
			Title:          sec.Title,
			ImportanceRank: sec.ImportanceRank,
			RefinedText:    text,
		})
	}
	return subs
}

// refineText selects up to four key sentences, joins the first three, and
// applies the length bounds with the raw-content fallback.
func (r *Refiner) refineText(sec *models.Section) (string, bool) {
	sents, ok := r.res.Sentences(sec.Content)
	if !ok {
		sents = periodSplit(sec.Content)
	}
	if len(sents) == 0 {
		return "", false
	}

	key := []string{sents[0]}

	// Score sentences at ordinal positions 2-6 by title-word overlap, then
	// word count, both descending.
	titleWords := wordSet(strings.ToLower(sec.Title))
	type scored struct {
		text    string
		overlap int
		words   int
	}
	var candidates []scored
	for i := 1; i < len(sents) && i < 6; i++ {
		s := sents[i]
		overlap := 0
		for w := range wordSet(strings.ToLower(s)) {
			if _, ok := titleWords[w]; ok {
				overlap++
			}
		}
		candidates = append(candidates, scored{text: s, overlap: overlap, words: len(strings.Fields(s))})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].words > candidates[j].words
	})
	for i := 0; i < len(candidates) && i < 2; i++ {
		s := candidates[i].text
		if !contains(key, s) && utf8.RuneCountInString(strings.TrimSpace(s)) > 20 {
			key = append(key, s)
		}
	}

	// Fill with the longest of the remaining sentences.
	var remaining []string
	for _, s := range sents {
		if !contains(key, s) {
			remaining = append(remaining, s)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return len(strings.Fields(remaining[i])) > len(strings.Fields(remaining[j]))
	})
	for i := 0; i < len(remaining) && i < 2; i++ {
		s := remaining[i]
		if len(key) < 4 && utf8.RuneCountInString(strings.TrimSpace(s)) > 30 {
			key = append(key, s)
		}
	}

	// Only the first three selected sentences make the excerpt, in the order
	// they were appended.
	if len(key) > 3 {
		key = key[:3]
	}
	refined := strings.Join(key, " ")
	if utf8.RuneCountInString(refined) > maxRefinedChars {
		refined = utils.Truncate(refined, maxRefinedChars-3)
	}
	if utf8.RuneCountInString(strings.TrimSpace(refined)) < minRefinedChars {
		refined = utils.Truncate(sec.Content, fallbackChars)
	}
	return strings.TrimSpace(refined), true
}

// periodSplit is the tokenizer fallback: split on literal periods and keep
// fragments longer than 10 characters.
func periodSplit(content string) []string {
	var out []string
	for _, frag := range strings.Split(content, ".") {
		t := strings.TrimSpace(frag)
		if utf8.RuneCountInString(t) > 10 {
			out = append(out, t)
		}
	}
	return out
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
