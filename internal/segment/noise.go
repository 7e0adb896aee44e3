// Package segment turns page text into titled sections: a noise filter and
// heading classifier feed a streaming segmenter with a single open accumulator.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// noiseRules are evaluated in order against the lowercased line.
// Keeping them in a table keeps precedence auditable.
var noiseRules = []struct {
	name string
	re   *regexp.Regexp
}{
	{"boilerplate", regexp.MustCompile(`copyright|©|page \d+|version|www\.|http`)},
	{"dot_leader", regexp.MustCompile(`[.\-_]{4,}`)},
	{"timestamp", regexp.MustCompile(`^\d{1,2}:\d{2}|^\d{1,2}/\d{1,2}/\d{2,4}`)},
	{"no_word_chars", regexp.MustCompile(`^[^\w\s]*$`)},
}

// RepetitionThreshold returns the occurrence count at which a line is
// considered a repeating header or footer.
func RepetitionThreshold(pageCount int) int {
	t := pageCount / 3
	if t < 2 {
		t = 2
	}
	return t
}

// NoiseFilter drops headers, footers, boilerplate, and form-block lines
// before heading classification. It is a pure predicate.
type NoiseFilter struct {
	repeated map[string]struct{}
}

// NewNoiseFilter creates a filter with the given set of repeated lines
// (trimmed, occurring at least RepetitionThreshold times in the document).
func NewNoiseFilter(repeated map[string]struct{}) *NoiseFilter {
	if repeated == nil {
		repeated = make(map[string]struct{})
	}
	return &NoiseFilter{repeated: repeated}
}

// IsNoise reports whether line should be removed before classification.
// shortLinesNearby is the count of short lines within a ±3-line window.
func (f *NoiseFilter) IsNoise(line string, shortLinesNearby int) bool {
	trimmed := strings.TrimSpace(line)
	if _, ok := f.repeated[trimmed]; ok {
		return true
	}
	lower := strings.ToLower(trimmed)
	if lower == "" || utf8.RuneCountInString(lower) < 3 {
		return true
	}
	for _, rule := range noiseRules {
		if rule.re.MatchString(lower) {
			return true
		}
	}
	// Address and form blocks cluster many short lines together.
	if shortLinesNearby >= 4 {
		return true
	}
	return false
}

// ShortLinesNearby counts non-empty lines of at most 6 words within a
// ±3-line window around idx, excluding idx itself.
func ShortLinesNearby(lines []string, idx int) int {
	start := idx - 3
	if start < 0 {
		start = 0
	}
	end := idx + 4
	if end > len(lines) {
		end = len(lines)
	}
	count := 0
	for i := start; i < end; i++ {
		if i == idx {
			continue
		}
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if len(strings.Fields(lines[i])) <= 6 {
			count++
		}
	}
	return count
}
