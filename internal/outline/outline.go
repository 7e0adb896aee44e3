// Package outline extracts a document title and heading outline from a PDF,
// using the line-based heading classifier over noise-filtered text.
package outline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/segment"
)

// Entry is one heading in the outline. Page numbers are zero-based.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the extracted structure of one document.
type Outline struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"outline"`
}

var titleNoiseRe = regexp.MustCompile(`copyright|page|version|www`)

// Extract walks every page of src and returns the title plus the heading
// outline. Documents that look like forms (few unique lines) yield an empty
// outline.
func Extract(src segment.Source) (*Outline, error) {
	pageCount := src.PageCount()
	pages := make([][]string, 0, pageCount)
	var all []string
	for p := 1; p <= pageCount; p++ {
		lines, err := src.Page(p)
		if err != nil {
			pages = append(pages, nil)
			continue
		}
		texts := make([]string, 0, len(lines))
		for _, ln := range lines {
			if t := strings.TrimSpace(ln.Text); t != "" {
				texts = append(texts, t)
			}
		}
		pages = append(pages, texts)
		all = append(all, texts...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no text extracted")
	}

	counts := make(map[string]int)
	for _, line := range all {
		counts[line]++
	}
	threshold := segment.RepetitionThreshold(pageCount)
	repeated := make(map[string]struct{})
	for line, c := range counts {
		if c >= threshold {
			repeated[line] = struct{}{}
		}
	}

	title := extractTitle(pages[0], repeated)

	// Documents with very few unique lines are likely forms.
	unique := make(map[string]struct{}, len(all))
	for _, line := range all {
		unique[line] = struct{}{}
	}
	if float64(len(unique))/float64(len(all)) < 0.3 && len(all) < 50 {
		return &Outline{Title: title, Entries: []Entry{}}, nil
	}

	filter := segment.NewNoiseFilter(repeated)
	entries := []Entry{}
	seen := make(map[string]struct{})
	for pageIdx, lines := range pages {
		for lineIdx, line := range lines {
			nearby := segment.ShortLinesNearby(lines, lineIdx)
			if filter.IsNoise(line, nearby) {
				continue
			}
			if !segment.LineHeading(line, nearby) {
				continue
			}
			clean := segment.CleanHeading(line)
			if clean == "" {
				continue
			}
			lower := strings.ToLower(clean)
			if lower == strings.ToLower(title) {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			entries = append(entries, Entry{
				Level: fmt.Sprintf("H%d", segment.HeadingLevel(clean)),
				Text:  clean,
				Page:  pageIdx,
			})
			seen[lower] = struct{}{}
		}
	}
	return &Outline{Title: title, Entries: entries}, nil
}

// extractTitle picks the first plausible title line from the top of page one:
// 5-100 characters, at most 15 words, not a repeating header, no boilerplate.
func extractTitle(firstPage []string, repeated map[string]struct{}) string {
	for i, line := range firstPage {
		if i >= 8 {
			break
		}
		clean := strings.TrimSpace(line)
		n := utf8.RuneCountInString(clean)
		if n <= 5 || n >= 100 {
			continue
		}
		if _, rep := repeated[clean]; rep {
			continue
		}
		if len(strings.Fields(clean)) > 15 {
			continue
		}
		if titleNoiseRe.MatchString(strings.ToLower(clean)) {
			continue
		}
		return segment.CleanHeading(clean)
	}
	return ""
}
