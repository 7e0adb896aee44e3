package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/reader"
)

// Strategy selects how headings are recognized.
type Strategy int

const (
	// StrategyAuto picks typographic when the document carries font metadata,
	// line-based otherwise.
	StrategyAuto Strategy = iota
	// StrategyTypographic uses font size and bold flags plus text patterns.
	StrategyTypographic
	// StrategyLine uses noise-filtered line shape heuristics only.
	StrategyLine
)

// typographicPatterns are tried in order once font signals did not decide.
var typographicPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"decimal", regexp.MustCompile(`^\d+\.?\s+[A-Z]`)},
	{"decimal_nested", regexp.MustCompile(`^\d+\.\d+\.?\s+[A-Z]`)},
	{"roman", regexp.MustCompile(`^[IVX]+\.?\s+[A-Z]`)},
	{"caps_run", regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`)},
	{"chapter", regexp.MustCompile(`^Chapter\s+\d+`)},
	{"section", regexp.MustCompile(`^Section\s+\d+`)},
	{"part", regexp.MustCompile(`^Part\s+[IVX\d]+`)},
	{"appendix", regexp.MustCompile(`^Appendix\s+[A-Z]?`)},
	{"numbered_word", regexp.MustCompile(`^\d+\s+[A-Z][a-z]+`)},
	{"word_colon", regexp.MustCompile(`^[A-Z][a-z]+:$`)},
}

var (
	numberedHeadingRe = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+[A-Z]`)
	addressShapeRe    = regexp.MustCompile(`^\d+\s+[A-Z\s]+$|^[A-Z\s]+,\s*[A-Z]{2}`)
	appendixRe        = regexp.MustCompile(`(?i)^appendix\s+[a-c]`)
)

// instructionWords disqualify an all-caps line from being a heading;
// forms use all-caps for imperatives, not titles.
var instructionWords = []string{"required", "please", "visit", "fill", "complete"}

// TypographicHeading reports whether a text unit with font metadata starts a
// section. A large or bold face decides immediately; otherwise the pattern
// family, the word-capitalization heuristic, and a residual short-line rule
// are tried in that order.
func TypographicHeading(text string, fontSize float64, flags uint32) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if fontSize >= 14 || flags&reader.FlagBold != 0 {
		return true
	}
	for _, p := range typographicPatterns {
		if p.re.MatchString(trimmed) {
			return true
		}
	}
	words := strings.Fields(trimmed)
	if len(words) >= 2 {
		capitalized := 0
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if unicode.IsUpper(r) {
				capitalized++
			}
		}
		if float64(capitalized)/float64(len(words)) > 0.7 {
			return true
		}
	}
	if utf8.RuneCountInString(trimmed) < 100 && !strings.HasSuffix(trimmed, ".") {
		r, _ := utf8.DecodeRuneInString(trimmed)
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// LineHeading reports whether a noise-filtered line starts a section.
// Rules run in priority order; the first match wins.
func LineHeading(line string, shortLinesNearby int) bool {
	words := strings.Fields(line)
	if len(words) > 15 || utf8.RuneCountInString(line) > 120 {
		return false
	}
	if strings.HasSuffix(line, ".") && len(words) > 5 {
		return false
	}
	if shortLinesNearby >= 4 {
		return false
	}

	// 1. Numbered section prefix: strongest signal, always wins.
	if numberedHeadingRe.MatchString(line) {
		return true
	}

	// 2. All-caps line of 2-8 words, excluding instructions and addresses.
	if isUpperLine(line) && len(words) >= 2 && len(words) <= 8 {
		lower := strings.ToLower(line)
		instructional := false
		for _, w := range instructionWords {
			if strings.Contains(lower, w) {
				instructional = true
				break
			}
		}
		if !instructional && !addressShapeRe.MatchString(line) {
			return true
		}
	}

	// 3. Title-case line of 3-10 words not ending in a colon.
	if isTitleLine(line) && len(words) >= 3 && len(words) <= 10 && !strings.HasSuffix(line, ":") {
		return true
	}

	// 4. Appendix prefix.
	if appendixRe.MatchString(line) {
		return true
	}

	// 5. High but not total uppercase ratio. Fully all-caps lines were already
	// decided by rule 2 and stay excluded here.
	total := utf8.RuneCountInString(line)
	if total > 0 && !isUpperLine(line) {
		upper := 0
		for _, r := range line {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		ratio := float64(upper) / float64(total)
		if ratio >= 0.6 && ratio < 1.0 && len(words) <= 10 {
			return true
		}
	}

	// 6. Colon-terminated short line.
	if strings.HasSuffix(line, ":") && len(words) >= 2 && len(words) <= 6 {
		return true
	}

	return false
}

var (
	levelFourRe  = regexp.MustCompile(`^\d+(\.\d+){3,}`)
	levelThreeRe = regexp.MustCompile(`^\d+(\.\d+){2}`)
	levelTwoRe   = regexp.MustCompile(`^\d+\.\d+`)
	levelOneRe   = regexp.MustCompile(`^\d+\.?`)
)

// HeadingLevel assigns a structural level 1-4 to cleaned heading text.
// Only the line-based strategy produces meaningful levels; typographic
// headings are all treated as level 1 by callers.
func HeadingLevel(text string) int {
	t := strings.TrimSpace(text)
	switch {
	case levelFourRe.MatchString(t):
		return 4
	case levelThreeRe.MatchString(t):
		return 3
	case levelTwoRe.MatchString(t):
		return 2
	case levelOneRe.MatchString(t):
		return 1
	case appendixRe.MatchString(t):
		return 2
	}
	lower := strings.ToLower(t)
	if strings.HasPrefix(lower, "for each") || strings.HasPrefix(lower, "for the") {
		return 4
	}
	if strings.HasSuffix(t, ":") && len(strings.Fields(t)) <= 5 {
		return 3
	}
	return 1
}

var (
	collapseSpaceRe  = regexp.MustCompile(`\s+`)
	trailingLeaderRe = regexp.MustCompile(`[.\-_]{3,}$`)
	trailingPageRe   = regexp.MustCompile(`\s+\d+$`)
	trailingDecorRe  = regexp.MustCompile(`[^\w\s\-:()]+$`)
)

// CleanHeading normalizes heading text: collapses whitespace and strips
// trailing dot leaders, page-number artifacts, and decoration runs.
func CleanHeading(text string) string {
	t := collapseSpaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	t = trailingLeaderRe.ReplaceAllString(t, "")
	t = trailingPageRe.ReplaceAllString(t, "")
	t = trailingDecorRe.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// isUpperLine reports whether s has at least one cased character and no
// lowercase ones.
func isUpperLine(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitleLine reports whether s is title-cased: uppercase characters only
// start cased runs, lowercase characters only continue them.
func isTitleLine(s string) bool {
	hasCased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}
