package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/models"
	"github.com/docsense/docsense/internal/reader"
	"go.uber.org/zap"
)

// Source provides independently readable pages. A page error must not abort
// the document; the segmenter logs it and moves on.
type Source interface {
	PageCount() int
	Page(n int) ([]reader.Line, error)
}

// Config carries the segmenter limits.
type Config struct {
	// ChunkSize is the page window read per iteration to bound peak memory.
	ChunkSize int
	// MinSectionChars is the trimmed content length a section must exceed to be emitted.
	MinSectionChars int
	// MaxSectionWords forces a mid-document split once exceeded.
	MaxSectionWords int
	// Strategy selects the heading recognition strategy.
	Strategy Strategy
}

// Segmenter streams document pages into completed Section values.
// It maintains exactly one open accumulator at a time.
type Segmenter struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Segmenter. Zero config values take the standard defaults.
func New(cfg Config, logger *zap.Logger) *Segmenter {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 25
	}
	if cfg.MinSectionChars <= 0 {
		cfg.MinSectionChars = 50
	}
	if cfg.MaxSectionWords <= 0 {
		cfg.MaxSectionWords = 2000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{cfg: cfg, logger: logger}
}

// Segment reads src page-window by page-window and calls emit for every
// completed Section, in document order. docName identifies the source
// document on every emitted Section.
func (s *Segmenter) Segment(src Source, docName string, emit func(*models.Section)) error {
	pageCount := src.PageCount()
	if pageCount == 0 {
		return nil
	}

	strategy := s.cfg.Strategy
	if strategy == StrategyAuto {
		strategy = detectStrategy(src, pageCount)
	}

	var filter *NoiseFilter
	if strategy == StrategyLine {
		filter = NewNoiseFilter(RepeatedLines(src))
	}

	var open *models.Section
	for start := 1; start <= pageCount; start += s.cfg.ChunkSize {
		end := start + s.cfg.ChunkSize - 1
		if end > pageCount {
			end = pageCount
		}
		for p := start; p <= end; p++ {
			lines, err := src.Page(p)
			if err != nil {
				s.logger.Warn("page skipped",
					zap.String("document", docName),
					zap.Int("page", p),
					zap.Error(err))
				continue
			}
			open = s.processPage(lines, strategy, filter, docName, p, open, emit)
		}
		// Chunk-local page data falls out of scope here.
	}

	s.closeSection(open, emit)
	return nil
}

// processPage runs one page's lines through the classifier and returns the
// (possibly replaced) open accumulator.
func (s *Segmenter) processPage(lines []reader.Line, strategy Strategy, filter *NoiseFilter, docName string, page int, open *models.Section, emit func(*models.Section)) *models.Section {
	if strategy == StrategyLine {
		texts := make([]string, len(lines))
		for i := range lines {
			texts[i] = lines[i].Text
		}
		for i, text := range texts {
			nearby := ShortLinesNearby(texts, i)
			if filter.IsNoise(text, nearby) {
				continue
			}
			if LineHeading(text, nearby) {
				open = s.startSection(open, docName, page, text, emit)
			} else {
				open = s.appendContent(open, text, emit)
			}
		}
		return open
	}

	for _, ln := range lines {
		if TypographicHeading(ln.Text, ln.FontSize, ln.Flags) {
			open = s.startSection(open, docName, page, ln.Text, emit)
		} else {
			open = s.appendContent(open, ln.Text, emit)
		}
	}
	return open
}

// startSection closes the open accumulator under the minimum-length rule and
// opens a fresh Section for the heading. A heading whose cleaned title comes
// out empty is treated as continuation text instead.
func (s *Segmenter) startSection(open *models.Section, docName string, page int, heading string, emit func(*models.Section)) *models.Section {
	title := CleanHeading(heading)
	if title == "" {
		return s.appendContent(open, heading, emit)
	}
	s.closeSection(open, emit)
	return models.NewSection(docName, page, title)
}

// appendContent adds a non-heading unit to the open accumulator. Content
// seen before the first heading has no section to belong to and is dropped.
// Exceeding the word limit emits the section unconditionally and opens a
// successor carrying the same title suffixed "(continued)" and the same page.
func (s *Segmenter) appendContent(open *models.Section, text string, emit func(*models.Section)) *models.Section {
	if open == nil {
		return nil
	}
	if open.Content != "" {
		open.Content += " "
	}
	open.Content += text
	open.WordCount += len(strings.Fields(text))
	if open.WordCount > s.cfg.MaxSectionWords {
		emit(open)
		return models.NewSection(open.Document, open.PageNumber, open.Title+" (continued)")
	}
	return open
}

// closeSection emits the accumulator if its trimmed content exceeds the
// minimum length; shorter accumulators are discarded as false-positive
// headings with no body.
func (s *Segmenter) closeSection(open *models.Section, emit func(*models.Section)) {
	if open == nil {
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(open.Content)) > s.cfg.MinSectionChars {
		emit(open)
	}
}

// detectStrategy inspects the first few readable pages: any positioned run
// with a font size means typographic signals are available.
func detectStrategy(src Source, pageCount int) Strategy {
	checked := 0
	for p := 1; p <= pageCount && checked < 3; p++ {
		lines, err := src.Page(p)
		if err != nil || len(lines) == 0 {
			continue
		}
		checked++
		for _, ln := range lines {
			if ln.FontSize > 0 {
				return StrategyTypographic
			}
		}
	}
	return StrategyLine
}

// RepeatedLines counts trimmed line occurrences across the whole document and
// returns those meeting the repetition threshold (headers and footers).
// Pages that fail to read are skipped; the main pass logs them.
func RepeatedLines(src Source) map[string]struct{} {
	pageCount := src.PageCount()
	counts := make(map[string]int)
	for p := 1; p <= pageCount; p++ {
		lines, err := src.Page(p)
		if err != nil {
			continue
		}
		for _, ln := range lines {
			if t := strings.TrimSpace(ln.Text); t != "" {
				counts[t]++
			}
		}
	}
	threshold := RepetitionThreshold(pageCount)
	repeated := make(map[string]struct{})
	for line, c := range counts {
		if c >= threshold {
			repeated[line] = struct{}{}
		}
	}
	return repeated
}
