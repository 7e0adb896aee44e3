// Package reader opens PDF files and exposes their pages as ordered text
// lines carrying typographic signal (font size, bold flag) when the document
// provides positioned text runs.
package reader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FlagBold is set on a Line whose dominant font looks bold.
const FlagBold uint32 = 1 << 4

// rowTolerance is the Y-coordinate tolerance for grouping runs into one row.
const rowTolerance = 2.0

// Line is one visual text line of a page. FontSize and Flags are zero when
// the page only yielded plain text.
type Line struct {
	Text     string
	FontSize float64
	Flags    uint32
}

// Document is an open PDF with independently readable pages.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF %s: %w", path, err)
	}
	return &Document{path: path, file: f, reader: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page returns the text lines of the 1-based page n. A malformed page is
// reported as an error rather than aborting the document; the PDF library
// panics on some malformed content streams, so decoding runs under a
// recover guard.
func (d *Document) Page(n int) (lines []Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("decode page %d of %s: %v", n, d.path, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	if len(content.Text) > 0 {
		return groupRows(content.Text), nil
	}

	text, perr := page.GetPlainText(nil)
	if perr != nil {
		return nil, fmt.Errorf("extract page %d of %s: %w", n, d.path, perr)
	}
	return plainLines(text), nil
}

// groupRows buckets positioned runs into visual rows by Y coordinate, then
// assembles each row left to right into a Line with its dominant font.
func groupRows(texts []pdf.Text) []Line {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdf.Text
	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if len(rows) > 0 {
			last := rows[len(rows)-1]
			if diff := last[0].Y - t.Y; diff >= -rowTolerance && diff <= rowTolerance {
				rows[len(rows)-1] = append(last, t)
				continue
			}
		}
		rows = append(rows, []pdf.Text{t})
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		line := assembleRow(row)
		if strings.TrimSpace(line.Text) != "" {
			line.Text = strings.TrimSpace(line.Text)
			lines = append(lines, line)
		}
	}
	return lines
}

// assembleRow joins a row's runs, inserting spaces at horizontal gaps wider
// than a fraction of the font size, and picks the dominant font by character count.
func assembleRow(row []pdf.Text) Line {
	var b strings.Builder
	sizeCount := make(map[float64]int)
	fontCount := make(map[string]int)
	prevEnd := 0.0
	for i, t := range row {
		if i > 0 {
			gap := t.X - prevEnd
			threshold := t.FontSize * 0.3
			if threshold <= 0 {
				threshold = 1.0
			}
			if gap > threshold && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		n := len([]rune(t.S))
		sizeCount[t.FontSize] += n
		fontCount[t.Font] += n
	}

	line := Line{Text: b.String()}
	best := -1
	for size, n := range sizeCount {
		if n > best || (n == best && size > line.FontSize) {
			best = n
			line.FontSize = size
		}
	}
	best = -1
	dominantFont := ""
	for font, n := range fontCount {
		if n > best || (n == best && font < dominantFont) {
			best = n
			dominantFont = font
		}
	}
	if isBoldFont(dominantFont) {
		line.Flags |= FlagBold
	}
	return line
}

// isBoldFont reports whether a PDF font name indicates a bold face.
func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

// plainLines splits extracted plain text into trimmed non-empty lines.
func plainLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(raw); t != "" {
			lines = append(lines, Line{Text: t})
		}
	}
	return lines
}
