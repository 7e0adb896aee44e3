// Package models defines core data structures for sections, subsections, and the run input/output.
package models

// Section represents a contiguous span of document content under one heading.
// It is created when a heading is recognized, accumulates content until the
// next heading (or a forced split), and is scored and ranked afterwards.
type Section struct {
	// Document is the source PDF filename.
	Document string `json:"document"`
	// PageNumber is the 1-based page where the heading was seen.
	PageNumber int `json:"page_number"`
	// Title is the cleaned heading text.
	Title string `json:"section_title"`
	// Content is the accumulated body text (title excluded).
	Content string `json:"content"`
	// WordCount is the whitespace-token count of Content.
	WordCount int `json:"word_count"`
	// RelevanceScore is the cosine similarity against the persona query.
	RelevanceScore float64 `json:"relevance_score"`
	// ImportanceRank is the 1-based global rank; -1 until ranking runs.
	ImportanceRank int `json:"importance_rank"`
}

// NewSection creates an open Section for a freshly recognized heading.
func NewSection(document string, page int, title string) *Section {
	return &Section{
		Document:       document,
		PageNumber:     page,
		Title:          title,
		ImportanceRank: -1,
	}
}

// Subsection is a short extractive excerpt derived from a top-ranked Section.
type Subsection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	Title          string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	RefinedText    string `json:"refined_text"`
}
