package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/docsense/docsense/internal/models"
)

// Assemble builds the output document from a completed run. ranked must be
// in rank order; only the first topK sections are exported.
func Assemble(processed []string, persona, job string, ranked []*models.Section, subsections []*models.Subsection, topK int, now time.Time) *models.Output {
	inputDocs := append([]string(nil), processed...)
	sort.Strings(inputDocs)
	if inputDocs == nil {
		inputDocs = []string{}
	}

	if topK > len(ranked) {
		topK = len(ranked)
	}
	extracted := make([]models.ExtractedSection, 0, topK)
	for _, sec := range ranked[:topK] {
		extracted = append(extracted, models.ExtractedSection{
			Document:       sec.Document,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
			PageNumber:     sec.PageNumber,
		})
	}

	analysis := make([]models.SubsectionAnalysis, 0, len(subsections))
	for _, sub := range subsections {
		analysis = append(analysis, models.SubsectionAnalysis{
			Document:    sub.Document,
			RefinedText: sub.RefinedText,
			PageNumber:  sub.PageNumber,
		})
	}

	return &models.Output{
		Metadata: models.Metadata{
			InputDocuments:      inputDocs,
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: now.Format(time.RFC3339),
		},
		ExtractedSections:  extracted,
		SubsectionAnalysis: analysis,
	}
}

// WriteOutput writes the output JSON to path, indented, without HTML escaping.
func WriteOutput(path string, out *models.Output) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
