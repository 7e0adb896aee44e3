// Package pipeline orchestrates a full analysis run: input resolution,
// per-document segmentation, relevance ranking, refinement, and output.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docsense/docsense/internal/config"
	"github.com/docsense/docsense/internal/models"
	"github.com/docsense/docsense/internal/nlp"
	"github.com/docsense/docsense/internal/rank"
	"github.com/docsense/docsense/internal/reader"
	"github.com/docsense/docsense/internal/refine"
	"github.com/docsense/docsense/internal/segment"
	"github.com/docsense/docsense/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options holds one run's parameters. Zero values fall back to config.
type Options struct {
	InputPath  string
	PDFDir     string
	OutputPath string
	TopK       int
	ChunkSize  int
}

// Pipeline wires the stages together with a shared resource bundle.
type Pipeline struct {
	cfg    *config.Config
	logger *zap.Logger
	res    *nlp.Resources
}

// New creates a Pipeline, loading the NLP resource bundle once.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger, res: nlp.LoadResources()}
}

// Run executes one complete analysis and writes the output JSON.
// Input errors (missing file, missing persona/job, zero PDFs) are returned;
// per-document and per-page failures are logged and skipped.
func (p *Pipeline) Run(opts Options) error {
	runID := uuid.New().String()[:8]
	logger := p.logger.With(zap.String("run_id", runID))

	if opts.PDFDir == "" {
		opts.PDFDir = filepath.Dir(opts.InputPath)
	}
	if opts.OutputPath == "" {
		opts.OutputPath = p.cfg.Analyze.OutputPath
	}
	if opts.TopK <= 0 {
		opts.TopK = p.cfg.Analyze.TopK
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = p.cfg.Analyze.ChunkSize
	}

	in, err := models.LoadInput(opts.InputPath)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	persona := string(in.Persona)
	job := string(in.Job)

	fmt.Printf("Persona: %s\n", persona)
	fmt.Printf("Job to be done: %s\n", job)
	fmt.Printf("Processing PDF pages in chunks of %d pages\n", opts.ChunkSize)

	pdfPaths := resolvePDFs(in.Documents, opts.PDFDir)
	if len(pdfPaths) == 0 {
		return fmt.Errorf("no PDF files found in %s as specified in the input", opts.PDFDir)
	}
	fmt.Printf("Found %d PDF file(s) to process...\n", len(pdfPaths))

	seg := segment.New(segment.Config{
		ChunkSize:       opts.ChunkSize,
		MinSectionChars: p.cfg.Analyze.MinSectionChars,
		MaxSectionWords: p.cfg.Analyze.MaxSectionWords,
	}, logger)

	var allSections []*models.Section
	var processed []string
	for _, path := range pdfPaths {
		name := filepath.Base(path)
		fmt.Printf("\nProcessing: %s\n", name)

		doc, err := reader.Open(path)
		if err != nil {
			logger.Warn("document skipped", zap.String("document", name), zap.Error(err))
			fmt.Printf("  Error processing %s: %v\n", name, err)
			continue
		}
		count := 0
		err = seg.Segment(doc, name, func(sec *models.Section) {
			allSections = append(allSections, sec)
			count++
			if count%50 == 0 {
				fmt.Printf("  Extracted %d sections...\n", count)
			}
		})
		_ = doc.Close()
		if err != nil {
			logger.Warn("document skipped", zap.String("document", name), zap.Error(err))
			fmt.Printf("  Error processing %s: %v\n", name, err)
			continue
		}
		processed = append(processed, name)
		fmt.Printf("  Completed: %d sections extracted\n", count)
	}

	fmt.Printf("\nTotal sections extracted: %d\n", len(allSections))
	if len(allSections) == 0 {
		fmt.Println("No sections extracted. Nothing to rank.")
		return nil
	}

	fmt.Printf("\nCalculating relevance for %d sections...\n", len(allSections))
	normalizer := nlp.NewNormalizer(p.res)
	vectorizer := rank.NewVectorizer(p.cfg.Analyze.MaxFeatures, p.cfg.Analyze.MaxDocFreq, p.res)
	ranker := rank.NewRanker(p.cfg.Analyze.BatchSize, p.cfg.Analyze.ContentPrefixChars, normalizer, vectorizer, logger)
	ranker.Rank(allSections, persona, job)

	fmt.Printf("\nExtracting top %d subsections...\n", opts.TopK)
	refiner := refine.NewRefiner(p.res)
	subsections := refiner.Refine(allSections, opts.TopK)

	out := Assemble(processed, persona, job, allSections, subsections, opts.TopK, time.Now())
	if err := WriteOutput(opts.OutputPath, out); err != nil {
		return err
	}

	fmt.Printf("\nResults written to: %s\n", opts.OutputPath)
	fmt.Printf("Documents processed: %d\n", len(processed))
	fmt.Printf("Total sections: %d\n", len(allSections))
	fmt.Printf("Top sections analyzed: %d\n", len(subsections))
	fmt.Println("\nTop 10 most relevant sections:")
	for i, sec := range allSections {
		if i >= 10 {
			break
		}
		fmt.Printf("%2d. [%s] %s (Score: %.3f)\n",
			i+1, sec.Document, utils.Truncate(sec.Title, 60), sec.RelevanceScore)
	}
	fmt.Println("\nProcessing completed successfully!")
	return nil
}

// resolvePDFs maps the input document list to existing PDF paths under dir.
// Missing or non-PDF entries are reported and skipped.
func resolvePDFs(refs []models.DocumentRef, dir string) []string {
	var paths []string
	for _, ref := range refs {
		if ref.Filename == "" || !strings.HasSuffix(strings.ToLower(ref.Filename), ".pdf") {
			continue
		}
		path := filepath.Join(dir, ref.Filename)
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("Warning: PDF file not found: %s\n", path)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}
