package rank

import (
	"sort"

	"github.com/docsense/docsense/internal/models"
	"github.com/docsense/docsense/internal/nlp"
	"github.com/docsense/docsense/pkg/utils"
	"go.uber.org/zap"
)

// fallbackScore is assigned to every section of a batch whose vector space
// could not be fit, so one degenerate batch never aborts the run.
const fallbackScore = 0.1

// Ranker scores all sections against the persona query in fixed-size batches
// and produces the global importance order.
type Ranker struct {
	batchSize     int
	contentPrefix int
	normalizer    *nlp.Normalizer
	vectorizer    *Vectorizer
	logger        *zap.Logger
}

// NewRanker creates a Ranker. batchSize bounds vector-space dimensionality;
// contentPrefix limits how much section content feeds each pseudo-document.
func NewRanker(batchSize, contentPrefix int, normalizer *nlp.Normalizer, vectorizer *Vectorizer, logger *zap.Logger) *Ranker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if contentPrefix <= 0 {
		contentPrefix = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		batchSize:     batchSize,
		contentPrefix: contentPrefix,
		normalizer:    normalizer,
		vectorizer:    vectorizer,
		logger:        logger,
	}
}

// Rank assigns every section a relevance score against the persona and job,
// then sorts sections by score descending (stable on input order for ties)
// and numbers ImportanceRank from 1. The slice is reordered in place.
func (r *Ranker) Rank(sections []*models.Section, persona, job string) {
	if len(sections) == 0 {
		return
	}

	query := r.normalizer.Normalize(persona + " " + job)

	for start := 0; start < len(sections); start += r.batchSize {
		end := start + r.batchSize
		if end > len(sections) {
			end = len(sections)
		}
		batch := sections[start:end]

		docs := make([]string, len(batch))
		for i, sec := range batch {
			docs[i] = r.normalizer.Normalize(sec.Title + " " + utils.Prefix(sec.Content, r.contentPrefix))
		}

		sims, err := r.vectorizer.Similarities(docs, query)
		if err != nil {
			r.logger.Warn("batch scoring failed, using fallback score",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			for _, sec := range batch {
				sec.RelevanceScore = fallbackScore
			}
			continue
		}
		for i, sec := range batch {
			sec.RelevanceScore = sims[i]
		}
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].RelevanceScore > sections[j].RelevanceScore
	})
	for i, sec := range sections {
		sec.ImportanceRank = i + 1
	}
}
