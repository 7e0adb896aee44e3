package rank

import (
	"testing"

	"github.com/docsense/docsense/internal/models"
	"github.com/docsense/docsense/internal/nlp"
)

func newTestRanker(batchSize int) *Ranker {
	res := nlp.LoadResources()
	return NewRanker(batchSize, 1000, nlp.NewNormalizer(res), NewVectorizer(500, 0.95, res), nil)
}

func section(title, content string) *models.Section {
	sec := models.NewSection("guide.pdf", 1, title)
	sec.Content = content
	return sec
}

func TestRanker_Rank(t *testing.T) {
	hotels := section("Hotels in Nice",
		"Our travel planner recommends the best hotels in Nice for a five day trip. Book your plan early to secure beachfront rooms near the old town.")
	tax := section("Local Tax Law",
		"Municipal tax statutes govern filing deadlines and court procedures for local businesses.")
	sections := []*models.Section{tax, hotels}

	r := newTestRanker(100)
	r.Rank(sections, "Travel Planner", "Plan a 5-day trip")

	if sections[0] != hotels {
		t.Fatalf("expected hotels section ranked first, got %q", sections[0].Title)
	}
	if hotels.RelevanceScore <= tax.RelevanceScore {
		t.Errorf("hotels=%f should outscore tax=%f", hotels.RelevanceScore, tax.RelevanceScore)
	}
	if hotels.ImportanceRank != 1 || tax.ImportanceRank != 2 {
		t.Errorf("ranks: hotels=%d tax=%d", hotels.ImportanceRank, tax.ImportanceRank)
	}
}

func TestRanker_totalOrder(t *testing.T) {
	sections := []*models.Section{
		section("Beaches", "Sandy beaches line the coast with seasonal lifeguard posts and rentals."),
		section("Hotels", "Hotels near the station offer weekly rates for visiting travelers."),
		section("Museums", "The art museum holds a modern collection across three floors."),
		section("Transit", "Trams and buses connect the port to the hill districts."),
	}
	r := newTestRanker(100)
	r.Rank(sections, "Art Historian", "Survey modern art collections")

	for i, sec := range sections {
		if sec.ImportanceRank != i+1 {
			t.Errorf("position %d has rank %d", i, sec.ImportanceRank)
		}
		if sec.RelevanceScore < 0 {
			t.Errorf("section %q has negative score %f", sec.Title, sec.RelevanceScore)
		}
		if i > 0 && sections[i-1].RelevanceScore < sec.RelevanceScore {
			t.Errorf("scores out of order at position %d", i)
		}
	}
	if sections[0].Title != "Museums" {
		t.Errorf("expected museums first for an art historian, got %q", sections[0].Title)
	}
}

func TestRanker_fallbackScore(t *testing.T) {
	// Nothing survives normalization, so the batch vector space cannot be
	// fit and every section gets the fallback score.
	sections := []*models.Section{
		section("The", "of an to it is"),
		section("And", "or by at on"),
	}
	r := newTestRanker(100)
	r.Rank(sections, "the", "of")

	for i, sec := range sections {
		if sec.RelevanceScore != 0.1 {
			t.Errorf("section %d score=%f, want fallback 0.1", i, sec.RelevanceScore)
		}
		if sec.ImportanceRank != i+1 {
			t.Errorf("section %d rank=%d", i, sec.ImportanceRank)
		}
	}
}

func TestRanker_stableTies(t *testing.T) {
	first := section("Harbor Walk", "The harbor walk passes the lighthouse and the fish market.")
	second := section("Harbor Walk", "The harbor walk passes the lighthouse and the fish market.")
	sections := []*models.Section{first, second}

	r := newTestRanker(100)
	r.Rank(sections, "Travel Planner", "Plan a walking tour")

	if sections[0] != first || sections[1] != second {
		t.Error("equal scores should preserve input order")
	}
	if first.RelevanceScore != second.RelevanceScore {
		t.Errorf("identical sections scored differently: %f vs %f", first.RelevanceScore, second.RelevanceScore)
	}
}

func TestRanker_smallBatches(t *testing.T) {
	sections := []*models.Section{
		section("Beaches", "Sandy beaches line the coast with seasonal lifeguard posts."),
		section("Hotels", "Hotels near the station offer weekly rates for travelers."),
		section("Museums", "The art museum holds a modern collection across three floors."),
	}
	r := newTestRanker(2)
	r.Rank(sections, "Travel Planner", "Find hotels for the trip")

	seen := make(map[int]bool)
	for _, sec := range sections {
		if sec.ImportanceRank < 1 || sec.ImportanceRank > len(sections) {
			t.Errorf("rank %d out of range", sec.ImportanceRank)
		}
		if seen[sec.ImportanceRank] {
			t.Errorf("duplicate rank %d", sec.ImportanceRank)
		}
		seen[sec.ImportanceRank] = true
	}
}

func TestRanker_empty(t *testing.T) {
	r := newTestRanker(100)
	r.Rank(nil, "Travel Planner", "Plan a trip")
}
