package rank

import (
	"errors"
	"testing"

	"github.com/docsense/docsense/internal/nlp"
)

func TestVectorizer_Similarities(t *testing.T) {
	v := NewVectorizer(500, 0.95, nlp.LoadResources())
	docs := []string{
		"hotel nice beach travel",
		"tax statute court filing",
	}
	sims, err := v.Similarities(docs, "travel hotel nice")
	if err != nil {
		t.Fatal(err)
	}
	if len(sims) != 2 {
		t.Fatalf("expected 2 similarities, got %d", len(sims))
	}
	if sims[0] <= sims[1] {
		t.Errorf("overlapping doc scored %f, disjoint doc %f", sims[0], sims[1])
	}
	for i, s := range sims {
		if s < 0 || s > 1.0001 {
			t.Errorf("sim[%d]=%f out of range", i, s)
		}
	}
	if sims[1] != 0 {
		t.Errorf("disjoint doc should score 0, got %f", sims[1])
	}
}

func TestVectorizer_identicalDoc(t *testing.T) {
	v := NewVectorizer(500, 0.95, nlp.LoadResources())
	sims, err := v.Similarities([]string{"guided tour old town", "ferry schedule"}, "guided tour old town")
	if err != nil {
		t.Fatal(err)
	}
	if sims[0] < 0.999 {
		t.Errorf("doc identical to query should score ~1, got %f", sims[0])
	}
}

func TestVectorizer_emptyVocabulary(t *testing.T) {
	v := NewVectorizer(500, 0.95, nlp.LoadResources())
	if _, err := v.Similarities([]string{"", ""}, ""); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestVectorizer_maxFeaturesCap(t *testing.T) {
	v := NewVectorizer(2, 0.95, nlp.LoadResources())
	// Vocabulary is capped at 2 terms, favoring the most frequent;
	// the space still scores without error.
	docs := []string{
		"hotel hotel hotel beach",
		"museum ferry park",
		"garden castle harbor",
	}
	sims, err := v.Similarities(docs, "hotel beach")
	if err != nil {
		t.Fatal(err)
	}
	if sims[0] <= 0 {
		t.Errorf("capped space should still score overlap, got %f", sims[0])
	}
	if sims[1] != 0 || sims[2] != 0 {
		t.Errorf("docs outside the capped vocabulary should score 0, got %f, %f", sims[1], sims[2])
	}
}

func TestVectorizer_terms(t *testing.T) {
	v := NewVectorizer(500, 0.95, nlp.LoadResources())
	got := v.terms("hotel the beach")
	// "the" is removed before bigram construction, so the bigram spans it.
	want := []string{"hotel", "beach", "hotel beach"}
	if len(got) != len(want) {
		t.Fatalf("terms=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("terms[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestVectorizer_termsDropSingleRuneTokens(t *testing.T) {
	v := NewVectorizer(500, 0.95, nlp.LoadResources())
	// A stemmed residue like "k" never becomes a term or a bigram member.
	got := v.terms("k hotel beach")
	want := []string{"hotel", "beach", "hotel beach"}
	if len(got) != len(want) {
		t.Fatalf("terms=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("terms[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}
