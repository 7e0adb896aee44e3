package nlp

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(LoadResources())
	got := n.Normalize("Planning the guided walking tours of Nice!")
	want := "plann guid walk tour nice"
	if got != want {
		t.Errorf("Normalize=%q, want %q", got, want)
	}
}

func TestNormalize_empty(t *testing.T) {
	n := NewNormalizer(LoadResources())
	if got := n.Normalize(""); got != "" {
		t.Errorf("Normalize(\"\")=%q, want empty", got)
	}
	if got := n.Normalize("  \t\n "); got != "" {
		t.Errorf("Normalize(whitespace)=%q, want empty", got)
	}
}

func TestNormalize_dropsShortTokensAndStopwords(t *testing.T) {
	n := NewNormalizer(LoadResources())
	// "a" and "of" are stopwords, "5" and "km" are too short.
	if got := n.Normalize("a tour of 5 km"); got != "tour" {
		t.Errorf("Normalize=%q, want %q", got, "tour")
	}
}

func TestNormalize_punctuationBecomesSpace(t *testing.T) {
	n := NewNormalizer(LoadResources())
	if got := n.Normalize("budget-friendly,hotels"); got != "budget friendly hotel" {
		t.Errorf("Normalize=%q, want %q", got, "budget friendly hotel")
	}
}

func TestNormalize_deterministic(t *testing.T) {
	n := NewNormalizer(LoadResources())
	text := "Comparing regional travel budgets across planned itineraries"
	first := n.Normalize(text)
	for i := 0; i < 3; i++ {
		if got := n.Normalize(text); got != first {
			t.Errorf("run %d: Normalize=%q, want %q", i, got, first)
		}
	}
}

func TestStem_suffixPrecedence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"running", "runn"},   // ing before ed
		{"planned", "plann"},  // ed strips two
		{"hotels", "hotel"},   // trailing s on long tokens
		{"gas", "gas"},        // too short for the s rule
		{"bring", "br"},       // ing wins even on short words
		{"nice", "nice"},      // no suffix, unchanged
	}
	for _, c := range cases {
		if got := stem(c.in); got != c.want {
			t.Errorf("stem(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadResources_stopwords(t *testing.T) {
	res := LoadResources()
	if res.StopwordCount() < 100 {
		t.Errorf("stopword set too small: %d", res.StopwordCount())
	}
	for _, w := range []string{"the", "and", "of"} {
		if !res.IsStopword(w) {
			t.Errorf("%q should be a stopword", w)
		}
	}
	if res.IsStopword("hotel") {
		t.Error("\"hotel\" should not be a stopword")
	}
}

func TestResources_Sentences(t *testing.T) {
	res := LoadResources()
	sents, ok := res.Sentences("The old town is lively. Restaurants open late. Trams run until midnight.")
	if !ok {
		t.Skip("sentence tokenizer unavailable")
	}
	if len(sents) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sents), sents)
	}
	if sents[0] != "The old town is lively." {
		t.Errorf("first sentence=%q", sents[0])
	}
}
