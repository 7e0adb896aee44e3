package segment

import (
	"testing"
)

func TestNoiseFilter_IsNoise(t *testing.T) {
	f := NewNoiseFilter(map[string]struct{}{"Coastal Region Travel Guide": {}})

	noisy := []string{
		"Coastal Region Travel Guide", // repeated header
		"",
		"ok", // under 3 characters
		"Copyright 2024 Coastal Tourism Board",
		"page 12 of 40",
		"version 1.3",
		"www.coastal-guide.example",
		"Contents ........ 12",
		"14:30 departure",
		"12/06/2024",
		"***",
	}
	for _, line := range noisy {
		if !f.IsNoise(line, 0) {
			t.Errorf("%q should be noise", line)
		}
	}

	clean := []string{
		"1. Introduction",
		"The old town has a daily flower market.",
	}
	for _, line := range clean {
		if f.IsNoise(line, 0) {
			t.Errorf("%q should not be noise", line)
		}
	}
}

func TestNoiseFilter_shortLineCluster(t *testing.T) {
	f := NewNoiseFilter(nil)
	if !f.IsNoise("John Smith", 4) {
		t.Error("line inside a dense short-line block should be noise")
	}
	if f.IsNoise("John Smith lives in the coastal region year round", 3) {
		t.Error("line below the cluster threshold should not be noise")
	}
}

func TestShortLinesNearby(t *testing.T) {
	lines := []string{
		"Name",
		"Street",
		"",
		"City",
		"A much longer line that runs past the six word cutoff easily",
		"Zip",
		"Country",
	}
	// Window around index 3 covers indexes 0-6 minus 3 itself.
	if got := ShortLinesNearby(lines, 3); got != 4 {
		t.Errorf("ShortLinesNearby=%d, want 4", got)
	}
	// At the slice edge the window is clipped.
	if got := ShortLinesNearby(lines, 0); got != 2 {
		t.Errorf("ShortLinesNearby at edge=%d, want 2", got)
	}
}
