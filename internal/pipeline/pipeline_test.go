package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docsense/docsense/internal/config"
	"github.com/docsense/docsense/internal/models"
)

func TestResolvePDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"guide.pdf", "maps.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	refs := []models.DocumentRef{
		{Filename: "guide.pdf"},
		{Filename: "maps.pdf"},
		{Filename: "notes.txt"},  // wrong extension
		{Filename: "absent.pdf"}, // not on disk
		{Filename: ""},
	}
	paths := resolvePDFs(refs, dir)
	if len(paths) != 2 {
		t.Fatalf("expected 2 resolved paths, got %v", paths)
	}
	if filepath.Base(paths[0]) != "guide.pdf" || filepath.Base(paths[1]) != "maps.pdf" {
		t.Errorf("resolved paths: %v", paths)
	}
}

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun_noSectionsHaltsWithoutSuccessBanner(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	input := `{
		"documents": [{"filename": "broken.pdf"}],
		"persona": "Travel Planner",
		"job_to_be_done": "Plan a trip"
	}`
	if err := os.WriteFile(inputPath, []byte(input), 0600); err != nil {
		t.Fatal(err)
	}
	// Not a PDF, so the reader rejects it and no sections are extracted.
	if err := os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0600); err != nil {
		t.Fatal(err)
	}
	outputPath := filepath.Join(dir, "output.json")

	p := New(config.Default(), nil)
	var runErr error
	out := captureStdout(t, func() {
		runErr = p.Run(Options{InputPath: inputPath, OutputPath: outputPath})
	})
	if runErr != nil {
		t.Fatalf("empty extraction should not be an error: %v", runErr)
	}
	if !strings.Contains(out, "No sections extracted") {
		t.Errorf("missing empty-result message in output:\n%s", out)
	}
	if strings.Contains(out, "completed successfully") {
		t.Errorf("empty extraction must not report success:\n%s", out)
	}
	if _, err := os.Stat(outputPath); err == nil {
		t.Error("no output file should be written when nothing was extracted")
	}
}

func TestResolvePDFs_caseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GUIDE.PDF"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	paths := resolvePDFs([]models.DocumentRef{{Filename: "GUIDE.PDF"}}, dir)
	if len(paths) != 1 {
		t.Errorf("uppercase extension should resolve, got %v", paths)
	}
}
