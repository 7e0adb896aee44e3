// Package main is the docsense CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/docsense/docsense/internal/config"
	"github.com/docsense/docsense/internal/outline"
	"github.com/docsense/docsense/internal/pipeline"
	"github.com/docsense/docsense/internal/reader"
	"github.com/docsense/docsense/internal/watcher"
	"github.com/docsense/docsense/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/docsense/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development). A missing
// default config is not an error; built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "analyze":
		runAnalyze()
	case "outline":
		runOutline()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("docsense version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// analyzeFlags defines the shared flag set for analyze and watch.
func analyzeFlags(fs *flag.FlagSet) (input, pdfDir, output, configPath *string, topK, chunkSize *int, debug *bool) {
	input = fs.String("input", "", "input JSON file path (required)")
	pdfDir = fs.String("pdf_dir", "", "directory containing the PDFs (default: input file's directory)")
	output = fs.String("output", "", "output JSON file path (default: output.json)")
	topK = fs.Int("top_k", 0, "number of top-ranked sections to export (default: 15)")
	chunkSize = fs.Int("chunk_size", 0, "page window size for streaming (default: 25)")
	configPath = fs.String("config", defaultConfigPath, "config file path")
	debug = fs.Bool("debug", false, "enable debug logging")
	return
}

// setupRun validates flags and builds the config, logger, and pipeline options.
func setupRun(fs *flag.FlagSet, input, pdfDir, output, configPath *string, topK, chunkSize *int, debug *bool) (*config.Config, *zap.Logger, pipeline.Options) {
	if *input == "" {
		fmt.Println("Error: --input is required")
		fs.Usage()
		os.Exit(1)
	}
	if _, err := os.Stat(*input); err != nil {
		fmt.Printf("Input file not found: %s\n", *input)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		InputPath:  *input,
		PDFDir:     *pdfDir,
		OutputPath: *output,
		TopK:       *topK,
		ChunkSize:  *chunkSize,
	}
	return cfg, logger, opts
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	input, pdfDir, output, configPath, topK, chunkSize, debug := analyzeFlags(fs)
	_ = fs.Parse(os.Args[2:])

	cfg, logger, opts := setupRun(fs, input, pdfDir, output, configPath, topK, chunkSize, debug)
	defer logger.Sync()

	p := pipeline.New(cfg, logger)
	if err := p.Run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runOutline() {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	outputDir := fs.String("output_dir", ".", "directory for the per-document outline JSON files")
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: docsense outline [flags] <pdf>...")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	failed := 0
	for _, path := range fs.Args() {
		if err := writeOutline(path, *outputDir); err != nil {
			logger.Warn("outline failed", zap.String("document", path), zap.Error(err))
			fmt.Printf("Error processing %s: %v\n", filepath.Base(path), err)
			failed++
			continue
		}
		fmt.Printf("Processed: %s\n", filepath.Base(path))
	}
	if failed == fs.NArg() {
		os.Exit(1)
	}
}

func writeOutline(pdfPath, outputDir string) error {
	doc, err := reader.Open(pdfPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	result, err := outline.Extract(doc)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(outputDir, base+".json")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create outline file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	input, pdfDir, output, configPath, topK, chunkSize, debug := analyzeFlags(fs)
	_ = fs.Parse(os.Args[2:])

	cfg, logger, opts := setupRun(fs, input, pdfDir, output, configPath, topK, chunkSize, debug)
	defer logger.Sync()

	p := pipeline.New(cfg, logger)

	runOnce := func() {
		if err := p.Run(opts); err != nil {
			logger.Warn("analysis run failed", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
		}
	}

	// Serialize re-runs: a burst of changes during a run coalesces into at
	// most one pending trigger.
	runCh := make(chan struct{}, 1)
	trigger := func() {
		select {
		case runCh <- struct{}{}:
		default:
		}
	}
	go func() {
		for range runCh {
			runOnce()
			fmt.Println("\nWatching for changes...")
		}
	}()

	roots := []string{filepath.Dir(opts.InputPath)}
	watchDir := opts.PDFDir
	if watchDir == "" {
		watchDir = filepath.Dir(opts.InputPath)
	}
	if filepath.Clean(watchDir) != filepath.Clean(roots[0]) {
		roots = append(roots, watchDir)
	}

	w := watcher.New(roots, []string{".pdf", ".json"}, trigger, watcher.WithLogger(logger))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	trigger()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Shutting down...")
	w.Stop()
}

func printUsage() {
	fmt.Println(`docsense - Persona-driven document intelligence

Usage:
  docsense analyze [flags]        Rank and summarize PDF content for a persona
  docsense outline [flags] <pdf>  Extract title and heading outline from PDFs
  docsense watch [flags]          Re-run the analysis when inputs change
  docsense version                Show version
  docsense help                   Show this help

Analyze/Watch Flags:
  --input string       Input JSON file path (required)
  --pdf_dir string     Directory containing the PDFs (default: input file's directory)
  --output string      Output JSON file path (default: output.json)
  --top_k int          Number of top-ranked sections to export (default: 15)
  --chunk_size int     Page window size for streaming (default: 25)
  --config string      Config file path (default: /usr/local/etc/docsense/config.yaml)
  --debug              Enable debug logging

Outline Flags:
  --output_dir string  Directory for the per-document outline JSON files (default: .)

Examples:
  docsense analyze --input requests/trip.json --pdf_dir docs/ --output results.json
  docsense analyze --input trip.json --top_k 10
  docsense outline --output_dir outlines/ handbook.pdf
  docsense watch --input trip.json`)
}
