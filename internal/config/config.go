// Package config provides configuration loading and structs for docsense.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Analyze AnalyzeConfig `yaml:"analyze"`
}

// AnalyzeConfig holds segmentation, ranking, and refinement settings.
type AnalyzeConfig struct {
	// TopK is how many ranked sections are exported and refined.
	TopK int `yaml:"top_k"`
	// ChunkSize is the page window used when streaming a document.
	ChunkSize int `yaml:"chunk_size"`
	// BatchSize limits how many sections share one TF-IDF vector space.
	BatchSize int `yaml:"batch_size"`
	// MaxFeatures caps the vocabulary of each vector space.
	MaxFeatures int `yaml:"max_features"`
	// MaxDocFreq drops terms present in more than this fraction of a batch.
	MaxDocFreq float64 `yaml:"max_doc_freq"`
	// MinSectionChars is the minimum trimmed content length for a section to be emitted.
	MinSectionChars int `yaml:"min_section_chars"`
	// MaxSectionWords forces a split once a section accumulates this many words.
	MaxSectionWords int `yaml:"max_section_words"`
	// ContentPrefixChars is how much section content feeds the pseudo-document.
	ContentPrefixChars int `yaml:"content_prefix_chars"`
	// OutputPath is where the result JSON is written.
	OutputPath string `yaml:"output_path"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Analyze.OutputPath = expandPath(cfg.Analyze.OutputPath, configDir)

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for runs without a config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are kept relative to the working directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
