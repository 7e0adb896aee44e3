package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Analyze.TopK == 0 {
		cfg.Analyze.TopK = 15
	}
	if cfg.Analyze.ChunkSize == 0 {
		cfg.Analyze.ChunkSize = 25
	}
	if cfg.Analyze.BatchSize == 0 {
		cfg.Analyze.BatchSize = 100
	}
	if cfg.Analyze.MaxFeatures == 0 {
		cfg.Analyze.MaxFeatures = 500
	}
	if cfg.Analyze.MaxDocFreq == 0 {
		cfg.Analyze.MaxDocFreq = 0.95
	}
	if cfg.Analyze.MinSectionChars == 0 {
		cfg.Analyze.MinSectionChars = 50
	}
	if cfg.Analyze.MaxSectionWords == 0 {
		cfg.Analyze.MaxSectionWords = 2000
	}
	if cfg.Analyze.ContentPrefixChars == 0 {
		cfg.Analyze.ContentPrefixChars = 1000
	}
	if cfg.Analyze.OutputPath == "" {
		cfg.Analyze.OutputPath = "output.json"
	}
}
