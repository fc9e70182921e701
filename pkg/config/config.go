package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config holds the settings for a tokenizer training run
type Config struct {
	Trainer TrainerConfig `json:"trainer"`
	Report  ReportConfig  `json:"report"`
}

// TrainerConfig configures vocabulary construction
type TrainerConfig struct {
	CorpusPath  string `json:"corpus_path"`
	VocabSize   int    `json:"vocab_size"`
	OutPath     string `json:"out_path"`
	Search      bool   `json:"search"`       // sweep SearchSizes until MinRatio is met
	SearchSizes []int  `json:"search_sizes"` // descending vocab sizes for the sweep
}

// ReportConfig configures the evaluation targets checked after training
type ReportConfig struct {
	MinRatio    float64 `json:"min_ratio"`    // compression ratio target
	MaxVocab    int     `json:"max_vocab"`    // hard ceiling on vocabulary size
	SampleCount int     `json:"sample_count"` // sample tokenizations to print
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Trainer: TrainerConfig{
			CorpusPath:  "data/corpus.txt",
			VocabSize:   4500,
			OutPath:     "vocab.subtok",
			Search:      false,
			SearchSizes: []int{4500, 4000, 3500, 3000, 2500, 2000},
		},
		Report: ReportConfig{
			MinRatio:    3.2,
			MaxVocab:    5000,
			SampleCount: 5,
		},
	}
}

// LoadFile reads a JSON config file over the defaults: absent fields keep
// their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Trainer.VocabSize <= 0 || cfg.Trainer.VocabSize > cfg.Report.MaxVocab {
		return nil, errors.Errorf("config %s: vocab_size %d outside (0, %d]",
			path, cfg.Trainer.VocabSize, cfg.Report.MaxVocab)
	}
	return cfg, nil
}
