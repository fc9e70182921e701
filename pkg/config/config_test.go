package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	require.NotEmpty(t, cfg.Trainer.CorpusPath)
	require.Positive(t, cfg.Trainer.VocabSize)
	require.NotEmpty(t, cfg.Trainer.SearchSizes)
	require.Less(t, cfg.Trainer.VocabSize, cfg.Report.MaxVocab)
	require.Positive(t, cfg.Report.MinRatio)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	blob := `{"trainer": {"corpus_path": "odia.txt", "vocab_size": 3000}, "report": {"min_ratio": 2.5}}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "odia.txt", cfg.Trainer.CorpusPath)
	require.Equal(t, 3000, cfg.Trainer.VocabSize)
	require.Equal(t, 2.5, cfg.Report.MinRatio)
	// Untouched fields keep defaults.
	require.Equal(t, DefaultConfig().Trainer.OutPath, cfg.Trainer.OutPath)
	require.Equal(t, DefaultConfig().Report.MaxVocab, cfg.Report.MaxVocab)
}

func TestLoadFileRejectsBadVocabSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trainer": {"vocab_size": 9000}}`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
}
