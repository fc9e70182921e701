package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCorpus(t, "first sample\n\n  \nsecond sample\nତୃତୀୟ ନମୁନା\n")

	texts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"first sample", "second sample", "ତୃତୀୟ ନମୁନା"}, texts)
}

func TestLoadEmpty(t *testing.T) {
	path := writeCorpus(t, "\n   \n\n")
	_, err := Load(path)
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	// e + combining acute arrives decomposed; NFC composes it.
	decomposed := "café"
	texts := Normalize([]string{decomposed, "plain"})

	require.Equal(t, norm.NFC.String(decomposed), texts[0])
	require.NotEqual(t, decomposed, texts[0])
	require.Equal(t, "plain", texts[1])
}

func TestTotalBytes(t *testing.T) {
	require.Equal(t, 0, TotalBytes(nil))
	require.Equal(t, 5+9, TotalBytes([]string{"abcde", "ନମସ୍କାର"[:9]}))
}
