package tokenizer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	corpus := []string{
		"ଓଡ଼ିଆ ଭାରତର ଏକ ପ୍ରାଚୀନ ଭାଷା ଅଟେ",
		"the quick brown fox  jumps", // double space: whitespace tokens too
	}
	vocab, err := Train(corpus, 90)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, vocab.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	require.Equal(t, vocab.Size(), loaded.Size())
	require.Equal(t, vocab.NumMerges(), loaded.NumMerges())
	require.Equal(t, vocab.Marker(), loaded.Marker())
	require.Equal(t, vocab.Merges(), loaded.Merges())
	for id := 0; id < vocab.Size(); id++ {
		want, err := vocab.Token(id)
		require.NoError(t, err)
		got, err := loaded.Token(id)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// A codec over the loaded vocabulary reproduces the original encoding.
	text := "the quick brown fox"
	wantIDs, err := NewCodec(vocab).Encode(text)
	require.NoError(t, err)
	gotIDs, err := NewCodec(loaded).Encode(text)
	require.NoError(t, err)
	require.Equal(t, wantIDs, gotIDs)
}

func TestSaveLoadFile(t *testing.T) {
	vocab, err := Train([]string{"abab abab cd"}, 12)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vocab.subtok")
	require.NoError(t, vocab.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, vocab.Merges(), loaded.Merges())
}

// validBlob is a hand-built minimal vocabulary: marker, "a", and one merge
// producing "aa" at id 2.
const validBlob = `# subtok vocab v1
# tokens 3
# merges 1
# marker 0
"</w>"
"a"
"aa"
1 1
`

func TestLoadValidBlob(t *testing.T) {
	vocab, err := Load(strings.NewReader(validBlob))
	require.NoError(t, err)
	require.Equal(t, 3, vocab.Size())
	require.Equal(t, []Merge{{Left: "a", Right: "a", Result: "aa"}}, vocab.Merges())
	require.Equal(t, "</w>", vocab.Marker())
}

func TestLoadCorruptBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty", ""},
		{"bad header", strings.Replace(validBlob, "v1", "v9", 1)},
		{"bad token count", strings.Replace(validBlob, "# tokens 3", "# tokens x", 1)},
		{"more merges than tokens", strings.Replace(validBlob, "# merges 1", "# merges 3", 1)},
		{"marker out of range", strings.Replace(validBlob, "# marker 0", "# marker 7", 1)},
		{"truncated tokens", strings.Replace(validBlob, "\"aa\"\n", "", 1)},
		{"unquoted token", strings.Replace(validBlob, `"aa"`, "aa", 1)},
		{"empty token", strings.Replace(validBlob, `"aa"`, `""`, 1)},
		{"duplicate token", strings.Replace(validBlob, `"aa"`, `"a"`, 1)},
		{"merge id out of range", strings.Replace(validBlob, "1 1\n", "1 2\n", 1)},
		{"negative merge id", strings.Replace(validBlob, "1 1\n", "-1 1\n", 1)},
		{"merge result missing", strings.Replace(validBlob, "1 1\n", "0 1\n", 1)},
		{"missing merge record", strings.Replace(validBlob, "1 1\n", "", 1)},
		{"garbage merge record", strings.Replace(validBlob, "1 1\n", "one one\n", 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.blob))
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestLoadFailsEagerly(t *testing.T) {
	// A merge whose result token is absent must fail at load, never later
	// during encode.
	blob := `# subtok vocab v1
# tokens 4
# merges 1
# marker 0
"</w>"
"a"
"b"
"zz"
1 2
`
	_, err := Load(strings.NewReader(blob))
	require.ErrorIs(t, err, ErrCorrupt)
}
