package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVocabularyLookup(t *testing.T) {
	vocab, err := Train([]string{"abab abab"}, 10)
	require.NoError(t, err)

	id, err := vocab.ID("a")
	require.NoError(t, err)
	tok, err := vocab.Token(id)
	require.NoError(t, err)
	require.Equal(t, "a", tok)

	_, err = vocab.ID("never-trained")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = vocab.Token(vocab.Size())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = vocab.Token(-3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVocabularyMarker(t *testing.T) {
	vocab, err := Train([]string{"ab"}, 3)
	require.NoError(t, err)

	markerID, err := vocab.ID(EndOfWordMarker)
	require.NoError(t, err)
	require.True(t, vocab.IsMarker(markerID))
	require.Equal(t, EndOfWordMarker, vocab.Marker())

	for id := 0; id < vocab.Size(); id++ {
		if id == markerID {
			continue
		}
		require.False(t, vocab.IsMarker(id))
	}
	require.False(t, vocab.IsMarker(vocab.Size()))
}

func TestVocabularyMergesCopy(t *testing.T) {
	vocab, err := Train([]string{"abab abab"}, 8)
	require.NoError(t, err)
	require.NotZero(t, vocab.NumMerges())

	merges := vocab.Merges()
	merges[0] = Merge{Left: "x", Right: "y", Result: "xy"}
	require.NotEqual(t, merges[0], vocab.Merges()[0])
}
