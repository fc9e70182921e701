package tokenizer

import (
	"strings"

	"github.com/pkg/errors"
)

// Codec applies a trained Vocabulary's merge rules to map text to token ids
// and back. A Codec holds no per-call state; one instance may serve any
// number of goroutines.
type Codec struct {
	vocab *Vocabulary
	// rank[p] is the position of pair p in the learned merge order. Lower
	// rank merges first, reproducing the training segmentation exactly.
	rank map[symbolPair]int
}

// NewCodec builds a Codec over an immutable Vocabulary.
func NewCodec(v *Vocabulary) *Codec {
	rank := make(map[symbolPair]int, len(v.merges))
	for i, m := range v.merges {
		rank[symbolPair{m.Left, m.Right}] = i
	}
	return &Codec{vocab: v, rank: rank}
}

// Vocab returns the Vocabulary this Codec encodes against.
func (c *Codec) Vocab() *Vocabulary {
	return c.vocab
}

// VocabSize returns the total vocabulary size.
func (c *Codec) VocabSize() int {
	return c.vocab.Size()
}

// Encode converts text to token ids: split into words with the training word
// rule, decompose each word into code points plus the end-of-word marker,
// replay the learned merges, then map every final symbol to its id.
//
// A never-seen code point fails with ErrOutOfVocabulary naming the symbol.
// Encode is a pure function: the same text always yields the same ids.
func (c *Codec) Encode(text string) ([]int, error) {
	var ids []int
	for _, word := range wordPattern.FindAllString(text, -1) {
		syms := c.mergeWord(splitWord(word))
		for _, s := range syms {
			id, ok := c.vocab.tokenToID[s]
			if !ok {
				return nil, errors.Wrapf(ErrOutOfVocabulary, "symbol %q in word %q", s, word)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// mergeWord applies merge rules to one word's symbol sequence. Each round
// finds the lowest-rank rule whose pair is present and collapses every
// non-overlapping occurrence, leftmost first. Applying rules lowest rank
// first is equivalent to replaying them in learned order.
func (c *Codec) mergeWord(syms []string) []string {
	for len(syms) > 1 {
		bestRank := len(c.vocab.merges)
		var bestPair symbolPair
		for i := 0; i+1 < len(syms); i++ {
			p := symbolPair{syms[i], syms[i+1]}
			if r, ok := c.rank[p]; ok && r < bestRank {
				bestRank, bestPair = r, p
			}
		}
		if bestRank == len(c.vocab.merges) {
			break
		}
		syms = replacePair(syms, bestPair, c.vocab.merges[bestRank].Result)
	}
	return syms
}

// Decode maps ids back to their tokens, concatenates them in order, and
// strips the end-of-word markers. An id the vocabulary does not contain
// fails with ErrNotFound; ids from a different vocabulary are a caller
// error, not something to paper over.
func (c *Codec) Decode(ids []int) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		tok, err := c.vocab.Token(id)
		if err != nil {
			return "", errors.Wrap(err, "decode")
		}
		sb.WriteString(tok)
	}
	return strings.ReplaceAll(sb.String(), c.vocab.marker, ""), nil
}
