package tokenizer

import "github.com/pkg/errors"

// EndOfWordMarker is the reserved symbol appended to the last subword unit of
// every word. It never appears as a standalone input character, so stripping
// it at decode time is unambiguous.
const EndOfWordMarker = "</w>"

// Merge is one learned merge rule: adjacent symbols Left and Right combine
// into Result (their concatenation). Rules must be replayed in learned order
// because later merges consume the outputs of earlier ones.
type Merge struct {
	Left   string
	Right  string
	Result string
}

// Vocabulary is the immutable artifact produced by training:
//
//   - tokenToID / idToToken: a bijection between token strings and dense ids
//     assigned in creation order starting at 0 (initial symbols first, in
//     sorted order, then one id per merge).
//   - merges: the ordered merge rules, len(merges) = Size() - initial count.
//   - marker: the end-of-word symbol, always present in the token table.
//
// A Vocabulary is write-once: Train and Load construct it, nothing mutates it
// afterwards, so any number of Codecs may share one concurrently.
type Vocabulary struct {
	tokenToID map[string]int
	idToToken []string
	merges    []Merge
	marker    string
}

// ID returns the id for a token. A miss means the token was never created by
// this vocabulary's training run and fails with ErrNotFound.
func (v *Vocabulary) ID(token string) (int, error) {
	id, ok := v.tokenToID[token]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "token %q", token)
	}
	return id, nil
}

// Token returns the token string for an id.
func (v *Vocabulary) Token(id int) (string, error) {
	if id < 0 || id >= len(v.idToToken) {
		return "", errors.Wrapf(ErrNotFound, "id %d (vocab size %d)", id, len(v.idToToken))
	}
	return v.idToToken[id], nil
}

// IsMarker reports whether id is the end-of-word marker token.
func (v *Vocabulary) IsMarker(id int) bool {
	return id >= 0 && id < len(v.idToToken) && v.idToToken[id] == v.marker
}

// Size returns the total number of tokens.
func (v *Vocabulary) Size() int {
	return len(v.idToToken)
}

// NumMerges returns the number of learned merge rules.
func (v *Vocabulary) NumMerges() int {
	return len(v.merges)
}

// Marker returns the end-of-word marker symbol.
func (v *Vocabulary) Marker() string {
	return v.marker
}

// Merges returns a copy of the ordered merge rules.
func (v *Vocabulary) Merges() []Merge {
	out := make([]Merge, len(v.merges))
	copy(out, v.merges)
	return out
}
