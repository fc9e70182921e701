package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================================
// Persistence
//
// A vocabulary serializes to a versioned structured-text blob:
//
//	# subtok vocab v1
//	# tokens <N>
//	# merges <M>
//	# marker <id>
//	<N lines: quoted token, line order = id>
//	<M lines: leftID rightID>
//
// Both operands of every merge are themselves vocabulary entries, so merge
// records are plain id pairs; merge k's result always holds id N-M+k. Load
// re-derives and checks that, which validates the whole structure (dense
// ids, bijection, merge reachability, learned order) before anything can be
// encoded against it.
// ============================================================================

const persistHeader = "# subtok vocab v1"

// Save writes the vocabulary to w in the versioned text format.
func (v *Vocabulary) Save(w io.Writer) error {
	markerID, err := v.ID(v.marker)
	if err != nil {
		return errors.Wrap(err, "marker not in vocabulary")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", persistHeader)
	fmt.Fprintf(bw, "# tokens %d\n", len(v.idToToken))
	fmt.Fprintf(bw, "# merges %d\n", len(v.merges))
	fmt.Fprintf(bw, "# marker %d\n", markerID)
	for _, tok := range v.idToToken {
		fmt.Fprintf(bw, "%s\n", strconv.Quote(tok))
	}
	for _, m := range v.merges {
		fmt.Fprintf(bw, "%d %d\n", v.tokenToID[m.Left], v.tokenToID[m.Right])
	}
	return bw.Flush()
}

// SaveFile writes the vocabulary to path, truncating any existing file.
func (v *Vocabulary) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return v.Save(f)
}

// Load reads a vocabulary previously written by Save and validates it
// structurally. Any malformed or inconsistent blob fails here with
// ErrCorrupt; a loaded vocabulary never fails lazily during encode/decode.
func Load(r io.Reader) (*Vocabulary, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	if line != persistHeader {
		return nil, errors.Wrapf(ErrCorrupt, "bad header %q", line)
	}

	numTokens, err := headerInt(sc, "tokens")
	if err != nil {
		return nil, err
	}
	numMerges, err := headerInt(sc, "merges")
	if err != nil {
		return nil, err
	}
	markerID, err := headerInt(sc, "marker")
	if err != nil {
		return nil, err
	}
	if numTokens <= 0 || numMerges < 0 || numMerges >= numTokens {
		return nil, errors.Wrapf(ErrCorrupt, "inconsistent counts: %d tokens, %d merges", numTokens, numMerges)
	}
	if markerID < 0 || markerID >= numTokens {
		return nil, errors.Wrapf(ErrCorrupt, "marker id %d out of range", markerID)
	}

	v := &Vocabulary{
		tokenToID: make(map[string]int, numTokens),
		idToToken: make([]string, 0, numTokens),
	}
	for i := 0; i < numTokens; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, err
		}
		tok, err := strconv.Unquote(line)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "token %d: bad quoting %q", i, line)
		}
		if tok == "" {
			return nil, errors.Wrapf(ErrCorrupt, "token %d is empty", i)
		}
		if prev, dup := v.tokenToID[tok]; dup {
			return nil, errors.Wrapf(ErrCorrupt, "token %q appears at ids %d and %d", tok, prev, i)
		}
		v.tokenToID[tok] = i
		v.idToToken = append(v.idToToken, tok)
	}
	v.marker = v.idToToken[markerID]

	initialCount := numTokens - numMerges
	for k := 0; k < numMerges; k++ {
		line, err := nextLine(sc)
		if err != nil {
			return nil, err
		}
		var left, right int
		if _, err := fmt.Sscanf(line, "%d %d", &left, &right); err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "merge %d: bad record %q", k, line)
		}
		// Operands must exist before the merge that consumes them.
		limit := initialCount + k
		if left < 0 || left >= limit || right < 0 || right >= limit {
			return nil, errors.Wrapf(ErrCorrupt, "merge %d references id outside [0,%d)", k, limit)
		}
		result := v.idToToken[left] + v.idToToken[right]
		if got, ok := v.tokenToID[result]; !ok || got != limit {
			return nil, errors.Wrapf(ErrCorrupt, "merge %d result %q does not hold id %d", k, result, limit)
		}
		v.merges = append(v.merges, Merge{Left: v.idToToken[left], Right: v.idToToken[right], Result: result})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadFile reads a vocabulary from path.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.Wrap(ErrCorrupt, "unexpected end of data")
	}
	return sc.Text(), nil
}

func headerInt(sc *bufio.Scanner, field string) (int, error) {
	line, err := nextLine(sc)
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(line, "# "+field+" %d", &n); err != nil {
		return 0, errors.Wrapf(ErrCorrupt, "bad %s header %q", field, line)
	}
	return n, nil
}
