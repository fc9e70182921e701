package tokenizer

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pkg/errors"
)

// ============================================================================
// BPE training (Sennrich et al., 2016), word-boundary aware:
//
//  1. Split each text into words with wordPattern. Whitespace runs count as
//     words too, so decoding reproduces the input byte-for-byte.
//  2. Represent each distinct word as its code points plus the end-of-word
//     marker, tracked with a repeat count instead of re-scanning the corpus.
//  3. Seed the vocabulary with every distinct symbol, ids in sorted order.
//  4. Repeatedly merge the most frequent adjacent pair (ties go to the
//     lexicographically smaller pair) until the target size is reached or no
//     pair occurs twice.
//
// Pair counts are maintained incrementally: a merge only touches the words
// that contain the merged pair, via a pair -> word-index inverted index.
// ============================================================================

// wordPattern is the fixed word-boundary rule shared by trainer and codec.
// Every character falls into one of the two alternatives, so the matches
// concatenate back to the original text.
var wordPattern = regexp.MustCompile(`\S+|\s+`)

// trainWord is one distinct word in the trainer's working set: its current
// symbol sequence and how many times it occurs across the corpus. The set is
// owned by train() and discarded on return.
type trainWord struct {
	syms []string
	freq int
}

type symbolPair struct {
	left  string
	right string
}

// pairStats tracks weighted adjacent-pair frequencies and, per pair, which
// words currently contain it.
type pairStats struct {
	counts map[symbolPair]int
	where  map[symbolPair]map[int]struct{}
}

func newPairStats() *pairStats {
	return &pairStats{
		counts: make(map[symbolPair]int),
		where:  make(map[symbolPair]map[int]struct{}),
	}
}

// add registers every adjacent pair of w's current symbols, weighted by freq.
func (ps *pairStats) add(idx int, w *trainWord) {
	for i := 0; i+1 < len(w.syms); i++ {
		p := symbolPair{w.syms[i], w.syms[i+1]}
		ps.counts[p] += w.freq
		set, ok := ps.where[p]
		if !ok {
			set = make(map[int]struct{})
			ps.where[p] = set
		}
		set[idx] = struct{}{}
	}
}

// remove undoes add for w's current symbols.
func (ps *pairStats) remove(idx int, w *trainWord) {
	for i := 0; i+1 < len(w.syms); i++ {
		p := symbolPair{w.syms[i], w.syms[i+1]}
		ps.counts[p] -= w.freq
		if ps.counts[p] <= 0 {
			delete(ps.counts, p)
			delete(ps.where, p)
			continue
		}
		if set, ok := ps.where[p]; ok {
			delete(set, idx)
		}
	}
}

// drop forgets a pair entirely without touching any word.
func (ps *pairStats) drop(p symbolPair) {
	delete(ps.counts, p)
	delete(ps.where, p)
}

// best returns the highest-count pair. Ties break to the lexicographically
// smaller (left, right) pair so training is reproducible regardless of map
// iteration order.
func (ps *pairStats) best() (symbolPair, int) {
	var bestPair symbolPair
	bestCount := 0
	for p, c := range ps.counts {
		if c > bestCount {
			bestPair, bestCount = p, c
			continue
		}
		if c == bestCount && (p.left < bestPair.left ||
			(p.left == bestPair.left && p.right < bestPair.right)) {
			bestPair = p
		}
	}
	return bestPair, bestCount
}

// Train builds a Vocabulary from a corpus of texts.
//
// targetVocabSize bounds the total vocabulary (initial symbols + merges). If
// no adjacent pair repeats before the target is reached, training stops early
// with a smaller vocabulary; that is a valid outcome, not an error. Two runs
// over the same corpus and target always produce the same vocabulary.
func Train(texts []string, targetVocabSize int) (*Vocabulary, error) {
	return train(texts, targetVocabSize, false)
}

// TrainVerbose is Train with progress printed to stdout.
func TrainVerbose(texts []string, targetVocabSize int) (*Vocabulary, error) {
	return train(texts, targetVocabSize, true)
}

func train(texts []string, targetVocabSize int, verbose bool) (*Vocabulary, error) {
	words := buildWorkingSet(texts)
	if len(words) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty corpus")
	}

	v := &Vocabulary{
		tokenToID: make(map[string]int),
		marker:    EndOfWordMarker,
	}

	// Initial inventory: every distinct symbol, ids in sorted order.
	seen := make(map[string]struct{})
	for _, w := range words {
		for _, s := range w.syms {
			seen[s] = struct{}{}
		}
	}
	initial := make([]string, 0, len(seen))
	for s := range seen {
		initial = append(initial, s)
	}
	sort.Strings(initial)
	for _, s := range initial {
		v.tokenToID[s] = len(v.idToToken)
		v.idToToken = append(v.idToToken, s)
	}

	if targetVocabSize < len(initial) {
		return nil, errors.Wrapf(ErrInvalidInput,
			"target vocab size %d below initial symbol count %d", targetVocabSize, len(initial))
	}

	if verbose {
		fmt.Printf("BPE training: %d distinct words, %d initial symbols, target vocab %d\n",
			len(words), len(initial), targetVocabSize)
	}

	stats := newPairStats()
	for i := range words {
		stats.add(i, words[i])
	}

	numMerges := targetVocabSize - len(initial)
	for m := 0; len(v.idToToken) < targetVocabSize; {
		pair, count := stats.best()
		if count < 2 {
			if verbose {
				fmt.Printf("  stopped at merge %d: no pair occurs twice\n", m)
			}
			break
		}

		merged := pair.left + pair.right
		if _, exists := v.tokenToID[merged]; exists {
			// The input text happened to spell out an existing token (e.g. a
			// literal "</w>"). Merging would break the id bijection, so this
			// pair is retired instead.
			stats.drop(pair)
			continue
		}

		v.tokenToID[merged] = len(v.idToToken)
		v.idToToken = append(v.idToToken, merged)
		v.merges = append(v.merges, Merge{Left: pair.left, Right: pair.right, Result: merged})

		for _, idx := range sortedIndices(stats.where[pair]) {
			w := words[idx]
			stats.remove(idx, w)
			w.syms = replacePair(w.syms, pair, merged)
			stats.add(idx, w)
		}

		if verbose && (m < 5 || (m+1)%500 == 0 || m == numMerges-1) {
			fmt.Printf("  merge %4d/%d  %q + %q -> %q  freq=%d\n",
				m+1, numMerges, pair.left, pair.right, merged, count)
		}
		m++
	}

	if verbose {
		fmt.Printf("BPE done: vocab=%d merges=%d\n", len(v.idToToken), len(v.merges))
	}
	return v, nil
}

// buildWorkingSet splits the corpus into words and collapses repeats into a
// multiplicity count. Word order follows first appearance in the corpus.
func buildWorkingSet(texts []string) []*trainWord {
	index := make(map[string]*trainWord)
	var words []*trainWord
	for _, text := range texts {
		for _, word := range wordPattern.FindAllString(text, -1) {
			if w, ok := index[word]; ok {
				w.freq++
				continue
			}
			w := &trainWord{syms: splitWord(word), freq: 1}
			index[word] = w
			words = append(words, w)
		}
	}
	return words
}

// splitWord decomposes a word into its initial symbols: one per code point,
// with the end-of-word marker appended.
func splitWord(word string) []string {
	syms := make([]string, 0, len(word)+1)
	for _, r := range word {
		syms = append(syms, string(r))
	}
	return append(syms, EndOfWordMarker)
}

// replacePair rewrites syms with every non-overlapping (left, right)
// occurrence collapsed into merged, scanning leftmost-first.
func replacePair(syms []string, p symbolPair, merged string) []string {
	out := make([]string, 0, len(syms))
	for i := 0; i < len(syms); {
		if i+1 < len(syms) && syms[i] == p.left && syms[i+1] == p.right {
			out = append(out, merged)
			i += 2
		} else {
			out = append(out, syms[i])
			i++
		}
	}
	return out
}

func sortedIndices(set map[int]struct{}) []int {
	idxs := make([]int, 0, len(set))
	for idx := range set {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}
