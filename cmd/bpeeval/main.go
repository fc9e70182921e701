package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/djeday123/subtok/pkg/corpus"
	"github.com/djeday123/subtok/tokenizer"
)

// ============================================================================
// bpeeval — Inspect a saved BPE vocabulary against a corpus
//
// Usage:
//   go run cmd/bpeeval/main.go -vocab vocab.subtok -corpus data/corpus.txt -samples 5
//
// Prints per-sample tokenizations with round-trip checks, a vocabulary
// analysis (head/tail tokens, token length distribution), and the overall
// compression report.
// ============================================================================

func main() {
	vocabPath := flag.String("vocab", "vocab.subtok", "saved vocabulary file")
	corpusPath := flag.String("corpus", "data/corpus.txt", "evaluation corpus, one sample per line")
	samples := flag.Int("samples", 5, "number of sample tokenizations to print")
	flag.Parse()

	fmt.Println("=== subtok evaluation report ===")

	vocab, err := tokenizer.LoadFile(*vocabPath)
	if err != nil {
		fmt.Printf("✗ load %s: %v\n", *vocabPath, err)
		os.Exit(1)
	}
	texts, err := corpus.Load(*corpusPath)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}
	texts = corpus.Normalize(texts)

	stats := tokenizer.VocabStats(vocab)
	fmt.Printf("Vocabulary: %d tokens, %d merges, marker %q\n\n", stats.VocabSize, stats.NumMerges, stats.Marker)

	showSamples(vocab, texts, *samples)
	analyzeVocabulary(vocab)

	// --- Overall report ---
	fmt.Println("--- Overall ---")
	ratio, err := tokenizer.CompressionRatio(texts, vocab)
	if err != nil {
		fmt.Printf("✗ evaluation failed: %v\n", err)
		os.Exit(1)
	}
	rtErr := tokenizer.VerifyRoundTrip(texts, vocab)
	fmt.Printf("  Corpus: %d texts, %d bytes\n", len(texts), corpus.TotalBytes(texts))
	fmt.Printf("  Compression ratio: %.4f\n", ratio)
	fmt.Printf("  Round-trip: %s\n", mark(rtErr == nil))
	if rtErr != nil {
		fmt.Printf("    %v\n", rtErr)
		os.Exit(1)
	}
}

func showSamples(vocab *tokenizer.Vocabulary, texts []string, n int) {
	fmt.Println("--- Sample tokenizations ---")
	codec := tokenizer.NewCodec(vocab)
	if n > len(texts) {
		n = len(texts)
	}
	for i := 0; i < n; i++ {
		text := texts[i]
		ids, err := codec.Encode(text)
		if err != nil {
			fmt.Printf("  %d: ✗ encode: %v\n", i+1, err)
			continue
		}
		back, err := codec.Decode(ids)
		if err != nil {
			fmt.Printf("  %d: ✗ decode: %v\n", i+1, err)
			continue
		}
		ratio := 0.0
		if len(ids) > 0 {
			ratio = float64(len(text)) / float64(len(ids))
		}
		fmt.Printf("  %d: %s\n", i+1, trunc(text, 60))
		fmt.Printf("     %d bytes → %d tokens (%.2fx)  ids %v  roundtrip %s\n",
			len(text), len(ids), ratio, truncIDs(ids, 16), mark(back == text))
	}
	fmt.Println()
}

func analyzeVocabulary(vocab *tokenizer.Vocabulary) {
	fmt.Println("--- Vocabulary analysis ---")
	size := vocab.Size()

	show := func(label string, from, to int) {
		fmt.Printf("  %s:\n", label)
		for id := from; id < to; id++ {
			tok, _ := vocab.Token(id)
			fmt.Printf("    %4d: %q\n", id, tok)
		}
	}
	head := 10
	if head > size {
		head = size
	}
	show("First tokens", 0, head)
	if size > head {
		tail := size - 10
		if tail < head {
			tail = head
		}
		show("Last tokens", tail, size)
	}

	// Token length distribution (in runes, marker counted as one unit)
	lengths := make(map[int]int)
	for id := 0; id < size; id++ {
		tok, _ := vocab.Token(id)
		lengths[tokenLen(tok, vocab.Marker())]++
	}
	keys := make([]int, 0, len(lengths))
	for k := range lengths {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fmt.Println("  Token length distribution:")
	for _, k := range keys {
		fmt.Printf("    len %2d: %4d %s\n", k, lengths[k], bar(lengths[k]))
	}
	fmt.Println()
}

func tokenLen(tok, marker string) int {
	n := 0
	for i := 0; i < len(tok); {
		if len(tok)-i >= len(marker) && tok[i:i+len(marker)] == marker {
			i += len(marker)
			n++
			continue
		}
		_, size := utf8.DecodeRuneInString(tok[i:])
		i += size
		n++
	}
	return n
}

func bar(count int) string {
	n := count / 10
	if n > 40 {
		n = 40
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = '█'
	}
	return string(out)
}

func truncIDs(ids []int, n int) []int {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}

func trunc(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
