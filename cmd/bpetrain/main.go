package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/djeday123/subtok/pkg/config"
	"github.com/djeday123/subtok/pkg/corpus"
	"github.com/djeday123/subtok/tokenizer"
)

// ============================================================================
// bpetrain — Train a BPE vocabulary on a text corpus
//
// Usage:
//   go run cmd/bpetrain/main.go -corpus data/corpus.txt -vocab-size 4500 -out vocab.subtok
//   go run cmd/bpetrain/main.go -corpus data/corpus.txt -search -min-ratio 3.2
//   go run cmd/bpetrain/main.go -config train.json
//
// -search sweeps descending vocabulary sizes until the compression-ratio
// target is met, keeping the best result seen. A -config file replaces the
// individual flags.
// ============================================================================

func main() {
	defaults := config.DefaultConfig()
	configPath := flag.String("config", "", "JSON config file (replaces the other flags)")
	corpusPath := flag.String("corpus", defaults.Trainer.CorpusPath, "corpus file, one sample per line")
	vocabSize := flag.Int("vocab-size", defaults.Trainer.VocabSize, "target vocabulary size")
	outPath := flag.String("out", defaults.Trainer.OutPath, "output vocabulary file")
	minRatio := flag.Float64("min-ratio", defaults.Report.MinRatio, "compression ratio target")
	search := flag.Bool("search", defaults.Trainer.Search, "sweep vocab sizes until the ratio target is met")
	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Printf("✗ %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg.Trainer.CorpusPath = *corpusPath
		cfg.Trainer.VocabSize = *vocabSize
		cfg.Trainer.OutPath = *outPath
		cfg.Trainer.Search = *search
		cfg.Report.MinRatio = *minRatio
	}

	fmt.Println("=== subtok BPE training ===")

	texts, err := corpus.Load(cfg.Trainer.CorpusPath)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}
	texts = corpus.Normalize(texts)
	fmt.Printf("Corpus: %d texts, %d bytes\n\n", len(texts), corpus.TotalBytes(texts))

	if cfg.Trainer.Search {
		runSearch(texts, cfg)
		return
	}

	vocab, ratio, ok := trainOnce(texts, cfg.Trainer.VocabSize, cfg.Report.MinRatio)
	saveVocab(vocab, cfg.Trainer.OutPath)
	if !ok {
		fmt.Printf("\n✗ ratio target not met (%.4f < %.2f), try a smaller -vocab-size\n",
			ratio, cfg.Report.MinRatio)
		os.Exit(1)
	}
	fmt.Println("\n✓ all targets met")
}

func trainOnce(texts []string, vocabSize int, minRatio float64) (*tokenizer.Vocabulary, float64, bool) {
	fmt.Printf("--- Training, target vocab %d ---\n", vocabSize)
	start := time.Now()
	vocab, err := tokenizer.TrainVerbose(texts, vocabSize)
	if err != nil {
		fmt.Printf("✗ training failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Time: %v\n", time.Since(start))

	if err := tokenizer.VerifyRoundTrip(texts, vocab); err != nil {
		fmt.Printf("✗ round-trip verification failed: %v\n", err)
		os.Exit(1)
	}
	ratio, err := tokenizer.CompressionRatio(texts, vocab)
	if err != nil {
		fmt.Printf("✗ evaluation failed: %v\n", err)
		os.Exit(1)
	}

	stats := tokenizer.VocabStats(vocab)
	fmt.Printf("Vocab: %d tokens, %d merges\n", stats.VocabSize, stats.NumMerges)
	fmt.Printf("Round-trip: ✓  Compression: %.4fx (target %.2f %s)\n",
		ratio, minRatio, mark(ratio >= minRatio))
	return vocab, ratio, ratio >= minRatio
}

func runSearch(texts []string, cfg *config.Config) {
	var best *tokenizer.Vocabulary
	bestRatio := 0.0
	for _, size := range cfg.Trainer.SearchSizes {
		vocab, ratio, ok := trainOnce(texts, size, cfg.Report.MinRatio)
		fmt.Println()
		if ratio > bestRatio {
			best, bestRatio = vocab, ratio
		}
		if ok {
			fmt.Printf("✓ found suitable configuration: vocab %d, ratio %.4f\n", vocab.Size(), ratio)
			saveVocab(vocab, cfg.Trainer.OutPath)
			return
		}
	}
	fmt.Printf("✗ no size met ratio %.2f, keeping best (vocab %d, ratio %.4f)\n",
		cfg.Report.MinRatio, best.Size(), bestRatio)
	saveVocab(best, cfg.Trainer.OutPath)
	os.Exit(1)
}

func saveVocab(v *tokenizer.Vocabulary, path string) {
	if err := v.SaveFile(path); err != nil {
		fmt.Printf("✗ save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved vocabulary to %s\n", path)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
