package corpus

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// Load reads a training corpus file: one text sample per line, blank lines
// skipped. Returns an error when the file yields no samples at all.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open corpus %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var texts []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		texts = append(texts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read corpus %s", path)
	}
	if len(texts) == 0 {
		return nil, errors.Errorf("corpus %s contains no text samples", path)
	}
	return texts, nil
}

// Normalize applies Unicode NFC normalization to every sample. Combining
// marks in Indic scripts can arrive decomposed; normalizing the corpus once
// up front keeps training input canonical. Runs at corpus load, never inside
// the tokenizer core, so encode/decode stay exact on raw input.
func Normalize(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = norm.NFC.String(t)
	}
	return out
}

// TotalBytes sums the UTF-8 byte length of all samples.
func TotalBytes(texts []string) int {
	n := 0
	for _, t := range texts {
		n += len(t)
	}
	return n
}
