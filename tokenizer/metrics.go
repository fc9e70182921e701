package tokenizer

import "github.com/pkg/errors"

// CompressionRatio is the total UTF-8 byte length of texts divided by the
// total number of tokens they encode to. A vocabulary that still contains
// its full initial inventory always scores at least 1: one token never
// covers less than one byte.
func CompressionRatio(texts []string, v *Vocabulary) (float64, error) {
	c := NewCodec(v)
	totalBytes, totalTokens := 0, 0
	for _, text := range texts {
		ids, err := c.Encode(text)
		if err != nil {
			return 0, err
		}
		totalBytes += len(text)
		totalTokens += len(ids)
	}
	if totalTokens == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "no tokens produced")
	}
	return float64(totalBytes) / float64(totalTokens), nil
}

// VerifyRoundTrip encodes and decodes every text and reports the first one
// that does not reconstruct exactly.
func VerifyRoundTrip(texts []string, v *Vocabulary) error {
	c := NewCodec(v)
	for i, text := range texts {
		ids, err := c.Encode(text)
		if err != nil {
			return errors.Wrapf(err, "text %d", i)
		}
		back, err := c.Decode(ids)
		if err != nil {
			return errors.Wrapf(err, "text %d", i)
		}
		if back != text {
			return errors.Errorf("round-trip mismatch on text %d: %q decoded as %q", i, text, back)
		}
	}
	return nil
}

// Stats summarizes a vocabulary for external reporting. All fields are read
// straight from the Vocabulary, nothing is recomputed.
type Stats struct {
	VocabSize int
	NumMerges int
	Marker    string
}

// VocabStats returns the reporting summary for v.
func VocabStats(v *Vocabulary) Stats {
	return Stats{VocabSize: v.Size(), NumMerges: v.NumMerges(), Marker: v.Marker()}
}
