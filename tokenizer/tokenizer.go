package tokenizer

// Tokenizer is the common interface for encoders in subtok.
// Codec implements it over any trained or loaded Vocabulary.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
	VocabSize() int
}

var _ Tokenizer = (*Codec)(nil)
