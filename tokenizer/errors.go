package tokenizer

import "github.com/pkg/errors"

// Error taxonomy. Callers match with errors.Is; context is layered on with
// pkg/errors wrapping so the failing symbol or id survives to the message.
var (
	// ErrInvalidInput: empty corpus or an unreachable target vocab size at
	// train time. Reported to the caller, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfVocabulary: encode met a symbol that was never seen during
	// training. Hard failure, no unk substitution.
	ErrOutOfVocabulary = errors.New("out-of-vocabulary symbol")

	// ErrNotFound: lookup by an id or token the vocabulary does not contain.
	// Indicates a mismatched vocabulary, not an expected condition.
	ErrNotFound = errors.New("not found in vocabulary")

	// ErrCorrupt: a persisted vocabulary failed structural validation at
	// load time (broken bijection, merge referencing a missing symbol).
	ErrCorrupt = errors.New("corrupt vocabulary data")
)
