package poem

import "errors"

var (
	// ErrNoRhymeFound means no strategy could make the final words rhyme.
	ErrNoRhymeFound = errors.New("no rhyme found")
	// ErrSyllableEqualizationFailed means the two lines could not be brought to the same syllable count.
	ErrSyllableEqualizationFailed = errors.New("syllable equalization failed")
	// ErrNormalizationExhausted means no rule could canonicalize a token. It is never fatal; the
	// token is kept as-is.
	ErrNormalizationExhausted = errors.New("normalization exhausted")
	// ErrNoComposablePair means every candidate pair failed.
	ErrNoComposablePair = errors.New("no composable pair")
	// ErrEmptySequence means a line has no words to work with.
	ErrEmptySequence = errors.New("empty word sequence")
)
