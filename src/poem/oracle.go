package poem

// Phonemes is the pronunciation of one word as ARPAbet-style symbols. Vowel
// symbols end in a stress digit, e.g. "AE1".
type Phonemes []string

// PhonemeOracle looks up the pronunciation of a lowercase word.
type PhonemeOracle interface {
	Phonemes(word string) (Phonemes, bool)
}

// SynonymOracle returns semantically related replacements for a word. An
// unknown word has no synonyms.
type SynonymOracle interface {
	Synonyms(word string) []string
}

// SimilarityOracle scores word pairs with a higher-is-better similarity and
// answers nearest neighbour queries over its own vocabulary.
type SimilarityOracle interface {
	Similarity(a, b string) (float64, bool)
	NearestNeighbors(word string) []string
	Vocabulary() []string
}

// SpellOracle suggests corrections for a misspelled word, best first.
type SpellOracle interface {
	Suggest(word string) ([]string, bool)
}

// Lexicon bundles the oracles the composer depends on. The oracles are loaded
// once and shared read-only between compositions.
type Lexicon struct {
	Phonemes   PhonemeOracle
	Synonyms   SynonymOracle
	Similarity SimilarityOracle
	Spell      SpellOracle
}
