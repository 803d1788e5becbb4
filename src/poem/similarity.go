package poem

// Scorer wraps a SimilarityOracle with the scoring rules the composer relies on.
type Scorer struct {
	oracle SimilarityOracle
}

func NewScorer(oracle SimilarityOracle) *Scorer {
	return &Scorer{oracle: oracle}
}

// WordSimilarity scores a against b. Identical words score 0 so that a word is never
// "replaced" by itself, and pairs the oracle cannot score also score 0.
func (s *Scorer) WordSimilarity(a, b string) float64 {
	if a == b || s.oracle == nil {
		return 0
	}
	score, ok := s.oracle.Similarity(a, b)
	if !ok {
		return 0
	}
	return score
}

// SequenceSimilarity averages, over every word of a, the average similarity of that
// word to every word of b. It is not symmetric for asymmetric oracles.
func (s *Scorer) SequenceSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	total := 0.0
	for _, w1 := range a {
		wordTotal := 0.0
		for _, w2 := range b {
			wordTotal += s.WordSimilarity(w1, w2)
		}
		total += wordTotal / float64(len(b))
	}
	return total / float64(len(a))
}

// PairSimilarity is the symmetric ranking score for a candidate pair.
func (s *Scorer) PairSimilarity(a, b []string) float64 {
	return (s.SequenceSimilarity(a, b) + s.SequenceSimilarity(b, a)) / 2
}

// Vocabulary is the oracle's vocabulary, or nil when there is no oracle.
func (s *Scorer) Vocabulary() []string {
	if s.oracle == nil {
		return nil
	}
	return s.oracle.Vocabulary()
}

func (s *Scorer) NearestNeighbors(word string) []string {
	if s.oracle == nil {
		return nil
	}
	return s.oracle.NearestNeighbors(word)
}
