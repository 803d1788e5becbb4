package poem

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Strategy names the edit MakeRhyme applied to the final words.
type Strategy int

const (
	// StrategyNone means the final words already rhymed.
	StrategyNone Strategy = iota
	// StrategyChangeSecond replaces the last word of the second line.
	StrategyChangeSecond
	// StrategyChangeFirst replaces the last word of the first line.
	StrategyChangeFirst
	// StrategyChangeBoth replaces both last words with rhyming synonyms.
	StrategyChangeBoth
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyChangeSecond:
		return "change_second"
	case StrategyChangeFirst:
		return "change_first"
	case StrategyChangeBoth:
		return "change_both"
	default:
		return "unknown"
	}
}

// infeasible is the score of a strategy that found no rhyme. It loses to every real score.
var infeasible = math.Inf(-1)

// RhymeWindow returns the suffix of p starting at its last vowel symbol. ok is false when
// p has no vowel symbol at all.
func RhymeWindow(p Phonemes) (Phonemes, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if isVowelSymbol(p[i]) {
			return p[i:], true
		}
	}
	return nil, false
}

// Rhymes reports whether the rhyme windows of p1 and p2 are equal symbol for symbol.
// Pronunciations without a vowel symbol never rhyme.
func Rhymes(p1, p2 Phonemes) bool {
	w1, ok := RhymeWindow(p1)
	if !ok {
		return false
	}
	w2, ok := RhymeWindow(p2)
	if !ok || len(w1) != len(w2) {
		return false
	}
	for i := range w1 {
		if w1[i] != w2[i] {
			return false
		}
	}
	return true
}

func windowKey(w Phonemes) string {
	return strings.Join(w, " ")
}

// RhymeMatcher finds rhyming replacements for the final words of two lines. It is safe
// for concurrent use once constructed.
type RhymeMatcher struct {
	counter  *SyllableCounter
	scorer   *Scorer
	synonyms SynonymOracle

	once  sync.Once
	index map[string][]string // rhyme window -> vocabulary words, in vocabulary order
}

func NewRhymeMatcher(counter *SyllableCounter, scorer *Scorer, synonyms SynonymOracle) *RhymeMatcher {
	return &RhymeMatcher{counter: counter, scorer: scorer, synonyms: synonyms}
}

// buildIndex groups every vocabulary word with a known pronunciation by its rhyme window,
// so a candidate lookup is a single map read instead of a vocabulary scan.
func (m *RhymeMatcher) buildIndex() {
	m.index = make(map[string][]string)
	for _, word := range m.scorer.Vocabulary() {
		if !isPlainWord(word) {
			continue
		}
		p, ok := m.counter.Lookup(word)
		if !ok {
			continue
		}
		w, ok := RhymeWindow(p)
		if !ok {
			continue
		}
		key := windowKey(w)
		m.index[key] = append(m.index[key], word)
	}
}

// Candidates returns every vocabulary word with a known pronunciation that rhymes with
// word, excluding word itself.
func (m *RhymeMatcher) Candidates(word string) []string {
	m.once.Do(m.buildIndex)
	word = strings.ToLower(word)
	w, ok := RhymeWindow(m.counter.Phonemes(word))
	if !ok {
		return nil
	}
	var result []string
	for _, candidate := range m.index[windowKey(w)] {
		if candidate != word {
			result = append(result, candidate)
		}
	}
	return result
}

// BestRhyme picks the candidate rhyming with start that is most similar to goal.
func (m *RhymeMatcher) BestRhyme(start, goal string) (string, float64, error) {
	best, bestScore := "", infeasible
	for _, candidate := range m.Candidates(start) {
		score := m.scorer.WordSimilarity(goal, candidate)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if best == "" {
		return "", infeasible, fmt.Errorf("%w for %q", ErrNoRhymeFound, start)
	}
	return best, bestScore, nil
}

// BestRhymingSynonyms replaces both words with a pair of mutually rhyming synonyms,
// maximising the average similarity of each synonym to the word it replaces.
func (m *RhymeMatcher) BestRhymingSynonyms(word1, word2 string) (string, string, float64, error) {
	syns1 := m.pronounceable(word1)
	syns2 := m.pronounceable(word2)

	best1, best2, bestScore := "", "", infeasible
	for _, s1 := range syns1 {
		for _, s2 := range syns2 {
			if windowKey(s1.window) != windowKey(s2.window) {
				continue
			}
			score := (m.scorer.WordSimilarity(s1.word, word1) + m.scorer.WordSimilarity(s2.word, word2)) / 2
			if score > bestScore {
				best1, best2, bestScore = s1.word, s2.word, score
			}
		}
	}
	if best1 == "" {
		return "", "", infeasible, fmt.Errorf("%w for synonyms of %q and %q", ErrNoRhymeFound, word1, word2)
	}
	return best1, best2, bestScore, nil
}

type windowedWord struct {
	word   string
	window Phonemes
}

func (m *RhymeMatcher) pronounceable(word string) []windowedWord {
	if m.synonyms == nil {
		return nil
	}
	var result []windowedWord
	for _, syn := range m.synonyms.Synonyms(strings.ToLower(word)) {
		if !isPlainWord(syn) {
			continue
		}
		p, ok := m.counter.Lookup(syn)
		if !ok {
			continue
		}
		if w, ok := RhymeWindow(p); ok {
			result = append(result, windowedWord{syn, w})
		}
	}
	return result
}

// RhymeResult is the outcome of MakeRhyme. Lines are fresh copies of the input.
type RhymeResult struct {
	Line1    []string
	Line2    []string
	Strategy Strategy
	// Score is the similarity kept by the chosen strategy; Cost is 1 - Score, or 0 when
	// nothing changed.
	Score float64
	Cost  float64
}

// MakeRhyme makes the last words of the two lines rhyme with the cheapest edit. Lines
// whose last words already rhyme are returned unchanged. Ties between strategies go to
// the single-word edits, change_second first.
func (m *RhymeMatcher) MakeRhyme(line1, line2 []string) (RhymeResult, error) {
	if len(line1) == 0 || len(line2) == 0 {
		return RhymeResult{}, ErrEmptySequence
	}
	result := RhymeResult{
		Line1: append([]string(nil), line1...),
		Line2: append([]string(nil), line2...),
	}
	last1, last2 := line1[len(line1)-1], line2[len(line2)-1]
	if Rhymes(m.counter.Phonemes(last1), m.counter.Phonemes(last2)) {
		result.Strategy = StrategyNone
		return result, nil
	}

	second, secondScore, _ := m.BestRhyme(last1, last2)
	first, firstScore, _ := m.BestRhyme(last2, last1)
	both1, both2, bothScore, _ := m.BestRhymingSynonyms(last1, last2)

	result.Strategy, result.Score = StrategyChangeSecond, secondScore
	if firstScore > result.Score {
		result.Strategy, result.Score = StrategyChangeFirst, firstScore
	}
	if bothScore > result.Score {
		result.Strategy, result.Score = StrategyChangeBoth, bothScore
	}
	if math.IsInf(result.Score, -1) {
		return RhymeResult{}, fmt.Errorf("%w: %q / %q", ErrNoRhymeFound, last1, last2)
	}

	switch result.Strategy {
	case StrategyChangeSecond:
		result.Line2[len(line2)-1] = second
	case StrategyChangeFirst:
		result.Line1[len(line1)-1] = first
	case StrategyChangeBoth:
		result.Line1[len(line1)-1] = both1
		result.Line2[len(line2)-1] = both2
	}
	result.Cost = 1 - result.Score
	return result, nil
}

// isPlainWord accepts lowercase ASCII letters only.
func isPlainWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
