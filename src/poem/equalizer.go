package poem

import (
	"fmt"
	"math"
	"strings"
)

// Unusable is the cost of a run that had to drop a word because no synonym could move
// its syllable count. It compares greater than every real cost.
var Unusable = math.Inf(1)

type replacement struct {
	word  string
	score float64
	ok    bool
}

// SyllableEqualizer drives the syllable count of one line toward a target, one
// substitution at a time, always taking the substitution that keeps the most meaning.
// The last word is never edited; it belongs to the rhyme.
//
// Caches live for one run: Reset clears them, Retarget keeps them.
type SyllableEqualizer struct {
	counter  *SyllableCounter
	scorer   *Scorer
	synonyms SynonymOracle

	words   []string
	current int
	desired int
	cost    float64

	increases  map[string]replacement
	reductions map[string]replacement
	syllables  map[string]int
}

func NewSyllableEqualizer(counter *SyllableCounter, scorer *Scorer, synonyms SynonymOracle) *SyllableEqualizer {
	return &SyllableEqualizer{counter: counter, scorer: scorer, synonyms: synonyms}
}

// Reset starts a new run on words with the given target syllable count.
func (e *SyllableEqualizer) Reset(words []string, target int) {
	e.increases = make(map[string]replacement)
	e.reductions = make(map[string]replacement)
	e.syllables = make(map[string]int)
	e.Retarget(words, target)
}

// Retarget replaces the line and target within the current run, clearing the cost but
// keeping the caches.
func (e *SyllableEqualizer) Retarget(words []string, target int) {
	if e.syllables == nil {
		e.Reset(words, target)
		return
	}
	e.words = append([]string(nil), words...)
	e.desired = target
	e.cost = 0
	e.current = e.countLine()
}

func (e *SyllableEqualizer) Words() []string {
	return append([]string(nil), e.words...)
}

func (e *SyllableEqualizer) Count() int {
	return e.current
}

func (e *SyllableEqualizer) Target() int {
	return e.desired
}

// Cost is the summed 1 - similarity of every substitution since the last Reset or
// Retarget, or Unusable once a word had to be dropped.
func (e *SyllableEqualizer) Cost() float64 {
	return e.cost
}

func (e *SyllableEqualizer) Done() bool {
	return e.current == e.desired
}

// Step moves the line one edit closer to its target. It is a no-op once the target is
// reached. When no word has a usable synonym the first word is dropped instead; a line
// with nothing left to drop fails with ErrSyllableEqualizationFailed.
func (e *SyllableEqualizer) Step() error {
	switch {
	case e.current < e.desired:
		return e.shift(e.increases, 1)
	case e.current > e.desired:
		return e.shift(e.reductions, -1)
	}
	return nil
}

func (e *SyllableEqualizer) shift(cache map[string]replacement, delta int) error {
	if len(e.words) == 0 {
		return ErrEmptySequence
	}
	bestIdx := -1
	var best replacement
	for i, word := range e.words[:len(e.words)-1] {
		r, ok := cache[word]
		if !ok {
			r = e.synonymWithSyllables(word, e.count(word)+delta)
			cache[word] = r
		}
		if r.ok && (bestIdx < 0 || r.score > best.score) {
			bestIdx, best = i, r
		}
	}
	if bestIdx < 0 {
		if len(e.words) < 2 {
			return fmt.Errorf("%w: nothing left to edit in %q", ErrSyllableEqualizationFailed, strings.Join(e.words, " "))
		}
		e.cost = Unusable
		e.words = e.words[1:]
		e.current = e.countLine()
		return nil
	}
	e.words[bestIdx] = best.word
	e.cost += 1 - best.score
	e.current = e.countLine()
	return nil
}

// synonymWithSyllables finds the synonym of word with exactly n syllables that is most
// similar to word.
func (e *SyllableEqualizer) synonymWithSyllables(word string, n int) replacement {
	if n <= 0 || e.synonyms == nil {
		return replacement{}
	}
	var best replacement
	for _, option := range e.synonyms.Synonyms(strings.ToLower(word)) {
		if !isPlainWord(option) || option == word || e.count(option) != n {
			continue
		}
		score := e.scorer.WordSimilarity(word, option)
		if !best.ok || score > best.score || (score == best.score && option < best.word) {
			best = replacement{word: option, score: score, ok: true}
		}
	}
	return best
}

func (e *SyllableEqualizer) count(word string) int {
	if n, ok := e.syllables[word]; ok {
		return n
	}
	n := e.counter.Count(word)
	e.syllables[word] = n
	return n
}

func (e *SyllableEqualizer) countLine() int {
	total := 0
	for _, word := range e.words {
		total += e.count(word)
	}
	return total
}

// Equalized is the outcome of EqualizeSyllables.
type Equalized struct {
	Line1  []string
	Line2  []string
	Cost   float64
	Rounds int
}

// EqualizeSyllables edits both lines until they have the same syllable count. Every
// round both sides propose one edit toward the other's count; the cheaper proposal is
// kept and the other side is rolled back and retargeted. Equal costs go to the edit
// that leaves the smaller gap, then to the second side. A side whose step failed
// outright never wins the round. Failures still report the rounds played.
func EqualizeSyllables(side1, side2 *SyllableEqualizer, line1, line2 []string) (Equalized, error) {
	if len(line1) == 0 || len(line2) == 0 {
		return Equalized{}, ErrEmptySequence
	}
	side2.Reset(line2, 0)
	side1.Reset(line1, side2.Count())
	side2.Retarget(line2, side1.Count())

	limit := roundLimit(len(line1)+len(line2), side1.Count(), side2.Count())
	total := 0.0
	rounds := 0
	for side1.Count() != side2.Count() {
		if rounds >= limit {
			return Equalized{Rounds: rounds}, fmt.Errorf("%w: no convergence after %d rounds", ErrSyllableEqualizationFailed, rounds)
		}
		rounds++

		prev1, prev2 := side1.Words(), side2.Words()
		prevCount1, prevCount2 := side1.Count(), side2.Count()
		err1, err2 := side1.Step(), side2.Step()
		if err1 != nil && err2 != nil {
			return Equalized{Rounds: rounds}, err1
		}
		cost1, cost2 := side1.Cost(), side2.Cost()
		if err1 != nil {
			cost1 = Unusable
		}
		if err2 != nil {
			cost2 = Unusable
		}

		// a dropped word can move a side away from its target
		gap1 := abs(side1.Count() - prevCount2)
		gap2 := abs(side2.Count() - prevCount1)
		if err2 != nil || (err1 == nil && (cost1 < cost2 || (cost1 == cost2 && gap1 < gap2))) {
			total += cost1
			side1.Retarget(side1.Words(), prevCount2)
			side2.Retarget(prev2, side1.Count())
		} else {
			total += cost2
			side2.Retarget(side2.Words(), prevCount1)
			side1.Retarget(prev1, side2.Count())
		}
	}
	return Equalized{
		Line1:  side1.Words(),
		Line2:  side2.Words(),
		Cost:   total,
		Rounds: rounds,
	}, nil
}

// roundLimit bounds the coupled loop. A kept substitution closes the gap by one
// syllable and the gap never exceeds the larger count, so only dropped words (at most
// one per word) can reopen it.
func roundLimit(words, count1, count2 int) int {
	return (words + 1) * (max(count1, count2) + 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
