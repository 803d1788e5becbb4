package poem

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Couplet is a composed two-line poem.
type Couplet struct {
	Line1  string
	Line2  string
	Words1 []string
	Words2 []string
	// Cost is the semantic damage done by the rhyme and syllable edits; 0 means the
	// lines are the input lines. It is Unusable when words had to be dropped.
	Cost     float64
	Strategy Strategy
	// Pair holds the indices of the input lines the couplet was built from.
	Pair [2]int
	// IDs holds the source ids of the lines when composed by ComposeFrom.
	IDs [2]string
}

func (c Couplet) String() string {
	return c.Line1 + "\n" + c.Line2
}

type Option func(*Composer)

// WithMaxPairs caps the number of candidate pairs tried. Zero means no cap.
func WithMaxPairs(n int) Option {
	return func(c *Composer) {
		c.maxPairs = n
	}
}

// WithDebug logs every stage of every attempt.
func WithDebug(debug bool) Option {
	return func(c *Composer) {
		c.debug = debug
	}
}

// Composer builds couplets out of candidate lines. A Composer holds no per-composition
// state and may be shared between goroutines.
type Composer struct {
	counter    *SyllableCounter
	scorer     *Scorer
	synonyms   SynonymOracle
	normalizer *Normalizer
	rhymer     *RhymeMatcher

	maxPairs int
	debug    bool
}

func NewComposer(lex Lexicon, opts ...Option) *Composer {
	counter := NewSyllableCounter(lex.Phonemes)
	scorer := NewScorer(lex.Similarity)
	c := &Composer{
		counter:    counter,
		scorer:     scorer,
		synonyms:   lex.Synonyms,
		normalizer: NewNormalizer(counter, scorer, lex.Spell),
		rhymer:     NewRhymeMatcher(counter, scorer, lex.Synonyms),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composer) Counter() *SyllableCounter {
	return c.counter
}

type candidatePair struct {
	i, j  int
	score float64
}

// Compose tries every distinct pair of lines, most similar first, and returns the first
// couplet that survives normalization, rhyming and syllable equalization. The context
// is checked between pairs.
func (c *Composer) Compose(ctx context.Context, lines [][]string) (Couplet, error) {
	pairs := c.rankPairs(lines)
	if len(pairs) == 0 {
		return Couplet{}, fmt.Errorf("%w: need two distinct lines, got %d lines", ErrNoComposablePair, len(lines))
	}
	tried := 0
	for _, p := range pairs {
		if c.maxPairs > 0 && tried >= c.maxPairs {
			break
		}
		if err := ctx.Err(); err != nil {
			return Couplet{}, fmt.Errorf("%w after %d pairs: %w", ErrNoComposablePair, tried, err)
		}
		tried++
		c.logf("trying to compose a poem from:\n\tline1: %s\n\tline2: %s",
			strings.Join(lines[p.i], " "), strings.Join(lines[p.j], " "))

		couplet, err := c.ComposePair(lines[p.i], lines[p.j])
		if err != nil {
			c.logf("moving to next pair of lines, %v", err)
			continue
		}
		couplet.Pair = [2]int{p.i, p.j}
		return couplet, nil
	}
	return Couplet{}, fmt.Errorf("%w: tried %d of %d pairs", ErrNoComposablePair, tried, len(pairs))
}

// ComposePair runs the whole pipeline on one pair of lines.
func (c *Composer) ComposePair(line1, line2 []string) (Couplet, error) {
	m := NewNormalizationMap()
	norm1 := c.normalizer.NormalizeTokens(line1, m)
	norm2 := c.normalizer.NormalizeTokens(line2, m)
	if len(norm1.Words) == 0 || len(norm2.Words) == 0 {
		return Couplet{}, ErrEmptySequence
	}
	c.logf("post normalization:\n\tline1: %s\n\tline2: %s", strings.Join(norm1.Words, " "), strings.Join(norm2.Words, " "))

	rhymed, err := c.rhymer.MakeRhyme(norm1.Words, norm2.Words)
	if err != nil {
		return Couplet{}, err
	}
	c.logf("after rhyming changes (%s):\n\tline1: %s\n\tline2: %s",
		rhymed.Strategy, strings.Join(rhymed.Line1, " "), strings.Join(rhymed.Line2, " "))

	equalized, err := EqualizeSyllables(c.newEqualizer(), c.newEqualizer(), rhymed.Line1, rhymed.Line2)
	if err != nil {
		return Couplet{}, err
	}
	c.logf("after syllable changes (%d rounds):\n\tline1: %s\n\tline2: %s",
		equalized.Rounds, strings.Join(equalized.Line1, " "), strings.Join(equalized.Line2, " "))

	words1 := norm1.Restore(equalized.Line1, m)
	words2 := norm2.Restore(equalized.Line2, m)
	return Couplet{
		Line1:    strings.Join(words1, " "),
		Line2:    strings.Join(words2, " "),
		Words1:   words1,
		Words2:   words2,
		Cost:     rhymed.Cost + equalized.Cost,
		Strategy: rhymed.Strategy,
	}, nil
}

// ComposeFrom fetches candidate lines for query from src and composes them. Lines are
// ordered by id so equal inputs always give equal couplets.
func (c *Composer) ComposeFrom(ctx context.Context, src SequenceSource, query string) (Couplet, error) {
	sequences, err := src.Fetch(ctx, query)
	if err != nil {
		return Couplet{}, fmt.Errorf("fetch %q: %w", query, err)
	}
	ids := make([]string, 0, len(sequences))
	for id := range sequences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	lines := make([][]string, len(ids))
	for i, id := range ids {
		lines[i] = sequences[id]
	}
	couplet, err := c.Compose(ctx, lines)
	if err != nil {
		return Couplet{}, err
	}
	couplet.IDs = [2]string{ids[couplet.Pair[0]], ids[couplet.Pair[1]]}
	return couplet, nil
}

func (c *Composer) newEqualizer() *SyllableEqualizer {
	return NewSyllableEqualizer(c.counter, c.scorer, c.synonyms)
}

// rankPairs lists every unordered pair of distinct, non-empty lines by descending
// similarity. Equal scores keep input order.
func (c *Composer) rankPairs(lines [][]string) []candidatePair {
	scoring := make([][]string, len(lines))
	for i, line := range lines {
		scoring[i] = scoringTokens(line)
	}
	var pairs []candidatePair
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			if len(lines[i]) == 0 || len(lines[j]) == 0 || sameWords(lines[i], lines[j]) {
				continue
			}
			pairs = append(pairs, candidatePair{i, j, c.scorer.PairSimilarity(scoring[i], scoring[j])})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})
	return pairs
}

func scoringTokens(line []string) []string {
	result := make([]string, 0, len(line))
	for _, token := range line {
		if cleaned := strings.ToLower(cleanToken(token)); cleaned != "" {
			result = append(result, cleaned)
		}
	}
	return result
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Composer) logf(format string, args ...interface{}) {
	if c.debug {
		log.Printf(format, args...)
	}
}
