package poem

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRhymeMatcher() *RhymeMatcher {
	counter := NewSyllableCounter(newFakePhonemes())
	return NewRhymeMatcher(counter, NewScorer(newFakeSimilarity()), testSynonyms)
}

func TestRhymes_Reflexive(t *testing.T) {
	for word, p := range testPronunciations {
		phonemes := strings.Fields(p)
		assert.True(t, Rhymes(phonemes, phonemes), word)
	}
}

func TestRhymes_Symmetric(t *testing.T) {
	var words []string
	for word := range testPronunciations {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, w1 := range words {
		for _, w2 := range words {
			p1, p2 := strings.Fields(testPronunciations[w1]), strings.Fields(testPronunciations[w2])
			assert.Equal(t, Rhymes(p1, p2), Rhymes(p2, p1), w1+"/"+w2)
		}
	}
}

func TestRhymes(t *testing.T) {
	tests := []struct {
		p1, p2   string
		expected bool
	}{
		{"K AE1 T", "M AE1 T", true},
		{"K AE1 T", "D AO1 G", false},
		{"D AO1 G", "F AA1 G", false},
		{"G L AE1 D", "L AE1 D", true},
		{"HH AH0 L OW1", "S OW1", true},
		{"ZH", "ZH", false},
		{"", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Rhymes(strings.Fields(tt.p1), strings.Fields(tt.p2)), tt.p1+"/"+tt.p2)
	}
}

func TestRhymeWindow(t *testing.T) {
	w, ok := RhymeWindow(Phonemes{"HH", "AH0", "L", "OW1"})
	assert.True(t, ok)
	assert.Equal(t, Phonemes{"OW1"}, w)

	w, ok = RhymeWindow(Phonemes{"K", "AE1", "T"})
	assert.True(t, ok)
	assert.Equal(t, Phonemes{"AE1", "T"}, w)

	_, ok = RhymeWindow(Phonemes{"SH"})
	assert.False(t, ok)
}

func TestRhymeMatcher_Candidates(t *testing.T) {
	m := newTestRhymeMatcher()
	assert.Equal(t, []string{"mat", "hat", "bat", "sat"}, m.Candidates("cat"))
	assert.Equal(t, []string{"mat", "hat", "bat", "sat"}, m.Candidates("CAT"))
	assert.Empty(t, m.Candidates("house"))
}

func TestRhymeMatcher_BestRhyme(t *testing.T) {
	m := newTestRhymeMatcher()

	word, score, err := m.BestRhyme("cat", "kitten")
	require.NoError(t, err)
	assert.Equal(t, "bat", word)
	assert.InDelta(t, 0.3, score, 1e-9)

	_, _, err = m.BestRhyme("house", "home")
	assert.True(t, errors.Is(err, ErrNoRhymeFound))
}

func TestRhymeMatcher_BestRhymingSynonyms(t *testing.T) {
	m := newTestRhymeMatcher()

	s1, s2, score, err := m.BestRhymingSynonyms("happy", "boy")
	require.NoError(t, err)
	assert.Equal(t, "glad", s1)
	assert.Equal(t, "lad", s2)
	assert.InDelta(t, 0.75, score, 1e-9)

	_, _, _, err = m.BestRhymingSynonyms("cat", "rug")
	assert.True(t, errors.Is(err, ErrNoRhymeFound))
}

func TestRhymeMatcher_MakeRhyme(t *testing.T) {
	tests := []struct {
		name             string
		line1, line2     []string
		expected1        []string
		expected2        []string
		expectedStrategy Strategy
		expectedCost     float64
	}{
		{
			name:  "already rhyming",
			line1: []string{"the", "cat"}, line2: []string{"a", "mat"},
			expected1: []string{"the", "cat"}, expected2: []string{"a", "mat"},
			expectedStrategy: StrategyNone,
		},
		{
			name:  "second word replaced",
			line1: []string{"the", "cat"}, line2: []string{"a", "rug"},
			expected1: []string{"the", "cat"}, expected2: []string{"a", "mat"},
			expectedStrategy: StrategyChangeSecond, expectedCost: 0.4,
		},
		{
			name:  "tie goes to the second line",
			line1: []string{"big", "dog"}, line2: []string{"the", "fog"},
			expected1: []string{"big", "dog"}, expected2: []string{"the", "log"},
			expectedStrategy: StrategyChangeSecond, expectedCost: 0.5,
		},
		{
			name:  "first word replaced",
			line1: []string{"the", "house"}, line2: []string{"the", "cat"},
			expected1: []string{"the", "mat"}, expected2: []string{"the", "cat"},
			expectedStrategy: StrategyChangeFirst, expectedCost: 1,
		},
		{
			name:  "both words replaced",
			line1: []string{"so", "happy"}, line2: []string{"the", "boy"},
			expected1: []string{"so", "glad"}, expected2: []string{"the", "lad"},
			expectedStrategy: StrategyChangeBoth, expectedCost: 0.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestRhymeMatcher()
			result, err := m.MakeRhyme(tt.line1, tt.line2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected1, result.Line1)
			assert.Equal(t, tt.expected2, result.Line2)
			assert.Equal(t, tt.expectedStrategy, result.Strategy)
			assert.InDelta(t, tt.expectedCost, result.Cost, 1e-9)
		})
	}
}

func TestRhymeMatcher_MakeRhymeDoesNotModifyInput(t *testing.T) {
	m := newTestRhymeMatcher()
	line1, line2 := []string{"the", "cat"}, []string{"a", "rug"}
	_, err := m.MakeRhyme(line1, line2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "rug"}, line2)
	assert.Equal(t, []string{"the", "cat"}, line1)
}

func TestRhymeMatcher_MakeRhymeFails(t *testing.T) {
	m := newTestRhymeMatcher()

	_, err := m.MakeRhyme([]string{"the", "house"}, []string{"so", "boy"})
	assert.True(t, errors.Is(err, ErrNoRhymeFound))

	_, err = m.MakeRhyme(nil, []string{"so", "boy"})
	assert.True(t, errors.Is(err, ErrEmptySequence))
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "none", StrategyNone.String())
	assert.Equal(t, "change_second", StrategyChangeSecond.String())
	assert.Equal(t, "change_first", StrategyChangeFirst.String())
	assert.Equal(t, "change_both", StrategyChangeBoth.String())
}
