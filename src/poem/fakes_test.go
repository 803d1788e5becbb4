package poem

import (
	"context"
	"strings"
)

var testPronunciations = map[string]string{
	"a":        "AH0",
	"the":      "DH AH0",
	"so":       "S OW1",
	"cat":      "K AE1 T",
	"mat":      "M AE1 T",
	"hat":      "HH AE1 T",
	"bat":      "B AE1 T",
	"sat":      "S AE1 T",
	"dog":      "D AO1 G",
	"log":      "L AO1 G",
	"fog":      "F AA1 G",
	"frog":     "F R AA1 G",
	"big":      "B IH1 G",
	"huge":     "HH Y UW1 JH",
	"giant":    "JH AY1 AH0 N T",
	"enormous": "IH0 N AO1 R M AH0 S",
	"hello":    "HH AH0 L OW1",
	"five":     "F AY1 V",
	"twenty":   "T W EH1 N T IY0",
	"rug":      "R AH1 G",
	"carpet":   "K AA1 R P AH0 T",
	"kitten":   "K IH1 T AH0 N",
	"feline":   "F IY1 L AY2 N",
	"house":    "HH AW1 S",
	"mouse":    "M AW1 S",
	"home":     "HH OW1 M",
	"dwelling": "D W EH1 L IH0 NG",
	"happy":    "HH AE1 P IY0",
	"boy":      "B OY1",
	"glad":     "G L AE1 D",
	"lad":      "L AE1 D",
	"new":      "N UW1",
	"york":     "Y AO1 R K",
}

type fakePhonemes map[string]Phonemes

func (f fakePhonemes) Phonemes(word string) (Phonemes, bool) {
	p, ok := f[word]
	return p, ok
}

func newFakePhonemes() fakePhonemes {
	result := make(fakePhonemes)
	for word, p := range testPronunciations {
		result[word] = strings.Fields(p)
	}
	return result
}

type fakeSynonyms map[string][]string

func (f fakeSynonyms) Synonyms(word string) []string {
	return f[word]
}

var testSynonyms = fakeSynonyms{
	"cat":      {"feline", "kitten"},
	"rug":      {"carpet", "mat"},
	"big":      {"enormous", "giant", "huge"},
	"huge":     {"big", "enormous", "giant"},
	"giant":    {"big", "huge"},
	"enormous": {"big", "giant", "huge"},
	"house":    {"dwelling", "home"},
	"happy":    {"glad"},
	"boy":      {"lad"},
}

type pair struct{ a, b string }

type fakeSimilarity struct {
	scores     map[pair]float64
	neighbors  map[string][]string
	vocabulary []string
}

func (f *fakeSimilarity) Similarity(a, b string) (float64, bool) {
	if a == b {
		return 1, true
	}
	if s, ok := f.scores[pair{a, b}]; ok {
		return s, true
	}
	s, ok := f.scores[pair{b, a}]
	return s, ok
}

func (f *fakeSimilarity) NearestNeighbors(word string) []string {
	return f.neighbors[word]
}

func (f *fakeSimilarity) Vocabulary() []string {
	return f.vocabulary
}

func newFakeSimilarity() *fakeSimilarity {
	return &fakeSimilarity{
		scores: map[pair]float64{
			{"rug", "mat"}:         0.6,
			{"rug", "carpet"}:      0.8,
			{"kitten", "bat"}:      0.3,
			{"kitten", "hat"}:      0.1,
			{"fog", "log"}:         0.5,
			{"dog", "frog"}:        0.5,
			{"happy", "glad"}:      0.8,
			{"boy", "lad"}:         0.7,
			{"big", "giant"}:       0.7,
			{"big", "huge"}:        0.9,
			{"big", "enormous"}:    0.6,
			{"huge", "giant"}:      0.8,
			{"huge", "enormous"}:   0.85,
			{"enormous", "giant"}:  0.9,
			{"cat", "kitten"}:      0.9,
			{"cat", "dog"}:         0.7,
			{"cat", "mat"}:         0.2,
			{"dog", "mat"}:         0.1,
			{"the", "a"}:           0.4,
			{"house", "home"}:      0.8,
			{"house", "dwelling"}:  0.6,
		},
		neighbors: map[string][]string{
			"kitteh": {"kitty_cat", "cat", "kitten"},
			"nyc":    {"new_york", "manhattan"},
		},
		vocabulary: []string{
			"the", "a", "so", "cat", "mat", "hat", "bat", "sat", "dog", "log", "fog", "frog",
			"big", "huge", "giant", "enormous", "hello", "rug", "kitten", "house",
			"happy", "boy", "glad", "lad", "Cat", "new_york",
		},
	}
}

type fakeSpell map[string][]string

func (f fakeSpell) Suggest(word string) ([]string, bool) {
	s, ok := f[word]
	return s, ok
}

func newTestLexicon() Lexicon {
	return Lexicon{
		Phonemes:   newFakePhonemes(),
		Synonyms:   testSynonyms,
		Similarity: newFakeSimilarity(),
		Spell:      fakeSpell{"dgo": {"dog", "ego"}},
	}
}

type countingSynonyms struct {
	SynonymOracle
	calls map[string]int
}

func (c *countingSynonyms) Synonyms(word string) []string {
	c.calls[word]++
	return c.SynonymOracle.Synonyms(word)
}

type fakeSource map[string][]string

func (f fakeSource) Fetch(ctx context.Context, query string) (map[string][]string, error) {
	return f, nil
}
