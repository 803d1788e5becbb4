package dict

import (
	"math"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// MaxSuggestions caps the number of suggestions returned by SpellChecker.Suggest.
const MaxSuggestions = 5

// SpellChecker suggests dictionary words for misspelled input. It is read-only after
// construction and safe for concurrent use.
type SpellChecker struct {
	trie        *TrieNode
	byLength    map[int][]string
	ranks       map[string]int
	maxDistance int
}

// NewSpellChecker indexes words. ranks orders suggestions at equal edit distance,
// lower first; words missing from ranks sort after ranked ones.
func NewSpellChecker(words []string, ranks map[string]int, maxDistance int) *SpellChecker {
	s := &SpellChecker{
		trie:        &TrieNode{},
		byLength:    make(map[int][]string),
		ranks:       ranks,
		maxDistance: maxDistance,
	}
	for _, word := range words {
		if !plainWord(word) {
			continue
		}
		s.trie.insert(word)
		s.byLength[len(word)] = append(s.byLength[len(word)], word)
	}
	return s
}

// Suggest first tries to split word into two dictionary words ("helloworld" becomes
// "hello world"). Otherwise it returns the known words within the maximum edit
// distance, closest first.
func (s *SpellChecker) Suggest(word string) ([]string, bool) {
	word = strings.ToLower(word)
	if !plainWord(word) {
		return nil, false
	}
	if s.trie.HasWord(word) {
		return []string{word}, true
	}
	if split, ok := s.split(word); ok {
		return []string{split}, true
	}
	suggestions := s.nearby(word)
	return suggestions, len(suggestions) > 0
}

// split prefers the longest first word.
func (s *SpellChecker) split(word string) (string, bool) {
	prefixes := s.trie.Prefixes(word)
	for i := len(prefixes) - 1; i >= 0; i-- {
		head, tail := word[:prefixes[i]], word[prefixes[i]:]
		if segment(head) && segment(tail) && s.trie.HasWord(tail) {
			return head + " " + tail, true
		}
	}
	return "", false
}

// segment rejects single letters other than "a" and "i" as halves of a split.
func segment(piece string) bool {
	return len(piece) > 1 || piece == "a" || piece == "i"
}

func (s *SpellChecker) nearby(word string) []string {
	type candidate struct {
		word     string
		distance int
		rank     int
	}
	var candidates []candidate
	for length := len(word) - s.maxDistance; length <= len(word)+s.maxDistance; length++ {
		for _, known := range s.byLength[length] {
			if distance := matchr.Levenshtein(word, known); distance <= s.maxDistance {
				candidates = append(candidates, candidate{known, distance, s.rank(known)})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.word < b.word
	})
	var result []string
	for _, c := range candidates {
		if len(result) == MaxSuggestions {
			break
		}
		result = append(result, c.word)
	}
	return result
}

func (s *SpellChecker) rank(word string) int {
	if r, ok := s.ranks[word]; ok {
		return r
	}
	return math.MaxInt
}

func plainWord(word string) bool {
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
