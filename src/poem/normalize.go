package poem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var tokenCleaner = strings.NewReplacer(
	"’", "'", "‘", "'",
	",", "", "!", "", "#", "", "@", "", "?", "", ".", "",
)

// Normalizer turns raw tokens into words the pronunciation and similarity oracles
// understand.
type Normalizer struct {
	counter *SyllableCounter
	scorer  *Scorer
	spell   SpellOracle
}

func NewNormalizer(counter *SyllableCounter, scorer *Scorer, spell SpellOracle) *Normalizer {
	return &Normalizer{counter: counter, scorer: scorer, spell: spell}
}

// Normalize applies the first matching rule:
//
//  1. a token of digits is spelled out ("25" -> "twenty five")
//  2. the token is lowercased
//  3. a word with a known pronunciation is returned as-is
//  4. the nearest embedding neighbour with a known pronunciation, closest in edit
//     distance to the token, replaces it
//  5. the spell checker's first suggestion replaces it
//  6. otherwise the lowercased token is returned with ErrNormalizationExhausted
//
// Punctuation is stripped first. Rules 1, 4 and 5 may return several words.
func (n *Normalizer) Normalize(token string) (string, error) {
	word := cleanToken(token)
	if word == "" {
		return "", nil
	}
	if spelled, ok := SpellNumber(word); ok {
		return spelled, nil
	}
	word = cases.Lower(language.English).String(word)
	if n.pronounceable(word) {
		return word, nil
	}
	if neighbor, ok := n.closestNeighbor(word); ok {
		return neighbor, nil
	}
	if n.spell != nil {
		if suggestions, ok := n.spell.Suggest(word); ok && len(suggestions) > 0 {
			return suggestions[0], nil
		}
	}
	return word, fmt.Errorf("%w: %q", ErrNormalizationExhausted, token)
}

// NormalizeLine normalizes every token of line, records each mapping in m and
// re-tokenizes, so the result can be longer than line.
func (n *Normalizer) NormalizeLine(line []string, m *NormalizationMap) []string {
	return n.NormalizeTokens(line, m).Words
}

// NormalizeTokens is NormalizeLine, but also remembers which token produced each word
// so the line can be restored by position.
func (n *Normalizer) NormalizeTokens(line []string, m *NormalizationMap) NormalizedLine {
	var result NormalizedLine
	for _, token := range line {
		normalized, _ := n.Normalize(token) // exhausted tokens are kept as they are
		m.Record(token, normalized)
		words := strings.Fields(normalized)
		result.Words = append(result.Words, words...)
		result.spans = append(result.spans, span{original: token, size: len(words)})
	}
	return result
}

func (n *Normalizer) closestNeighbor(word string) (string, bool) {
	type option struct {
		phrase   string
		distance int
	}
	var options []option
	for _, neighbor := range n.scorer.NearestNeighbors(word) {
		phrase := strings.ToLower(strings.ReplaceAll(neighbor, "_", " "))
		if n.pronounceable(phrase) {
			options = append(options, option{phrase, matchr.Levenshtein(word, phrase)})
		}
	}
	if len(options) == 0 {
		return "", false
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].distance < options[j].distance
	})
	return options[0].phrase, true
}

// pronounceable reports whether every word of phrase has a dictionary pronunciation.
func (n *Normalizer) pronounceable(phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		if _, ok := n.counter.Lookup(word); !ok {
			return false
		}
	}
	return true
}

func cleanToken(token string) string {
	return strings.TrimSpace(tokenCleaner.Replace(norm.NFKC.String(token)))
}

// span is an original token and the number of normalized words it became.
type span struct {
	original string
	size     int
}

// NormalizedLine is one normalized line.
type NormalizedLine struct {
	Words []string
	spans []span
}

// Restore maps an edited version of l.Words back to the original tokens. Words are
// aligned to l.Words by longest common subsequence; a token whose words all survived,
// in order and next to each other, is restored from its own position. Everything else
// came out of a substitution and goes through m.Denormalize.
func (l NormalizedLine) Restore(words []string, m *NormalizationMap) []string {
	match := alignWords(l.Words, words)

	// starts[i] is the span beginning at normalized word i, or -1.
	starts := make([]int, len(l.Words))
	for i := range starts {
		starts[i] = -1
	}
	pos := 0
	for s, sp := range l.spans {
		if sp.size > 0 {
			starts[pos] = s
		}
		pos += sp.size
	}

	var result, pending []string
	for j := 0; j < len(words); {
		if i := match[j]; i >= 0 && starts[i] >= 0 && spanSurvives(match, j, i, l.spans[starts[i]].size) {
			result = append(result, m.Denormalize(pending)...)
			pending = nil
			result = append(result, l.spans[starts[i]].original)
			j += l.spans[starts[i]].size
			continue
		}
		pending = append(pending, words[j])
		j++
	}
	return append(result, m.Denormalize(pending)...)
}

// spanSurvives reports whether words[j:j+size] are matched to normalized[i:i+size].
func spanSurvives(match []int, j, i, size int) bool {
	if j+size > len(match) {
		return false
	}
	for k := 0; k < size; k++ {
		if match[j+k] != i+k {
			return false
		}
	}
	return true
}

// alignWords returns, for every word of edited, the index of the word of original it
// is matched to in a longest common subsequence, or -1. Ties prefer later positions in
// original, since edits drop words from the front.
func alignWords(original, edited []string) []int {
	n, m := len(original), len(edited)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case original[i-1] == edited[j-1]:
				lcs[i][j] = lcs[i-1][j-1] + 1
			case lcs[i-1][j] >= lcs[i][j-1]:
				lcs[i][j] = lcs[i-1][j]
			default:
				lcs[i][j] = lcs[i][j-1]
			}
		}
	}
	match := make([]int, m)
	for j := range match {
		match[j] = -1
	}
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case original[i-1] == edited[j-1]:
			match[j-1] = i - 1
			i--
			j--
		case lcs[i-1][j] >= lcs[i][j-1]:
			i--
		default:
			j--
		}
	}
	return match
}

// NormalizationMap remembers which original token produced each normalized form so
// substituted words can be shown in the user's own words. The first original recorded
// for a normalized form wins.
type NormalizationMap struct {
	forward map[string]string
	reverse map[string]string
	longest int // words in the longest normalized form
}

func NewNormalizationMap() *NormalizationMap {
	return &NormalizationMap{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

func (m *NormalizationMap) Record(original, normalized string) {
	if _, ok := m.forward[original]; !ok {
		m.forward[original] = normalized
	}
	if normalized == "" {
		return
	}
	if _, ok := m.reverse[normalized]; !ok {
		m.reverse[normalized] = original
	}
	if n := len(strings.Fields(normalized)); n > m.longest {
		m.longest = n
	}
}

func (m *NormalizationMap) Normalized(original string) (string, bool) {
	normalized, ok := m.forward[original]
	return normalized, ok
}

func (m *NormalizationMap) Original(normalized string) (string, bool) {
	original, ok := m.reverse[normalized]
	return original, ok
}

// Denormalize maps words back to their original tokens, preferring the longest
// normalized phrase at each position. Words with no original are kept.
func (m *NormalizationMap) Denormalize(words []string) []string {
	var result []string
	for i := 0; i < len(words); {
		matched := false
		for size := min(m.longest, len(words)-i); size > 0; size-- {
			if original, ok := m.reverse[strings.Join(words[i:i+size], " ")]; ok {
				result = append(result, original)
				i += size
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, words[i])
			i++
		}
	}
	return result
}
