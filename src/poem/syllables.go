package poem

import (
	"strings"
)

// SyllableCounter counts syllables from dictionary pronunciations, falling back to a
// vowel-letter approximation for words the dictionary does not know.
type SyllableCounter struct {
	phonemes PhonemeOracle
}

func NewSyllableCounter(phonemes PhonemeOracle) *SyllableCounter {
	return &SyllableCounter{phonemes: phonemes}
}

// Count never fails; unknown words are counted with ApproximatePhonemes.
func (c *SyllableCounter) Count(word string) int {
	return CountVowels(c.Phonemes(word))
}

// CountLine sums the syllables of every word in the line.
func (c *SyllableCounter) CountLine(words []string) int {
	total := 0
	for _, word := range words {
		total += c.Count(word)
	}
	return total
}

// Phonemes returns the dictionary pronunciation of word, or its approximation when
// the dictionary has no entry.
func (c *SyllableCounter) Phonemes(word string) Phonemes {
	if p, ok := c.Lookup(word); ok {
		return p
	}
	return ApproximatePhonemes(word)
}

// Lookup only consults the dictionary.
func (c *SyllableCounter) Lookup(word string) (Phonemes, bool) {
	if c.phonemes == nil || word == "" {
		return nil, false
	}
	p, ok := c.phonemes.Phonemes(strings.ToLower(word))
	if !ok || len(p) == 0 {
		return nil, false
	}
	return p, true
}

// ApproximatePhonemes is the fallback pronunciation for unknown words: every vowel
// letter becomes an unstressed vowel symbol and every other character is passed
// through upper-cased. The result is only good enough for counting syllables.
func ApproximatePhonemes(word string) Phonemes {
	var result Phonemes
	for _, chr := range strings.ToLower(word) {
		if isVowel(chr) {
			result = append(result, strings.ToUpper(string(chr))+"0")
		} else {
			result = append(result, strings.ToUpper(string(chr)))
		}
	}
	return result
}

// CountVowels counts the vowel-bearing symbols of a pronunciation.
func CountVowels(p Phonemes) int {
	count := 0
	for _, symbol := range p {
		if isVowelSymbol(symbol) {
			count++
		}
	}
	return count
}

func isVowelSymbol(symbol string) bool {
	if symbol == "" {
		return false
	}
	last := symbol[len(symbol)-1]
	return '0' <= last && last <= '9'
}

func isVowel(chr rune) bool {
	switch chr {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
