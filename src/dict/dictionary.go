package dict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

// PhonemeDict maps lowercase words to their primary CMU pronunciation.
type PhonemeDict struct {
	phonemes map[string]poem.Phonemes
	words    []string
}

// ReadCMU loads a CMU pronouncing dictionary from disk.
func ReadCMU(path string) (*PhonemeDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cmu dict: %w", err)
	}
	defer f.Close()
	return ParseCMU(f)
}

// ParseCMU reads lines of the form "WORD  PH1 PH2 ...". Comment lines start with ";;;".
// Alternate pronunciations ("WORD(2)") are skipped; the first one listed wins.
func ParseCMU(r io.Reader) (*PhonemeDict, error) {
	d := &PhonemeDict{
		phonemes: make(map[string]poem.Phonemes),
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		word, phonemes, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, ok := d.phonemes[word]; ok {
			continue
		}
		d.phonemes[word] = phonemes
		d.words = append(d.words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not parse line %d: %w", lineNum, err)
	}
	sort.Strings(d.words)
	return d, nil
}

func parseLine(line string) (string, poem.Phonemes, bool) {
	if strings.HasPrefix(line, ";;;") { // comment
		return "", nil, false
	}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return "", nil, false
	}
	word := tokens[0]
	if strings.HasSuffix(word, ")") { // alternate pronunciation
		return "", nil, false
	}
	return strings.ToLower(word), poem.Phonemes(tokens[1:]), true
}

func (d *PhonemeDict) Phonemes(word string) (poem.Phonemes, bool) {
	p, ok := d.phonemes[word]
	return p, ok
}

func (d *PhonemeDict) Contains(word string) bool {
	_, ok := d.phonemes[word]
	return ok
}

// Words lists every dictionary word in sorted order. The slice must not be modified.
func (d *PhonemeDict) Words() []string {
	return d.words
}

func (d *PhonemeDict) Len() int {
	return len(d.words)
}
