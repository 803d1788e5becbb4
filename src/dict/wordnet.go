package dict

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// GWN-LMF JSON, as published by Open English WordNet.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm string `json:"writtenForm"`
}

type gwnSense struct {
	ID     string `json:"@id"`
	Synset string `json:"synset"`
}

type gwnSynset struct {
	ID        string        `json:"@id"`
	Relations []gwnRelation `json:"relations"`
}

type gwnRelation struct {
	RelType string `json:"relType"`
	Target  string `json:"target"`
}

// Thesaurus answers synonym queries from WordNet's hypernym graph. It is read-only
// after loading and safe for concurrent use.
type Thesaurus struct {
	synsets   map[string][]string // word -> synsets it has a sense in
	lemmas    map[string][]string // synset -> words
	hypernyms map[string][]string // synset -> more general synsets
	hyponyms  map[string][]string // synset -> more specific synsets
}

// ReadWordNet loads a GWN-LMF JSON file from disk.
func ReadWordNet(path string) (*Thesaurus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordnet: %w", err)
	}
	defer f.Close()
	return ParseWordNet(f)
}

func ParseWordNet(r io.Reader) (*Thesaurus, error) {
	var doc gwnDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	t := &Thesaurus{
		synsets:   make(map[string][]string),
		lemmas:    make(map[string][]string),
		hypernyms: make(map[string][]string),
		hyponyms:  make(map[string][]string),
	}
	for _, lex := range doc.Graph {
		for _, entry := range lex.Entries {
			word := strings.ToLower(strings.TrimSpace(entry.Lemma.WrittenForm))
			if word == "" {
				continue
			}
			for _, sense := range entry.Sense {
				t.synsets[word] = appendUnique(t.synsets[word], sense.Synset)
				t.lemmas[sense.Synset] = appendUnique(t.lemmas[sense.Synset], word)
			}
		}
		for _, synset := range lex.Synsets {
			for _, rel := range synset.Relations {
				switch rel.RelType {
				case "hypernym", "instance_hypernym":
					t.link(synset.ID, rel.Target)
				case "hyponym", "instance_hyponym":
					t.link(rel.Target, synset.ID)
				}
			}
		}
	}
	return t, nil
}

// link records that general is a hypernym of specific.
func (t *Thesaurus) link(specific, general string) {
	t.hypernyms[specific] = appendUnique(t.hypernyms[specific], general)
	t.hyponyms[general] = appendUnique(t.hyponyms[general], specific)
}

// Synonyms returns, for every sense of word, the lemmas of its hypernyms and of every
// hyponym of those hypernyms. Multi-word lemmas and word itself are left out. The
// result is sorted.
func (t *Thesaurus) Synonyms(word string) []string {
	seen := make(map[string]struct{})
	add := func(synset string) {
		for _, lemma := range t.lemmas[synset] {
			if lemma == word || strings.ContainsAny(lemma, " _") {
				continue
			}
			seen[lemma] = struct{}{}
		}
	}
	for _, synset := range t.synsets[word] {
		for _, hypernym := range t.hypernyms[synset] {
			add(hypernym)
			for _, sibling := range t.hyponyms[hypernym] {
				add(sibling)
			}
		}
	}
	result := make([]string, 0, len(seen))
	for lemma := range seen {
		result = append(result, lemma)
	}
	sort.Strings(result)
	return result
}

// Words lists every lemma, sorted.
func (t *Thesaurus) Words() []string {
	result := make([]string, 0, len(t.synsets))
	for word := range t.synsets {
		result = append(result, word)
	}
	sort.Strings(result)
	return result
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
