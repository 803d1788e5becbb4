package dict

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

// DefaultSpellMaxDistance is the edit distance the spell checker searches when none is
// configured.
const DefaultSpellMaxDistance = 2

// Paths locates the dictionary files. Empty paths are skipped; the matching oracle is
// left nil in the Lexicon.
type Paths struct {
	CMUDict          string
	WordNet          string
	Vectors          string
	VectorsBinary    bool
	Neighbors        int
	SpellMaxDistance int
}

// Oracles holds the loaded dictionaries.
type Oracles struct {
	Phonemes   *PhonemeDict
	Thesaurus  *Thesaurus
	Embeddings *Embeddings
	Spell      *SpellChecker
}

// Load reads every configured dictionary file concurrently.
func Load(ctx context.Context, paths Paths) (*Oracles, error) {
	var o Oracles
	g, gctx := errgroup.WithContext(ctx)
	if paths.CMUDict != "" {
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return err
			}
			o.Phonemes, err = ReadCMU(paths.CMUDict)
			return err
		})
	}
	if paths.WordNet != "" {
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return err
			}
			o.Thesaurus, err = ReadWordNet(paths.WordNet)
			return err
		})
	}
	if paths.Vectors != "" {
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return err
			}
			o.Embeddings, err = ReadVectors(paths.Vectors, paths.VectorsBinary, paths.Neighbors)
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("loading dictionaries: %w", err)
	}

	if o.Phonemes != nil {
		var ranks map[string]int
		if o.Embeddings != nil {
			ranks = o.Embeddings.Ranks()
		}
		maxDistance := paths.SpellMaxDistance
		if maxDistance <= 0 {
			maxDistance = DefaultSpellMaxDistance
		}
		o.Spell = NewSpellChecker(o.Phonemes.Words(), ranks, maxDistance)
	}
	log.Println(o.summary())
	return &o, nil
}

// Lexicon bundles the loaded oracles for the composer. Oracles that were not loaded
// stay nil interfaces.
func (o *Oracles) Lexicon() poem.Lexicon {
	var lex poem.Lexicon
	if o.Phonemes != nil {
		lex.Phonemes = o.Phonemes
	}
	if o.Thesaurus != nil {
		lex.Synonyms = o.Thesaurus
	}
	if o.Embeddings != nil {
		lex.Similarity = o.Embeddings
	}
	if o.Spell != nil {
		lex.Spell = o.Spell
	}
	return lex
}

func (o *Oracles) summary() string {
	var pronunciations, lemmas, vectors int
	if o.Phonemes != nil {
		pronunciations = o.Phonemes.Len()
	}
	if o.Thesaurus != nil {
		lemmas = len(o.Thesaurus.synsets)
	}
	if o.Embeddings != nil {
		vectors = o.Embeddings.Len()
	}
	return fmt.Sprintf("loaded %d pronunciations, %d lemmas, %d vectors", pronunciations, lemmas, vectors)
}
