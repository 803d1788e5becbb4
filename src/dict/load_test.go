package dict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

func TestLoad(t *testing.T) {
	o, err := Load(context.Background(), Paths{
		CMUDict: testdataPath(t, "cmudict.txt"),
		WordNet: testdataPath(t, "wordnet.json"),
		Vectors: testdataPath(t, "vectors.txt"),
	})
	require.NoError(t, err)
	lex := o.Lexicon()
	require.NotNil(t, lex.Phonemes)
	require.NotNil(t, lex.Synonyms)
	require.NotNil(t, lex.Similarity)
	require.NotNil(t, lex.Spell)

	suggestions, ok := lex.Spell.Suggest("hat")
	assert.True(t, ok)
	assert.Equal(t, []string{"cat", "mat"}, suggestions) // ranked by vector file order

	c := poem.NewComposer(lex)
	couplet, err := c.Compose(context.Background(), [][]string{{"the", "cat"}, {"a", "mat"}})
	require.NoError(t, err)
	assert.Equal(t, "the cat\na mat", couplet.String())
}

func TestLoad_Partial(t *testing.T) {
	o, err := Load(context.Background(), Paths{CMUDict: testdataPath(t, "cmudict.txt")})
	require.NoError(t, err)
	lex := o.Lexicon()
	assert.NotNil(t, lex.Phonemes)
	assert.NotNil(t, lex.Spell)
	assert.Nil(t, lex.Synonyms)
	assert.Nil(t, lex.Similarity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), Paths{
		CMUDict: testdataPath(t, "cmudict.txt"),
		WordNet: testdataPath(t, "missing.json"),
	})
	assert.Error(t, err)
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, Paths{CMUDict: testdataPath(t, "cmudict.txt")})
	assert.True(t, errors.Is(err, context.Canceled))
}
