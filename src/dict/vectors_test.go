package dict

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVectors_Text(t *testing.T) {
	e, err := ReadVectors(testdataPath(t, "vectors.txt"), false, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"the", "cat", "dog", "mat", "kitten"}, e.Vocabulary())
	assert.Equal(t, 3, e.Dims())

	sim, ok := e.Similarity("cat", "kitten")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, sim, 1e-6)

	sim, ok = e.Similarity("cat", "dog")
	assert.True(t, ok)
	assert.InDelta(t, 0.96, sim, 1e-6)

	sim, ok = e.Similarity("cat", "the")
	assert.True(t, ok)
	assert.InDelta(t, 0, sim, 1e-6)

	_, ok = e.Similarity("cat", "unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"kitten", "dog", "mat"}, e.NearestNeighbors("cat"))
	assert.Nil(t, e.NearestNeighbors("unknown"))

	rank, ok := e.Rank("dog")
	assert.True(t, ok)
	assert.Equal(t, 2, rank)
}

func TestParseVectors_Binary(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("2 2\n")
	buf.WriteString("sun ")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []float32{3, 4}))
	buf.WriteString("\nfun ")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []float32{4, 3}))
	buf.WriteString("\n")

	e, err := ParseVectors(&buf, true, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"sun", "fun"}, e.Vocabulary())

	sim, ok := e.Similarity("sun", "fun")
	assert.True(t, ok)
	assert.InDelta(t, 0.96, sim, 1e-6)
	assert.Equal(t, []string{"fun"}, e.NearestNeighbors("sun"))
}

func TestParseVectors_Errors(t *testing.T) {
	_, err := ParseVectors(strings.NewReader("not a header\n"), false, 0)
	assert.Error(t, err)

	_, err = ParseVectors(strings.NewReader("1 3\ncat 1 2\n"), false, 0)
	assert.Error(t, err)

	_, err = ParseVectors(strings.NewReader("1 2\ncat 1 x\n"), false, 0)
	assert.Error(t, err)
}

func TestParseVectors_ShortFile(t *testing.T) {
	e, err := ParseVectors(strings.NewReader("10 2\ncat 1 0\ndog 0 1"), false, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Len())
}
