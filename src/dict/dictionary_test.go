package dict

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestReadCMU(t *testing.T) {
	d, err := ReadCMU(testdataPath(t, "cmudict.txt"))
	require.NoError(t, err)

	p, ok := d.Phonemes("cat")
	assert.True(t, ok)
	assert.Equal(t, poem.Phonemes{"K", "AE1", "T"}, p)

	p, ok = d.Phonemes("hello")
	assert.True(t, ok)
	assert.Equal(t, poem.Phonemes{"HH", "AH0", "L", "OW1"}, p)

	_, ok = d.Phonemes("CAT")
	assert.False(t, ok)
	assert.False(t, d.Contains("junk"))
	assert.True(t, d.Contains("'bout"))

	assert.Equal(t, []string{"'bout", "a", "cat", "dog", "hello", "i", "mat", "the", "world"}, d.Words())
	assert.Equal(t, 9, d.Len())
}

func TestReadCMU_FileNotFound(t *testing.T) {
	_, err := ReadCMU("/nonexistent/cmudict.txt")
	assert.Error(t, err)
}

func TestParseCMU_SyllableCounts(t *testing.T) {
	d, err := ParseCMU(strings.NewReader("HAIKU  HH AY1 K UW0\nHOLOGRAPHIC  HH AA2 L AH0 G R AE1 F IH0 K\n"))
	require.NoError(t, err)
	counter := poem.NewSyllableCounter(d)
	assert.Equal(t, 2, counter.Count("haiku"))
	assert.Equal(t, 4, counter.Count("holographic"))
}

func TestTrie(t *testing.T) {
	root := &TrieNode{}
	for _, word := range []string{"hell", "hello", "he", "don't"} {
		root.insert(word)
	}
	assert.True(t, root.HasWord("hello"))
	assert.True(t, root.HasWord("he"))
	assert.False(t, root.HasWord("hel"))
	assert.False(t, root.HasWord("don't"))
	assert.False(t, root.HasWord("HELLO"))
	assert.True(t, root.Child('h').Child('e').IsWord())
	assert.Nil(t, root.Child('H'))
	assert.Equal(t, []int{2, 4, 5}, root.Prefixes("helloworld"))
	assert.Empty(t, root.Prefixes("world"))
}
