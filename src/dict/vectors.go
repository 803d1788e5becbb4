package dict

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultNeighbors is the number of neighbours NearestNeighbors returns when none is
// configured.
const DefaultNeighbors = 20

var errBadHeader = errors.New("vectors header must be \"<count> <dims>\"")

// Embeddings holds unit-length word vectors in file order. It is read-only after
// loading and safe for concurrent use.
type Embeddings struct {
	words     []string
	index     map[string]int
	vectors   [][]float32
	dims      int
	neighbors int
}

// ReadVectors loads a word2vec file in text or binary format.
func ReadVectors(path string, binaryFormat bool, neighbors int) (*Embeddings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer f.Close()
	return ParseVectors(f, binaryFormat, neighbors)
}

// ParseVectors reads the word2vec format: a "<count> <dims>" header line followed by
// one entry per word, either as text ("word v1 v2 ...") or as the word, a space and
// dims little-endian float32 values.
func ParseVectors(r io.Reader, binaryFormat bool, neighbors int) (*Embeddings, error) {
	if neighbors <= 0 {
		neighbors = DefaultNeighbors
	}
	br := bufio.NewReaderSize(r, 1<<20)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	count, dims, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	e := &Embeddings{
		words:     make([]string, 0, count),
		index:     make(map[string]int, count),
		vectors:   make([][]float32, 0, count),
		dims:      dims,
		neighbors: neighbors,
	}
	for i := 0; i < count; i++ {
		var word string
		var vec []float32
		if binaryFormat {
			word, vec, err = readBinaryEntry(br, dims)
		} else {
			word, vec, err = readTextEntry(br, dims)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		e.add(word, vec)
	}
	return e, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errBadHeader
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadHeader, err)
	}
	dims, err := strconv.Atoi(fields[1])
	if err != nil || dims <= 0 {
		return 0, 0, fmt.Errorf("%w: bad dims %q", errBadHeader, fields[1])
	}
	return count, dims, nil
}

func readTextEntry(br *bufio.Reader, dims int) (string, []float32, error) {
	line, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
		return "", nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != dims+1 {
		return "", nil, fmt.Errorf("expected %d values, got %d", dims, len(fields)-1)
	}
	vec := make([]float32, dims)
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return "", nil, fmt.Errorf("could not parse value %d of %q: %w", i, fields[0], err)
		}
		vec[i] = float32(v)
	}
	return fields[0], vec, nil
}

func readBinaryEntry(br *bufio.Reader, dims int) (string, []float32, error) {
	word, err := br.ReadString(' ')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(word) == "" {
			return "", nil, io.EOF
		}
		return "", nil, fmt.Errorf("read word: %w", err)
	}
	word = strings.TrimSpace(word)
	vec := make([]float32, dims)
	if err := binary.Read(br, binary.LittleEndian, vec); err != nil {
		return "", nil, fmt.Errorf("read vector of %q: %w", word, err)
	}
	return word, vec, nil
}

func (e *Embeddings) add(word string, vec []float32) {
	if _, ok := e.index[word]; ok {
		return
	}
	normalize(vec)
	e.index[word] = len(e.words)
	e.words = append(e.words, word)
	e.vectors = append(e.vectors, vec)
}

func normalize(vec []float32) {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

func dot(a, b []float32) float64 {
	var result float64
	for i := range a {
		result += float64(a[i]) * float64(b[i])
	}
	return result
}

// Similarity is the cosine similarity of the vectors of a and b.
func (e *Embeddings) Similarity(a, b string) (float64, bool) {
	i, ok := e.index[a]
	if !ok {
		return 0, false
	}
	j, ok := e.index[b]
	if !ok {
		return 0, false
	}
	return dot(e.vectors[i], e.vectors[j]), true
}

// NearestNeighbors returns the words most similar to word, best first, excluding word
// itself. Unknown words have no neighbours.
func (e *Embeddings) NearestNeighbors(word string) []string {
	i, ok := e.index[word]
	if !ok {
		return nil
	}
	type hit struct {
		idx   int
		score float64
	}
	hits := make([]hit, 0, len(e.words)-1)
	for j, vec := range e.vectors {
		if j == i {
			continue
		}
		hits = append(hits, hit{j, dot(e.vectors[i], vec)})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})
	if len(hits) > e.neighbors {
		hits = hits[:e.neighbors]
	}
	result := make([]string, len(hits))
	for k, h := range hits {
		result[k] = e.words[h.idx]
	}
	return result
}

// Vocabulary lists every word in file order, which for word2vec files is descending
// frequency. The slice must not be modified.
func (e *Embeddings) Vocabulary() []string {
	return e.words
}

// Rank is the 0-based position of word in the file.
func (e *Embeddings) Rank(word string) (int, bool) {
	i, ok := e.index[word]
	return i, ok
}

// Ranks maps every word to its Rank.
func (e *Embeddings) Ranks() map[string]int {
	return e.index
}

func (e *Embeddings) Dims() int {
	return e.dims
}

func (e *Embeddings) Len() int {
	return len(e.words)
}
