package poem

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SequenceSource yields candidate lines for a query, keyed by an id unique within one
// result.
type SequenceSource interface {
	Fetch(ctx context.Context, query string) (map[string][]string, error)
}

// CleanSequences drops @mentions and links from every sequence, then drops sequences
// that end up empty or longer than maxChars characters when joined with spaces.
// maxChars <= 0 disables the length limit. The input map is not modified.
func CleanSequences(sequences map[string][]string, maxChars int) map[string][]string {
	result := make(map[string][]string, len(sequences))
	for id, words := range sequences {
		var kept []string
		for _, word := range words {
			if strings.HasPrefix(word, "@") || strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") {
				continue
			}
			kept = append(kept, word)
		}
		if len(kept) == 0 {
			continue
		}
		if maxChars > 0 && len(strings.Join(kept, " ")) > maxChars {
			continue
		}
		result[id] = kept
	}
	return result
}

// FileSource reads one candidate line per non-empty line of a text file. The id of a
// line is its 1-based line number.
type FileSource struct {
	Path     string
	MaxChars int
}

func (f FileSource) Fetch(ctx context.Context, query string) (map[string][]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	sequences, err := ReadSequences(file, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return CleanSequences(sequences, f.MaxChars), ctx.Err()
}

// ReadSequences splits r into lines of words, keeping only lines containing query
// (case-insensitive). An empty query keeps every line.
func ReadSequences(r io.Reader, query string) (map[string][]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	result := make(map[string][]string)
	s := bufio.NewScanner(r)
	lineNum := 0
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(line), query) {
			continue
		}
		result[strconv.Itoa(lineNum)] = strings.Fields(line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
