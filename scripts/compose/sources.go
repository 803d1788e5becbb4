package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kalexmills/couplet-hammer/src/poem"
)

// Datasource describes how to pull the message text out of one line of a chat dump.
type Datasource struct {
	lineParser func(string) string
}

var Unescaper = strings.NewReplacer("\\/", "/", "\\\"", "\"", "''''", "'", "''", "'")

var sources = map[string]Datasource{
	"text": {
		lineParser: strings.TrimSpace,
	},
	"wikipedia": {
		lineParser: func(s string) string {
			tokens := strings.Split(s, "+++$+++")
			if len(tokens) < 8 {
				return ""
			}
			cleaned := strings.TrimSpace(tokens[7]) // 7th index is the 'cleaned' content
			return Unescaper.Replace(cleaned)
		},
	},
	"gen-chat": {
		lineParser: func(s string) string {
			records, err := csv.NewReader(strings.NewReader(s)).Read()
			if err != nil || len(records) < 4 {
				return ""
			}
			return strings.TrimSpace(records[3])
		},
	},
}

func formatNames() string {
	var names []string
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// dumpSource reads candidate lines from a chat dump. The id of a line is its line number
// in the dump.
type dumpSource struct {
	path     string
	source   Datasource
	maxChars int
}

func (d dumpSource) Fetch(ctx context.Context, query string) (map[string][]string, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var parsed strings.Builder
	s := bufio.NewScanner(f)
	for s.Scan() {
		parsed.WriteString(d.source.lineParser(s.Text()))
		parsed.WriteByte('\n')
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	sequences, err := poem.ReadSequences(strings.NewReader(parsed.String()), query)
	if err != nil {
		return nil, err
	}
	return poem.CleanSequences(sequences, d.maxChars), ctx.Err()
}
