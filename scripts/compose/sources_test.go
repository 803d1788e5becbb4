package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineParsers(t *testing.T) {
	tests := []struct {
		format   string
		line     string
		expected string
	}{
		{"text", "  the cat sat  ", "the cat sat"},
		{"gen-chat", `alex,2021-05-01,general,"the cat, the mat"`, "the cat, the mat"},
		{"gen-chat", "alex,2021-05-01", ""},
		{"wikipedia", "1 +++$+++ 2 +++$+++ 3 +++$+++ 4 +++$+++ 5 +++$+++ 6 +++$+++ raw +++$+++ it''s a \\/cat\\/ ", "it's a /cat/"},
		{"wikipedia", "too +++$+++ short", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, sources[tt.format].lineParser(tt.line), tt.line)
	}
}

func TestDumpSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen-chat.csv")
	dump := "author,time,channel,content\n" +
		"alex,1,general,\"the cat sat, on the mat\"\n" +
		"bo,2,general\n" +
		"cy,3,general,a dog in the fog\n" +
		"di,4,general,my cat is big @someone\n"
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o644))

	src := dumpSource{path: path, source: sources["gen-chat"]}
	result, err := src.Fetch(context.Background(), "cat")

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"2": {"the", "cat", "sat,", "on", "the", "mat"},
		"5": {"my", "cat", "is", "big"},
	}, result)
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "gen-chat, text, wikipedia", formatNames())
}
